package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Simulation
	Simulation SimulationConfig

	// API
	API APIConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// SimulationConfig holds simulation engine defaults and limits
type SimulationConfig struct {
	// Seed 0이면 실행마다 시간 기반 시드 사용
	Seed int64
	// DefaultSampleCount 요청에 sample_count가 없을 때 사용
	DefaultSampleCount int
	// MaxSampleCount API가 허용하는 시나리오당 최대 표본 수
	MaxSampleCount int
}

// APIConfig holds HTTP API settings
type APIConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Simulation
		Simulation: SimulationConfig{
			Seed:               getEnvAsInt64("SIM_SEED", 0),
			DefaultSampleCount: getEnvAsInt("SIM_DEFAULT_SAMPLES", 10_000),
			MaxSampleCount:     getEnvAsInt("SIM_MAX_SAMPLES", 1_000_000),
		},

		// API
		API: APIConfig{
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Simulation.DefaultSampleCount <= 0 {
		return fmt.Errorf("SIM_DEFAULT_SAMPLES must be > 0")
	}
	if c.Simulation.MaxSampleCount < c.Simulation.DefaultSampleCount {
		return fmt.Errorf("SIM_MAX_SAMPLES must be >= SIM_DEFAULT_SAMPLES")
	}

	if c.API.RateLimitRPS <= 0 || c.API.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit settings must be > 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env",         // Current directory
		"backend/.env", // From project root
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
