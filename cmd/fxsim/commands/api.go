package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/fxsim/backend/internal/api"
	"github.com/wonny/fxsim/backend/internal/api/handlers"
	"github.com/wonny/fxsim/backend/internal/simulation"
	"github.com/wonny/fxsim/backend/pkg/config"
	"github.com/wonny/fxsim/backend/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health                          - Health check
  POST /api/simulate                    - 시뮬레이션 실행
  GET  /api/scenarios                   - 시나리오 카탈로그
  GET  /api/scenarios/{name}/samples    - 시나리오 원시 표본
  GET  /api/scenarios/{name}/summary    - 시나리오 종합 요약
  GET  /api/tailrisk                    - VaR/Expected Shortfall 리포트
  GET  /api/confidence-intervals        - 시나리오별 신뢰구간
  GET  /api/forward                     - CIP 포워드 계산/평가

Example:
  go run ./cmd/fxsim api
  go run ./cmd/fxsim api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== fxsim API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Wire engine, handlers, router
	engine := simulation.NewEngine(log)
	simHandler := handlers.NewSimulationHandler(engine, cfg, log)
	router := api.NewRouter(simHandler, cfg, log)
	server := api.New(cfg, log, router)

	// 4. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
