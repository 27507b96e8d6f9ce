package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/fxsim/backend/internal/analytics"
	"github.com/wonny/fxsim/backend/internal/simulation"
	"github.com/wonny/fxsim/backend/pkg/config"
	"github.com/wonny/fxsim/backend/pkg/logger"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "시나리오별 환율 시뮬레이션 실행",
	Long: `UIP + PPP 모델로 4개 뉴스 시나리오의 환율 분포를 시뮬레이션합니다.

시나리오 카탈로그:
  1. Normal                   - shift 없음
  2. Subida tasas BanRep      - 국내금리 +1.5%p
  3. Desanclaje inflacionario - 국내 인플레이션 +2.0%p
  4. Choque externo           - 해외금리 -1.0%p, 해외 인플레이션 -0.5%p

구간 플래그는 "min,max" 형식입니다.

Example:
  go run ./cmd/fxsim simulate --spot 4000 --theta 0.6 --samples 100000
  go run ./cmd/fxsim simulate --i-dom 0.08,0.11 --skew --seed 42
  go run ./cmd/fxsim simulate --spot 4000 --offer 4100`,
	RunE: runSimulate,
}

var (
	simSpot       float64
	simTheta      float64
	simSamples    int
	simIDom       string
	simIFor       string
	simPiDom      string
	simPiFor      string
	simSkewed     bool
	simSkewLoc    float64
	simSkewScale  float64
	simSkewAlpha  float64
	simSeed       int64
	simConfidence float64
	simTenorDays  int
	simBasis      int
	simOffer      float64
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	// Flags
	simulateCmd.Flags().Float64Var(&simSpot, "spot", 4000, "현물 환율 (COP/USD)")
	simulateCmd.Flags().Float64Var(&simTheta, "theta", 0.6, "UIP 가중치 [0,1]")
	simulateCmd.Flags().IntVar(&simSamples, "samples", 0, "시나리오별 표본 수 (기본: SIM_DEFAULT_SAMPLES)")
	simulateCmd.Flags().StringVar(&simIDom, "i-dom", "0.08,0.11", "국내금리 구간 min,max")
	simulateCmd.Flags().StringVar(&simIFor, "i-for", "0.045,0.055", "해외금리 구간 min,max")
	simulateCmd.Flags().StringVar(&simPiDom, "pi-dom", "0.07,0.09", "국내 인플레이션 구간 min,max")
	simulateCmd.Flags().StringVar(&simPiFor, "pi-for", "0.025,0.035", "해외 인플레이션 구간 min,max")
	simulateCmd.Flags().BoolVar(&simSkewed, "skew", false, "국내금리 skew-normal 분포 사용")
	simulateCmd.Flags().Float64Var(&simSkewLoc, "skew-loc", 0, "skew location (0이면 구간 중간값)")
	simulateCmd.Flags().Float64Var(&simSkewScale, "skew-scale", 0.01, "skew scale")
	simulateCmd.Flags().Float64Var(&simSkewAlpha, "skew-alpha", 5, "skew 비대칭 파라미터")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "랜덤 시드 (0: 시간 기반)")
	simulateCmd.Flags().Float64Var(&simConfidence, "confidence", 0.95, "tail risk 신뢰수준")
	simulateCmd.Flags().IntVar(&simTenorDays, "tenor", analytics.DefaultTenorDays, "포워드 만기 (일)")
	simulateCmd.Flags().IntVar(&simBasis, "basis", analytics.DefaultDayCountBasis, "연간 일수 기준")
	simulateCmd.Flags().Float64Var(&simOffer, "offer", 0, "평가할 제시 포워드 가격 (0: 생략)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	in, err := buildInput(cfg)
	if err != nil {
		return err
	}

	engine := simulation.NewEngine(log)
	run, err := engine.Run(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	PrintRunHeader(run.ID, in.SampleCount, in.Seed)
	PrintSummaryTable(run.SummaryTable())

	report, err := run.TailRiskReport(simConfidence)
	if err != nil {
		return err
	}
	PrintTailRiskTable(report)

	// 포인트 금리는 구간 중간값으로 CIP 포워드 평가
	iDom := in.DomesticRate.Mid()
	iFor := in.ForeignRate.Mid()
	forward, err := analytics.CIPForward(in.SpotRate, iDom, iFor, simTenorDays, simBasis)
	if err != nil {
		return err
	}

	fmt.Println()
	PrintSeparator()
	fmt.Printf("  CIP forward (%dd, base %d) : %.2f\n", simTenorDays, simBasis, forward)

	if simOffer > 0 {
		samples, err := run.ScenarioSamples("Normal")
		if err != nil {
			return err
		}
		eval, err := analytics.EvaluateForward(simOffer, samples, in.SpotRate, iDom, iFor, simTenorDays, simBasis)
		if err != nil {
			return err
		}
		fmt.Printf("  Offered forward            : %.2f (%+.2f%% vs fair)\n",
			eval.OfferedRate, eval.PremiumPct*100)
		fmt.Printf("  Distribution percentile    : P%.1f (Normal scenario)\n", eval.PercentileRank)
	}
	PrintDoubleSeparator()

	return nil
}

// buildInput CLI 플래그와 config 기본값으로 시뮬레이션 입력 조립
func buildInput(cfg *config.Config) (simulation.Input, error) {
	iDom, err := parseRange(simIDom)
	if err != nil {
		return simulation.Input{}, fmt.Errorf("invalid --i-dom: %w", err)
	}
	iFor, err := parseRange(simIFor)
	if err != nil {
		return simulation.Input{}, fmt.Errorf("invalid --i-for: %w", err)
	}
	piDom, err := parseRange(simPiDom)
	if err != nil {
		return simulation.Input{}, fmt.Errorf("invalid --pi-dom: %w", err)
	}
	piFor, err := parseRange(simPiFor)
	if err != nil {
		return simulation.Input{}, fmt.Errorf("invalid --pi-for: %w", err)
	}

	samples := simSamples
	if samples == 0 {
		samples = cfg.Simulation.DefaultSampleCount
	}
	seed := simSeed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}

	in := simulation.Input{
		SpotRate:           simSpot,
		Theta:              simTheta,
		SampleCount:        samples,
		DomesticRate:       iDom,
		ForeignRate:        iFor,
		DomesticInflation:  piDom,
		ForeignInflation:   piFor,
		DomesticRateSkewed: simSkewed,
		Seed:               seed,
	}

	if simSkewed && simSkewLoc != 0 {
		in.SkewParams = &simulation.SkewParams{
			Location: simSkewLoc,
			Scale:    simSkewScale,
			Skewness: simSkewAlpha,
		}
	}

	return in, nil
}

// parseRange "min,max" 형식 파싱
func parseRange(s string) (simulation.RateRange, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return simulation.RateRange{}, fmt.Errorf("expected min,max got %q", s)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return simulation.RateRange{}, fmt.Errorf("invalid min: %w", err)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return simulation.RateRange{}, fmt.Errorf("invalid max: %w", err)
	}
	return simulation.RateRange{Min: min, Max: max}, nil
}
