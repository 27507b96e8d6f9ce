package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fxsim",
	Short: "fxsim - UIP+PPP 환율 시나리오 시뮬레이터",
	Long: `fxsim Unified CLI

UIP(무위험 금리평가) + PPP(구매력평가) 혼합 모델로
COP/USD 현물 환율의 불확실성을 시뮬레이션하고,
뉴스 시나리오별 분포와 리스크 지표(VaR, Expected Shortfall,
CIP 포워드)를 계산합니다.

Usage:
  go run ./cmd/fxsim [command]

Examples:
  go run ./cmd/fxsim simulate --spot 4000 --theta 0.6
  go run ./cmd/fxsim forward --spot 4000 --i-dom 0.095 --i-for 0.05
  go run ./cmd/fxsim api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
