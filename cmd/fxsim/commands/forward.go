package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/fxsim/backend/internal/analytics"
)

// forwardCmd represents the forward command
var forwardCmd = &cobra.Command{
	Use:   "forward",
	Short: "CIP 내재 포워드 환율 계산",
	Long: `커버된 금리평가(CIP)로 내재 포워드 환율을 계산합니다.

  F = S_t * ((1 + i_dom) / (1 + i_for))^(tenor / basis)

Example:
  go run ./cmd/fxsim forward --spot 4000 --i-dom 0.095 --i-for 0.05
  go run ./cmd/fxsim forward --spot 4000 --i-dom 0.095 --i-for 0.05 --offer 4100`,
	RunE: runForward,
}

var (
	fwdSpot   float64
	fwdIDom   float64
	fwdIFor   float64
	fwdTenor  int
	fwdBasis  int
	fwdOffer  float64
)

func init() {
	rootCmd.AddCommand(forwardCmd)

	// Flags
	forwardCmd.Flags().Float64Var(&fwdSpot, "spot", 0, "현물 환율 (필수)")
	forwardCmd.Flags().Float64Var(&fwdIDom, "i-dom", 0, "국내금리 (연간, 필수)")
	forwardCmd.Flags().Float64Var(&fwdIFor, "i-for", 0, "해외금리 (연간, 필수)")
	forwardCmd.Flags().IntVar(&fwdTenor, "tenor", analytics.DefaultTenorDays, "포워드 만기 (일)")
	forwardCmd.Flags().IntVar(&fwdBasis, "basis", analytics.DefaultDayCountBasis, "연간 일수 기준")
	forwardCmd.Flags().Float64Var(&fwdOffer, "offer", 0, "비교할 제시 포워드 가격 (0: 생략)")

	_ = forwardCmd.MarkFlagRequired("spot")
	_ = forwardCmd.MarkFlagRequired("i-dom")
	_ = forwardCmd.MarkFlagRequired("i-for")
}

func runForward(cmd *cobra.Command, args []string) error {
	forward, err := analytics.CIPForward(fwdSpot, fwdIDom, fwdIFor, fwdTenor, fwdBasis)
	if err != nil {
		return err
	}

	fmt.Println()
	PrintDoubleSeparator()
	fmt.Println("  CIP Implied Forward")
	PrintSeparator()
	fmt.Printf("  Spot          : %.2f\n", fwdSpot)
	fmt.Printf("  i_dom / i_for : %.4f / %.4f\n", fwdIDom, fwdIFor)
	fmt.Printf("  Tenor / Basis : %d / %d days\n", fwdTenor, fwdBasis)
	fmt.Printf("  Fair forward  : %.2f\n", forward)

	if fwdOffer > 0 {
		premium := (fwdOffer - forward) / forward * 100
		fmt.Printf("  Offered       : %.2f (%+.2f%% vs fair)\n", fwdOffer, premium)
	}
	PrintDoubleSeparator()

	return nil
}
