package analytics

import (
	"fmt"
	"math"
	"sort"
)

// =============================================================================
// CIP Forward (Covered Interest Parity)
// =============================================================================

const (
	// DefaultTenorDays 기본 포워드 만기 (180일 = 6개월)
	DefaultTenorDays = 180
	// DefaultDayCountBasis 기본 연간 일수 기준 (360일 컨벤션)
	DefaultDayCountBasis = 360
)

// CIPForward 커버된 금리평가(CIP) 기반 내재 포워드 환율 계산
// F = S_t * ((1 + i_dom) / (1 + i_for))^(tenorDays / basis)
// spot: 현물 환율 (예: COP/USD)
// iDom, iFor: 연간 명목 금리 (예: 0.095 = 9.5%)
func CIPForward(spot, iDom, iFor float64, tenorDays, basis int) (float64, error) {
	if spot <= 0 {
		return 0, fmt.Errorf("%w: spot rate %v must be > 0", ErrInvalidParameter, spot)
	}
	if tenorDays <= 0 {
		return 0, fmt.Errorf("%w: tenor days %d must be > 0", ErrInvalidParameter, tenorDays)
	}
	if basis <= 0 {
		return 0, fmt.Errorf("%w: day count basis %d must be > 0", ErrInvalidParameter, basis)
	}
	if iFor == -1 {
		return 0, fmt.Errorf("%w: foreign rate -1 makes the CIP ratio undefined", ErrInvalidParameter)
	}

	n := float64(tenorDays) / float64(basis)
	return spot * math.Pow((1+iDom)/(1+iFor), n), nil
}

// =============================================================================
// 포워드 계약 평가
// =============================================================================

// ForwardEvaluation 제시된 포워드 가격과 CIP 공정가/시뮬레이션 분포 비교 결과
type ForwardEvaluation struct {
	OfferedRate    float64 `json:"offered_rate"`
	FairForward    float64 `json:"fair_forward"`
	PremiumPct     float64 `json:"premium_pct"`     // (offer - fair) / fair
	PercentileRank float64 `json:"percentile_rank"` // 분포에서 offer 이하 표본 비율 (%)
}

// EvaluateForward 제시 포워드 가격의 유불리 평가
// samples: 해당 시나리오의 시뮬레이션 환율 분포
// PercentileRank가 높을수록 offer가 분포 상단에 위치 (매도자에게 유리)
func EvaluateForward(offer float64, samples []float64, spot, iDom, iFor float64, tenorDays, basis int) (ForwardEvaluation, error) {
	if offer <= 0 {
		return ForwardEvaluation{}, fmt.Errorf("%w: offered rate %v must be > 0", ErrInvalidParameter, offer)
	}
	if len(samples) == 0 {
		return ForwardEvaluation{}, fmt.Errorf("%w: empty sample set", ErrInvalidParameter)
	}

	fair, err := CIPForward(spot, iDom, iFor, tenorDays, basis)
	if err != nil {
		return ForwardEvaluation{}, err
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	// offer 이하 표본 개수 → 분포 내 위치
	below := sort.SearchFloat64s(sorted, offer)
	for below < len(sorted) && sorted[below] <= offer {
		below++
	}

	return ForwardEvaluation{
		OfferedRate:    offer,
		FairForward:    fair,
		PremiumPct:     (offer - fair) / fair,
		PercentileRank: float64(below) / float64(len(sorted)) * 100,
	}, nil
}
