package analytics

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidParameter 입력 파라미터가 유효 범위를 벗어남
	ErrInvalidParameter = errors.New("invalid parameter")
)

// =============================================================================
// VaR / Expected Shortfall
// ⭐ SSOT: VaR는 손실액이 아니라 환율 수준(COP/USD)으로 표현
// 하방 시나리오의 환율 자체가 의사결정 수치이기 때문
// =============================================================================

// VaR 시뮬레이션 분포 기반 Value at Risk 계산
// confidence: 신뢰수준 (예: 0.95 → 하위 5% 백분위수)
// 반환: 해당 신뢰수준에서의 환율 수준
func VaR(samples []float64, confidence float64) (float64, error) {
	if err := validateConfidence(confidence); err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("%w: empty sample set", ErrInvalidParameter)
	}
	return Percentile(samples, (1-confidence)*100), nil
}

// ExpectedShortfall VaR 임계값 이하 표본의 평균 (Conditional VaR)
// 경계 동률로 인해 임계값 이하 표본이 없으면 VaR 값 자체를 반환
func ExpectedShortfall(samples []float64, confidence float64) (float64, error) {
	varValue, err := VaR(samples, confidence)
	if err != nil {
		return 0, err
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	// 임계값 이하 tail 평균
	var sum float64
	var count int
	for _, v := range sorted {
		if v > varValue {
			break
		}
		sum += v
		count++
	}
	if count == 0 {
		return varValue, nil
	}
	return sum / float64(count), nil
}

// TailMetrics VaR와 Expected Shortfall을 한 번에 계산
type TailMetrics struct {
	Confidence        float64 `json:"confidence"`
	VaR               float64 `json:"var"`
	ExpectedShortfall float64 `json:"expected_shortfall"`
	TailProbability   float64 `json:"tail_probability"`
}

// ComputeTailMetrics 단일 표본 배열의 tail 통계 계산
func ComputeTailMetrics(samples []float64, confidence float64) (TailMetrics, error) {
	varValue, err := VaR(samples, confidence)
	if err != nil {
		return TailMetrics{}, err
	}
	es, err := ExpectedShortfall(samples, confidence)
	if err != nil {
		return TailMetrics{}, err
	}
	return TailMetrics{
		Confidence:        confidence,
		VaR:               varValue,
		ExpectedShortfall: es,
		TailProbability:   1 - confidence,
	}, nil
}

func validateConfidence(confidence float64) error {
	if confidence <= 0 || confidence >= 1 {
		return fmt.Errorf("%w: confidence %v must be in (0, 1)", ErrInvalidParameter, confidence)
	}
	return nil
}
