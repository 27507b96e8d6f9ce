package analytics

import (
	"fmt"
	"sort"
)

// =============================================================================
// 시나리오 종합 요약
// =============================================================================

// Summary 단일 시나리오의 종합 통계
// VaR95/VaR99는 각각 P5/P1과 동일하지만 호출자 명확성을 위해 별도 노출
type Summary struct {
	Mean       float64 `json:"mean"`
	P1         float64 `json:"p1"`
	P5         float64 `json:"p5"`
	P50        float64 `json:"p50"`
	P95        float64 `json:"p95"`
	P99        float64 `json:"p99"`
	VaR95      float64 `json:"var_95"`
	VaR99      float64 `json:"var_99"`
	CIPForward float64 `json:"cip_forward"`
}

// ScenarioSummary 표본 분포 + 포인트 금리로부터 종합 요약 계산
// spot/iDom/iFor: 포워드 평가용 포인트 입력 (분포와 별개로 호출자가 공급)
func ScenarioSummary(samples []float64, spot, iDom, iFor float64, tenorDays, basis int) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, fmt.Errorf("%w: empty sample set", ErrInvalidParameter)
	}

	forward, err := CIPForward(spot, iDom, iFor, tenorDays, basis)
	if err != nil {
		return Summary{}, err
	}

	// 백분위수는 한 번만 정렬해서 계산
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	p1 := percentileSorted(sorted, 1)
	p5 := percentileSorted(sorted, 5)

	return Summary{
		Mean:       Mean(samples),
		P1:         p1,
		P5:         p5,
		P50:        percentileSorted(sorted, 50),
		P95:        percentileSorted(sorted, 95),
		P99:        percentileSorted(sorted, 99),
		VaR95:      p5,
		VaR99:      p1,
		CIPForward: forward,
	}, nil
}
