package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/wonny/fxsim/backend/internal/analytics"
)

var (
	// ErrInvalidParameter analytics 패키지와 동일한 sentinel 공유
	// errors.Is가 패키지 경계를 넘어 동작하도록 alias
	ErrInvalidParameter = analytics.ErrInvalidParameter

	// ErrScenarioNotFound 요청한 시나리오가 Run에 존재하지 않음
	ErrScenarioNotFound = errors.New("scenario not found")
)

// =============================================================================
// 입력 타입
// =============================================================================

// RateRange 금리/인플레이션 구간 (min, max)
type RateRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Width 구간 폭
func (r RateRange) Width() float64 {
	return r.Max - r.Min
}

// Mid 구간 중간값
func (r RateRange) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Shift 구간 전체를 delta만큼 평행이동 (폭 보존)
func (r RateRange) Shift(delta float64) RateRange {
	return RateRange{Min: r.Min + delta, Max: r.Max + delta}
}

// SkewParams 국내금리 skew-normal 분포 파라미터
// 중앙은행의 방향성 있는 금리 전망(예: 긴축 편향)을 표현
type SkewParams struct {
	Location float64 `json:"location"`
	Scale    float64 `json:"scale"`
	Skewness float64 `json:"skewness"`
}

// Input 단일 시뮬레이션 요청의 불변 파라미터 집합
// ⭐ SSOT: 모든 시뮬레이션 입력 검증은 Validate()에서만
type Input struct {
	SpotRate    float64 `json:"spot_rate"`    // 현물 환율 (> 0)
	Theta       float64 `json:"theta"`        // UIP 가중치 [0, 1], 나머지는 PPP
	SampleCount int     `json:"sample_count"` // 시나리오별 표본 수 (> 0)

	DomesticRate      RateRange `json:"domestic_rate"`
	ForeignRate       RateRange `json:"foreign_rate"`
	DomesticInflation RateRange `json:"domestic_inflation"`
	ForeignInflation  RateRange `json:"foreign_inflation"`

	DomesticRateSkewed bool        `json:"domestic_rate_skewed"`
	SkewParams         *SkewParams `json:"skew_params,omitempty"`

	// Seed 0이면 시간 기반 시드 사용
	Seed int64 `json:"seed,omitempty"`
}

// Validate 입력 파라미터 검증
func (in Input) Validate() error {
	if in.SpotRate <= 0 {
		return fmt.Errorf("%w: spot rate %v must be > 0", ErrInvalidParameter, in.SpotRate)
	}
	if in.Theta < 0 || in.Theta > 1 {
		return fmt.Errorf("%w: theta %v must be in [0, 1]", ErrInvalidParameter, in.Theta)
	}
	if in.SampleCount <= 0 {
		return fmt.Errorf("%w: sample count %d must be > 0", ErrInvalidParameter, in.SampleCount)
	}

	ranges := []struct {
		name string
		r    RateRange
	}{
		{"domestic_rate", in.DomesticRate},
		{"foreign_rate", in.ForeignRate},
		{"domestic_inflation", in.DomesticInflation},
		{"foreign_inflation", in.ForeignInflation},
	}
	for _, rr := range ranges {
		if rr.r.Min > rr.r.Max {
			return fmt.Errorf("%w: %s range min %v > max %v",
				ErrInvalidParameter, rr.name, rr.r.Min, rr.r.Max)
		}
	}

	if in.DomesticRateSkewed && in.SkewParams != nil && in.SkewParams.Scale <= 0 {
		return fmt.Errorf("%w: skew scale %v must be > 0", ErrInvalidParameter, in.SkewParams.Scale)
	}

	return nil
}

// ResolvedSkew skew 파라미터 결정 (입력 구성 시점에 한 번만 해석)
// 미지정 시 기본값: location = 국내금리 구간 중간값, scale = 0.01, skewness = 5
func (in Input) ResolvedSkew() SkewParams {
	if in.SkewParams != nil {
		return *in.SkewParams
	}
	return SkewParams{
		Location: in.DomesticRate.Mid(),
		Scale:    0.01,
		Skewness: 5,
	}
}

// Equal 두 입력이 동일한지 비교 (캐시 무효화 판단용)
func (in Input) Equal(other Input) bool {
	if in.SpotRate != other.SpotRate ||
		in.Theta != other.Theta ||
		in.SampleCount != other.SampleCount ||
		in.DomesticRate != other.DomesticRate ||
		in.ForeignRate != other.ForeignRate ||
		in.DomesticInflation != other.DomesticInflation ||
		in.ForeignInflation != other.ForeignInflation ||
		in.DomesticRateSkewed != other.DomesticRateSkewed ||
		in.Seed != other.Seed {
		return false
	}
	if (in.SkewParams == nil) != (other.SkewParams == nil) {
		return false
	}
	if in.SkewParams != nil && *in.SkewParams != *other.SkewParams {
		return false
	}
	return true
}

// =============================================================================
// 결과 타입
// =============================================================================

// ScenarioStats 시나리오별 요약 통계 (원본 DataFrame 행과 동일 구성)
type ScenarioStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P5     float64 `json:"p5"`
	P95    float64 `json:"p95"`
}

// ScenarioResult 한 시나리오의 시뮬레이션 결과
// Samples는 해당 시나리오가 단독 소유하며 생성 이후 변경되지 않음
type ScenarioResult struct {
	Name    string        `json:"scenario"`
	Samples []float64     `json:"-"`
	Stats   ScenarioStats `json:"stats"`
}

func newScenarioResult(name string, samples []float64) ScenarioResult {
	min, max := analytics.MinMax(samples)
	return ScenarioResult{
		Name:    name,
		Samples: samples,
		Stats: ScenarioStats{
			Mean:   analytics.Mean(samples),
			StdDev: analytics.StdDev(samples),
			Min:    min,
			Max:    max,
			P5:     analytics.Percentile(samples, 5),
			P95:    analytics.Percentile(samples, 95),
		},
	}
}

// SummaryRow 요약 테이블의 한 행 (카탈로그 순서)
type SummaryRow struct {
	Scenario string  `json:"scenario"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	P5       float64 `json:"p5"`
	P95      float64 `json:"p95"`
}

// TailRiskRow tail risk 리포트의 한 행
type TailRiskRow struct {
	Scenario string `json:"scenario"`
	analytics.TailMetrics
}

// ConfidenceInterval 시나리오별 신뢰구간 [lower, upper]
type ConfidenceInterval struct {
	Scenario string  `json:"scenario"`
	Level    float64 `json:"level"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
}

// =============================================================================
// Run
// =============================================================================

// Run 한 번의 시뮬레이션 호출의 전체 출력
// 호출마다 새로 생성되며 표본 배열은 Run 간에 절대 공유되지 않음
type Run struct {
	ID        string           `json:"run_id"`
	CreatedAt time.Time        `json:"created_at"`
	Input     Input            `json:"input"`
	Results   []ScenarioResult `json:"results"` // 카탈로그 순서
}

// Scenario 이름으로 시나리오 결과 조회
func (r *Run) Scenario(name string) (*ScenarioResult, error) {
	for i := range r.Results {
		if r.Results[i].Name == name {
			return &r.Results[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
}

// ScenarioSamples 시나리오의 원시 표본 조회 (읽기 전용 복사본)
// 히스토그램 렌더링 등 호출 측 용도
func (r *Run) ScenarioSamples(name string) ([]float64, error) {
	res, err := r.Scenario(name)
	if err != nil {
		return nil, err
	}
	samples := make([]float64, len(res.Samples))
	copy(samples, res.Samples)
	return samples, nil
}

// ScenarioNames 카탈로그 순서의 시나리오 이름 목록
func (r *Run) ScenarioNames() []string {
	names := make([]string, len(r.Results))
	for i, res := range r.Results {
		names[i] = res.Name
	}
	return names
}

// SummaryTable 시나리오별 요약 테이블 (카탈로그 순서)
// impact curve 차트(mean ± [mean-P5, P95-mean])와 통계 테이블 뷰에 사용
func (r *Run) SummaryTable() []SummaryRow {
	rows := make([]SummaryRow, len(r.Results))
	for i, res := range r.Results {
		rows[i] = SummaryRow{
			Scenario: res.Name,
			Mean:     res.Stats.Mean,
			StdDev:   res.Stats.StdDev,
			Min:      res.Stats.Min,
			Max:      res.Stats.Max,
			P5:       res.Stats.P5,
			P95:      res.Stats.P95,
		}
	}
	return rows
}

// Summary 시나리오 종합 요약 (백분위수 + VaR + CIP 포워드)
// spot/iDom/iFor는 포워드 평가용 포인트 입력
func (r *Run) Summary(name string, spot, iDom, iFor float64, tenorDays, basis int) (analytics.Summary, error) {
	res, err := r.Scenario(name)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.ScenarioSummary(res.Samples, spot, iDom, iFor, tenorDays, basis)
}

// TailRiskReport 전체 시나리오의 VaR/Expected Shortfall 리포트 (카탈로그 순서)
func (r *Run) TailRiskReport(confidence float64) ([]TailRiskRow, error) {
	rows := make([]TailRiskRow, len(r.Results))
	for i, res := range r.Results {
		metrics, err := analytics.ComputeTailMetrics(res.Samples, confidence)
		if err != nil {
			return nil, err
		}
		rows[i] = TailRiskRow{Scenario: res.Name, TailMetrics: metrics}
	}
	return rows, nil
}

// ConfidenceIntervals 전체 시나리오의 신뢰구간 계산
// level: 신뢰수준 (예: 0.95 → [P2.5, P97.5])
func (r *Run) ConfidenceIntervals(level float64) ([]ConfidenceInterval, error) {
	if level <= 0 || level >= 1 {
		return nil, fmt.Errorf("%w: confidence level %v must be in (0, 1)", ErrInvalidParameter, level)
	}

	alpha := 1 - level
	intervals := make([]ConfidenceInterval, len(r.Results))
	for i, res := range r.Results {
		intervals[i] = ConfidenceInterval{
			Scenario: res.Name,
			Level:    level,
			Lower:    analytics.Percentile(res.Samples, alpha/2*100),
			Upper:    analytics.Percentile(res.Samples, (1-alpha/2)*100),
		}
	}
	return intervals, nil
}
