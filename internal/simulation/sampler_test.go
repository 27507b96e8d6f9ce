package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput() Input {
	return Input{
		SpotRate:          4000,
		Theta:             0.6,
		SampleCount:       1000,
		DomesticRate:      RateRange{Min: 0.08, Max: 0.11},
		ForeignRate:       RateRange{Min: 0.045, Max: 0.055},
		DomesticInflation: RateRange{Min: 0.07, Max: 0.09},
		ForeignInflation:  RateRange{Min: 0.025, Max: 0.035},
		Seed:              42,
	}
}

func TestSampler_SampleCount(t *testing.T) {
	in := baseInput()
	for _, n := range []int{1, 1000, 100_000} {
		in.SampleCount = n
		samples := NewSampler(in.Seed).Sample(in)
		require.Len(t, samples, n, "sample count %d", n)
	}
}

func TestSampler_Deterministic(t *testing.T) {
	in := baseInput()

	a := NewSampler(in.Seed).Sample(in)
	b := NewSampler(in.Seed).Sample(in)
	assert.Equal(t, a, b, "same seed must reproduce bit-identical draws")

	c := NewSampler(in.Seed + 1).Sample(in)
	assert.NotEqual(t, a, c, "different seed should diverge")
}

func TestSampler_DegenerateRange(t *testing.T) {
	// 모든 구간 퇴화 → 결정적 출력
	in := baseInput()
	in.DomesticRate = RateRange{Min: 0.09, Max: 0.09}
	in.ForeignRate = RateRange{Min: 0.05, Max: 0.05}
	in.DomesticInflation = RateRange{Min: 0.06, Max: 0.06}
	in.ForeignInflation = RateRange{Min: 0.03, Max: 0.03}

	samples := NewSampler(1).Sample(in)

	// delta_e = 0.6*(0.09-0.05) + 0.4*(0.06-0.03) = 0.036
	want := 4000 * 1.036
	for _, s := range samples {
		require.InDelta(t, want, s, 1e-9)
	}
}

func TestSampler_ThetaBoundaries(t *testing.T) {
	in := baseInput()
	in.DomesticRate = RateRange{Min: 0.10, Max: 0.10}
	in.ForeignRate = RateRange{Min: 0.05, Max: 0.05}
	in.DomesticInflation = RateRange{Min: 0.06, Max: 0.06}
	in.ForeignInflation = RateRange{Min: 0.03, Max: 0.03}

	// theta=1 → 순수 UIP: 4000 * (1 + (0.10 - 0.05))
	in.Theta = 1
	for _, s := range NewSampler(1).Sample(in) {
		require.InDelta(t, 4200, s, 1e-9)
	}

	// theta=0 → 순수 PPP: 4000 * (1 + (0.06 - 0.03))
	in.Theta = 0
	for _, s := range NewSampler(1).Sample(in) {
		require.InDelta(t, 4120, s, 1e-9)
	}
}

func TestSampler_UniformDrawsWithinRange(t *testing.T) {
	in := baseInput()
	in.Theta = 1 // 인플레이션 무시
	in.DomesticInflation = RateRange{Min: 0, Max: 0}
	in.ForeignInflation = RateRange{Min: 0, Max: 0}
	in.SampleCount = 10_000

	// i_dom ∈ [0.08, 0.11], i_for ∈ [0.045, 0.055]
	// → delta_e ∈ [0.025, 0.065] → S_T ∈ [4100, 4260]
	for _, s := range NewSampler(7).Sample(in) {
		require.GreaterOrEqual(t, s, 4100.0)
		require.LessOrEqual(t, s, 4260.0)
	}
}

func TestSampler_SkewedDomesticRate(t *testing.T) {
	in := baseInput()
	in.DomesticRateSkewed = true
	in.SkewParams = &SkewParams{Location: 0.09, Scale: 0.01, Skewness: 5}
	in.Theta = 1
	in.ForeignRate = RateRange{Min: 0.05, Max: 0.05}
	in.DomesticInflation = RateRange{Min: 0, Max: 0}
	in.ForeignInflation = RateRange{Min: 0, Max: 0}
	in.SampleCount = 50_000

	samples := NewSampler(42).Sample(in)

	// i_dom 복원: s = 4000*(1 + i_dom - 0.05) → i_dom = s/4000 - 1 + 0.05
	rates := make([]float64, len(samples))
	for i, s := range samples {
		rates[i] = s/4000 - 1 + 0.05
	}

	// skew-normal(loc, scale, alpha) 평균 = loc + scale*delta*sqrt(2/pi),
	// alpha=5 → delta≈0.9806 → 평균 ≈ loc + 0.00782
	var sum float64
	for _, r := range rates {
		sum += r
	}
	mean := sum / float64(len(rates))
	assert.InDelta(t, 0.09782, mean, 0.001)

	// 우측 비대칭: 평균이 location 위에 있어야 함
	assert.Greater(t, mean, 0.09)
	t.Logf("skewed i_dom mean: %.5f", mean)
}

func TestSampler_SkewDefaults(t *testing.T) {
	in := baseInput()
	in.DomesticRateSkewed = true
	in.SkewParams = nil

	resolved := in.ResolvedSkew()
	assert.InDelta(t, in.DomesticRate.Mid(), resolved.Location, 1e-12)
	assert.Equal(t, 0.01, resolved.Scale)
	assert.Equal(t, 5.0, resolved.Skewness)

	// 기본값으로도 표본 생성이 동작해야 함
	samples := NewSampler(9).Sample(in)
	require.Len(t, samples, in.SampleCount)
}
