package simulation

import (
	"math"
	"time"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// =============================================================================
// Sampler — UIP + PPP 단일 기간 환율 분포 생성
// =============================================================================

// Sampler 하나의 시나리오에 대한 독립 표본 생성기
// 공유 가변 상태가 없으므로 시나리오별 Sampler는 동시 실행 안전
type Sampler struct {
	src exprand.Source
}

// NewSampler 새 샘플러 생성
// seed 0이면 시간 기반 시드 사용
func NewSampler(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{src: exprand.NewSource(uint64(seed))}
}

// Sample UIP + PPP 모델로 SampleCount개의 기말 환율 표본 생성
//
//	delta_e = theta*(i_dom - i_for) + (1-theta)*(pi_dom - pi_for)
//	S_T     = S_t * (1 + delta_e)
//
// 입력은 호출 전에 Validate()를 통과했다고 가정
func (s *Sampler) Sample(in Input) []float64 {
	n := in.SampleCount

	iFor := s.uniformDraws(in.ForeignRate, n)
	piDom := s.uniformDraws(in.DomesticInflation, n)
	piFor := s.uniformDraws(in.ForeignInflation, n)

	var iDom []float64
	if in.DomesticRateSkewed {
		iDom = s.skewNormalDraws(in.ResolvedSkew(), n)
	} else {
		iDom = s.uniformDraws(in.DomesticRate, n)
	}

	out := make([]float64, n)
	for i := range out {
		deltaE := in.Theta*(iDom[i]-iFor[i]) + (1-in.Theta)*(piDom[i]-piFor[i])
		out[i] = in.SpotRate * (1 + deltaE)
	}
	return out
}

// uniformDraws [min, max] 연속 균등분포에서 n개 추출
// 퇴화 구간(min == max)은 상수 표본을 생성
func (s *Sampler) uniformDraws(r RateRange, n int) []float64 {
	draws := make([]float64, n)
	if r.Width() == 0 {
		for i := range draws {
			draws[i] = r.Min
		}
		return draws
	}

	u := distuv.Uniform{Min: r.Min, Max: r.Max, Src: s.src}
	for i := range draws {
		draws[i] = u.Rand()
	}
	return draws
}

// skewNormalDraws skew-normal 분포에서 n개 추출 (Azzalini 표현)
// 표준정규 u0, v 두 개로 SN(skewness) 표본을 만들고 location/scale 변환
func (s *Sampler) skewNormalDraws(p SkewParams, n int) []float64 {
	std := distuv.Normal{Mu: 0, Sigma: 1, Src: s.src}
	delta := p.Skewness / math.Sqrt(1+p.Skewness*p.Skewness)
	coef := math.Sqrt(1 - delta*delta)

	draws := make([]float64, n)
	for i := range draws {
		u0 := std.Rand()
		v := std.Rand()
		z := delta*u0 + coef*v
		if u0 < 0 {
			z = -z
		}
		draws[i] = p.Location + p.Scale*z
	}
	return draws
}
