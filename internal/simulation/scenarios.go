package simulation

// =============================================================================
// 시나리오 카탈로그
// ⭐ SSOT: 시나리오 추가는 코드 분기가 아니라 이 테이블 수정으로만
// =============================================================================

// RangeField shift가 적용되는 입력 구간 식별자
type RangeField string

const (
	FieldDomesticRate      RangeField = "domestic_rate"
	FieldForeignRate       RangeField = "foreign_rate"
	FieldDomesticInflation RangeField = "domestic_inflation"
	FieldForeignInflation  RangeField = "foreign_inflation"
)

// RangeShift 구간 하나에 대한 가산 shift (양끝 동일 적용, 폭 보존)
type RangeShift struct {
	Field RangeField `json:"field"`
	Delta float64    `json:"delta"`
}

// Scenario 이름 붙은 뉴스 시나리오 정의
type Scenario struct {
	Name   string       `json:"name"`
	Shifts []RangeShift `json:"shifts,omitempty"`
}

// 고정 시나리오 카탈로그 (테이블 순서 = 요약 테이블 순서)
var catalog = []Scenario{
	{Name: "Normal"},
	{Name: "Subida tasas BanRep", Shifts: []RangeShift{
		{Field: FieldDomesticRate, Delta: 0.015},
	}},
	{Name: "Desanclaje inflacionario", Shifts: []RangeShift{
		{Field: FieldDomesticInflation, Delta: 0.02},
	}},
	{Name: "Choque externo", Shifts: []RangeShift{
		{Field: FieldForeignRate, Delta: -0.01},
		{Field: FieldForeignInflation, Delta: -0.005},
	}},
}

// Catalog 고정 시나리오 카탈로그 반환 (순서 보장)
func Catalog() []Scenario {
	out := make([]Scenario, len(catalog))
	copy(out, catalog)
	return out
}

// Apply 시나리오 shift를 적용한 파생 입력 생성
// shift가 없는 구간은 그대로 통과, 나머지 필드는 모두 동일
func (sc Scenario) Apply(in Input) Input {
	derived := in
	for _, shift := range sc.Shifts {
		switch shift.Field {
		case FieldDomesticRate:
			derived.DomesticRate = derived.DomesticRate.Shift(shift.Delta)
		case FieldForeignRate:
			derived.ForeignRate = derived.ForeignRate.Shift(shift.Delta)
		case FieldDomesticInflation:
			derived.DomesticInflation = derived.DomesticInflation.Shift(shift.Delta)
		case FieldForeignInflation:
			derived.ForeignInflation = derived.ForeignInflation.Shift(shift.Delta)
		}
	}
	return derived
}
