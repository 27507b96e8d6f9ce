package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_OrderAndNames(t *testing.T) {
	scenarios := Catalog()
	require.Len(t, scenarios, 4)

	want := []string{
		"Normal",
		"Subida tasas BanRep",
		"Desanclaje inflacionario",
		"Choque externo",
	}
	for i, sc := range scenarios {
		assert.Equal(t, want[i], sc.Name)
	}
}

func TestScenario_Apply(t *testing.T) {
	in := baseInput()
	scenarios := Catalog()

	t.Run("Normal passes through unchanged", func(t *testing.T) {
		derived := scenarios[0].Apply(in)
		assert.Equal(t, in, derived)
	})

	t.Run("Subida tasas BanRep shifts domestic rate", func(t *testing.T) {
		derived := scenarios[1].Apply(in)
		assert.InDelta(t, 0.095, derived.DomesticRate.Min, 1e-12)
		assert.InDelta(t, 0.125, derived.DomesticRate.Max, 1e-12)
		// 나머지 구간 불변
		assert.Equal(t, in.ForeignRate, derived.ForeignRate)
		assert.Equal(t, in.DomesticInflation, derived.DomesticInflation)
		assert.Equal(t, in.ForeignInflation, derived.ForeignInflation)
	})

	t.Run("Desanclaje inflacionario shifts domestic inflation", func(t *testing.T) {
		derived := scenarios[2].Apply(in)
		assert.InDelta(t, 0.09, derived.DomesticInflation.Min, 1e-12)
		assert.InDelta(t, 0.11, derived.DomesticInflation.Max, 1e-12)
		assert.Equal(t, in.DomesticRate, derived.DomesticRate)
	})

	t.Run("Choque externo shifts both foreign ranges", func(t *testing.T) {
		derived := scenarios[3].Apply(in)
		assert.InDelta(t, 0.035, derived.ForeignRate.Min, 1e-12)
		assert.InDelta(t, 0.045, derived.ForeignRate.Max, 1e-12)
		assert.InDelta(t, 0.020, derived.ForeignInflation.Min, 1e-12)
		assert.InDelta(t, 0.030, derived.ForeignInflation.Max, 1e-12)
	})
}

func TestScenario_Apply_PreservesWidth(t *testing.T) {
	in := baseInput()

	for _, sc := range Catalog() {
		derived := sc.Apply(in)

		assert.InDelta(t, in.DomesticRate.Width(), derived.DomesticRate.Width(), 1e-12, sc.Name)
		assert.InDelta(t, in.ForeignRate.Width(), derived.ForeignRate.Width(), 1e-12, sc.Name)
		assert.InDelta(t, in.DomesticInflation.Width(), derived.DomesticInflation.Width(), 1e-12, sc.Name)
		assert.InDelta(t, in.ForeignInflation.Width(), derived.ForeignInflation.Width(), 1e-12, sc.Name)
	}
}

func TestScenario_Apply_KeepsOtherFields(t *testing.T) {
	in := baseInput()
	in.DomesticRateSkewed = true
	in.SkewParams = &SkewParams{Location: 0.09, Scale: 0.01, Skewness: 5}

	for _, sc := range Catalog() {
		derived := sc.Apply(in)
		assert.Equal(t, in.SpotRate, derived.SpotRate)
		assert.Equal(t, in.Theta, derived.Theta)
		assert.Equal(t, in.SampleCount, derived.SampleCount)
		assert.Equal(t, in.DomesticRateSkewed, derived.DomesticRateSkewed)
		assert.Equal(t, in.SkewParams, derived.SkewParams)
		assert.Equal(t, in.Seed, derived.Seed)
	}
}
