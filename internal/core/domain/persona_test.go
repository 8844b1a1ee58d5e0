package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPersona() Persona {
	return Persona{
		ID:            "persona-001",
		Name:          "Dana",
		Age:           34,
		Occupation:    "graphic designer",
		TechSavviness: TechModerate,
		Budget:        BudgetRange{Min: 100, Max: 500, SweetSpot: 300},
		CategoriesOfInterest: []string{
			"Laptops", "Monitors",
		},
		ValuedFeatures: []string{"battery life", "color accuracy"},
	}
}

func TestBudgetRange_Validate(t *testing.T) {
	assert.NoError(t, BudgetRange{Min: 0, Max: 100}.Validate())
	assert.ErrorIs(t, BudgetRange{Min: -1, Max: 100}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, BudgetRange{Min: 200, Max: 100}.Validate(), ErrInvalidInput)
}

func TestBudgetRange_SweetSpotOrMax(t *testing.T) {
	assert.InDelta(t, 300.0, BudgetRange{Min: 100, Max: 500, SweetSpot: 300}.SweetSpotOrMax(), 0.001)
	assert.InDelta(t, 500.0, BudgetRange{Min: 100, Max: 500}.SweetSpotOrMax(), 0.001, "defaults to max when unset")
}

func TestBudgetRange_Contains(t *testing.T) {
	b := BudgetRange{Min: 100, Max: 500}
	assert.True(t, b.Contains(100), "min is inclusive")
	assert.True(t, b.Contains(500), "max is inclusive")
	assert.False(t, b.Contains(99.99))
	assert.False(t, b.Contains(500.01))
}

func TestPersona_Validate(t *testing.T) {
	p := validPersona()
	require.NoError(t, p.Validate())

	noID := validPersona()
	noID.ID = ""
	assert.ErrorIs(t, noID.Validate(), ErrInvalidInput)

	badAge := validPersona()
	badAge.Age = 130
	assert.ErrorIs(t, badAge.Validate(), ErrInvalidInput)

	noCategories := validPersona()
	noCategories.CategoriesOfInterest = nil
	assert.ErrorIs(t, noCategories.Validate(), ErrInvalidInput)

	badBudget := validPersona()
	badBudget.Budget = BudgetRange{Min: 500, Max: 100}
	assert.ErrorIs(t, badBudget.Validate(), ErrInvalidInput)
}

func TestPersona_Matchers(t *testing.T) {
	p := validPersona()

	assert.True(t, p.InterestedIn("laptops"))
	assert.False(t, p.InterestedIn("cameras"))
	assert.True(t, p.ValuesFeature("Battery Life"))
	assert.False(t, p.ValuesFeature("5G"))
	assert.True(t, p.WithinBudget(250))
	assert.False(t, p.WithinBudget(600))
}

func TestPersona_LLMContext(t *testing.T) {
	p := validPersona()
	p.Communication = CommunicationStyle{Tone: "casual", Pace: "fast"}
	p.Shopping = ShoppingBehavior{PriceSensitivity: "high", DecisionTime: "short"}

	ctx := p.LLMContext()
	assert.Contains(t, ctx, "Dana")
	assert.Contains(t, ctx, "34 years old")
	assert.Contains(t, ctx, "Laptops, Monitors")
	assert.Contains(t, ctx, "$100.00-$500.00")
	assert.Contains(t, ctx, "casual tone")
}
