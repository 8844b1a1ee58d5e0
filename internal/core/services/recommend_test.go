package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

func fixturePersona() *domain.Persona {
	return &domain.Persona{
		ID:                   "persona-001",
		Name:                 "Dana",
		Age:                  34,
		Occupation:           "graphic designer",
		TechSavviness:        domain.TechModerate,
		Budget:               domain.BudgetRange{Min: 100, Max: 500, SweetSpot: 300},
		CategoriesOfInterest: []string{"laptops"},
		ValuedFeatures:       []string{"backlit keyboard", "long battery"},
	}
}

func TestRecommendScoring(t *testing.T) {
	// strong: in budget, under sweet spot, category match, both valued
	// features, featured, on sale, rating >= 4.5
	strong := fixtureProduct("PROD-001", "Nimbus Book 13", "laptops", 299)
	strong.Features = []string{"Backlit Keyboard", "Long Battery Life"}
	strong.Featured = true
	strong.Price.OriginalPrice = 349
	strong.Price.DiscountPercent = 14
	strong.Rating = 4.6

	// weak: in budget but over sweet spot, category match, rating >= 4.0
	weak := fixtureProduct("PROD-002", "Nimbus Book 15", "laptops", 450)
	weak.Rating = 4.2

	// offCategory: in budget, under sweet spot, no other bonuses
	offCategory := fixtureProduct("PROD-003", "Pulse Buds", "audio", 150)
	offCategory.Rating = 3.9

	svc := NewRecommendService(&mockCatalogStore{products: []domain.Product{weak, offCategory, strong}})
	persona := fixturePersona()

	// strong = 10 + 5 + 15 + 6 + 2 + 3 + 4 = 45
	// weak = 10 + 15 + 2 = 27
	// offCategory = 10 + 5 = 15
	assert.InDelta(t, 45, svc.scoreForPersona(&strong, persona), 0.001)
	assert.InDelta(t, 27, svc.scoreForPersona(&weak, persona), 0.001)
	assert.InDelta(t, 15, svc.scoreForPersona(&offCategory, persona), 0.001)

	results := svc.Recommend(persona, 0)
	assert.Equal(t, []string{"PROD-001", "PROD-002", "PROD-003"}, collectIDs(results))
}

func TestRecommendBudgetGate(t *testing.T) {
	tooCheap := fixtureProduct("PROD-001", "Clip Light", "laptops", 49)
	tooDear := fixtureProduct("PROD-002", "Nimbus Book Ultra", "laptops", 1299)
	atMax := fixtureProduct("PROD-003", "Nimbus Book 15", "laptops", 500)

	svc := NewRecommendService(&mockCatalogStore{products: []domain.Product{tooCheap, tooDear, atMax}})

	results := svc.Recommend(fixturePersona(), 0)
	assert.Equal(t, []string{"PROD-003"}, collectIDs(results))
}

func TestRecommendSkipsUnavailable(t *testing.T) {
	gone := fixtureProduct("PROD-001", "Nimbus Book 13", "laptops", 299)
	gone.Stock = domain.StockInfo{Status: domain.StockOutOfStock, Quantity: 0}
	here := fixtureProduct("PROD-002", "Nimbus Book 15", "laptops", 450)

	svc := NewRecommendService(&mockCatalogStore{products: []domain.Product{gone, here}})

	results := svc.Recommend(fixturePersona(), 0)
	assert.Equal(t, []string{"PROD-002"}, collectIDs(results))
}

func TestRecommendTieBreaksOnCatalogOrder(t *testing.T) {
	first := fixtureProduct("PROD-001", "Nimbus Book 13", "laptops", 250)
	second := fixtureProduct("PROD-002", "Nimbus Book 14", "laptops", 250)

	svc := NewRecommendService(&mockCatalogStore{products: []domain.Product{first, second}})

	results := svc.Recommend(fixturePersona(), 0)
	assert.Equal(t, []string{"PROD-001", "PROD-002"}, collectIDs(results))
}

func TestRecommendLimit(t *testing.T) {
	products := []domain.Product{
		fixtureProduct("PROD-001", "Nimbus Book 13", "laptops", 250),
		fixtureProduct("PROD-002", "Nimbus Book 14", "laptops", 260),
		fixtureProduct("PROD-003", "Nimbus Book 15", "laptops", 270),
	}
	svc := NewRecommendService(&mockCatalogStore{products: products})

	assert.Len(t, svc.Recommend(fixturePersona(), 2), 2)
}

func TestSimilarityScore(t *testing.T) {
	base := fixtureProduct("PROD-001", "Pulse Buds", "audio", 199)
	base.Subcategory = "earbuds"
	base.Brand = "Pulse"
	base.Tier = domain.TierMidRange
	base.Tags = []string{"wireless", "noise-cancelling", "compact"}

	tests := []struct {
		name  string
		tweak func(*domain.Product)
		want  float64
	}{
		{
			// 10 subcategory + 5 brand + 8 near price + 3 tier + 4 two shared tags
			name: "close sibling",
			tweak: func(p *domain.Product) {
				p.Price.Price = 229
				p.Tags = []string{"wireless", "noise-cancelling"}
			},
			want: 30,
		},
		{
			// 8 near price + 3 tier, nothing else shared
			name: "same category stranger",
			tweak: func(p *domain.Product) {
				p.Subcategory = "speakers"
				p.Brand = "Echo"
				p.Price.Price = 179
				p.Tags = nil
			},
			want: 11,
		},
		{
			// price bands are strict less-than, checked 50 then 100 then 200
			name: "price band boundary",
			tweak: func(p *domain.Product) {
				p.Subcategory = "speakers"
				p.Brand = "Echo"
				p.Price.Price = 249 // diff exactly 50 falls into the <100 band
				p.Tags = nil
			},
			want: 8, // 5 close price + 3 tier
		},
		{
			// diff 250 lands outside every band
			name: "distant price",
			tweak: func(p *domain.Product) {
				p.Subcategory = "speakers"
				p.Brand = "Echo"
				p.Price.Price = 449
				p.Tags = nil
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := fixtureProduct("PROD-002", "Other", "audio", 199)
			other.Tier = domain.TierMidRange
			tt.tweak(&other)
			assert.InDelta(t, tt.want, similarity(&base, &other), 0.001)
		})
	}
}

func TestSimilarExcludesSelfAndOtherCategories(t *testing.T) {
	base := fixtureProduct("PROD-001", "Pulse Buds", "audio", 199)
	sibling := fixtureProduct("PROD-002", "Pulse Buds Lite", "audio", 149)
	laptop := fixtureProduct("PROD-003", "Nimbus Book 13", "laptops", 899)
	gone := fixtureProduct("PROD-004", "Pulse Max", "audio", 299)
	gone.Stock = domain.StockInfo{Status: domain.StockOutOfStock, Quantity: 0}

	svc := NewRecommendService(&mockCatalogStore{products: []domain.Product{base, sibling, laptop, gone}})

	results := svc.Similar(&base, 5)
	assert.Equal(t, []string{"PROD-002"}, collectIDs(results))
}

func TestSimilarRanksByScore(t *testing.T) {
	base := fixtureProduct("PROD-001", "Pulse Buds", "audio", 199)
	base.Subcategory = "earbuds"
	base.Brand = "Pulse"

	far := fixtureProduct("PROD-002", "Echo Bar", "audio", 599)
	far.Subcategory = "soundbars"
	far.Brand = "Echo"

	near := fixtureProduct("PROD-003", "Pulse Buds Lite", "audio", 149)
	near.Subcategory = "earbuds"
	near.Brand = "Pulse"

	svc := NewRecommendService(&mockCatalogStore{products: []domain.Product{base, far, near}})

	results := svc.Similar(&base, 5)
	assert.Equal(t, []string{"PROD-003", "PROD-002"}, collectIDs(results))
}
