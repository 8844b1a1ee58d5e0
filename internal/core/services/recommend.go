package services

import (
	"math"
	"sort"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driving"
	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// Ensure RecommendService implements the interface.
var _ driving.Recommender = (*RecommendService)(nil)

// Scoring weights for persona-based recommendation.
const (
	scoreWithinBudget    = 10.0
	scoreSweetSpot       = 5.0
	scoreCategoryMatch   = 15.0
	scorePerFeatureMatch = 3.0
	scoreFeatured        = 2.0
	scoreOnSale          = 3.0
	scoreRatingHigh      = 4.0 // rating >= 4.5
	scoreRatingGood      = 2.0 // rating >= 4.0
)

// Scoring weights for inter-product similarity.
const (
	simSameSubcategory = 10.0
	simSameBrand       = 5.0
	simSameTier        = 3.0
	simPerSharedTag    = 2.0
	simPriceNear       = 8.0 // |Δprice| < 50
	simPriceClose      = 5.0 // |Δprice| < 100
	simPriceFar        = 2.0 // |Δprice| < 200
)

// RecommendService scores and ranks catalog products. Both algorithms are
// deterministic for identical inputs: ties break on catalog order.
type RecommendService struct {
	store driven.CatalogStore
}

// NewRecommendService creates a new recommendation service.
func NewRecommendService(store driven.CatalogStore) *RecommendService {
	return &RecommendService{store: store}
}

type scoredProduct struct {
	product domain.Product
	score   float64
}

// Recommend returns up to limit available products ranked for the persona.
// A product priced outside [budget min, budget max] scores zero and is
// excluded from the ranking entirely.
func (s *RecommendService) Recommend(persona *domain.Persona, limit int) []domain.Product {
	logger.Section("Recommendation Scoring")

	var scored []scoredProduct
	for _, p := range s.store.All() {
		if !p.Available() {
			continue
		}
		score := s.scoreForPersona(&p, persona)
		if score <= 0 {
			continue
		}
		logger.Debug("%s scored %.1f", p.ID, score)
		scored = append(scored, scoredProduct{product: p, score: score})
	}

	return topProducts(scored, limit)
}

// scoreForPersona computes the personalised score. Zero means the product
// is out of budget and must not be ranked.
func (s *RecommendService) scoreForPersona(p *domain.Product, persona *domain.Persona) float64 {
	if !persona.WithinBudget(p.Price.Price) {
		return 0
	}

	score := scoreWithinBudget
	if p.Price.Price <= persona.Budget.SweetSpotOrMax() {
		score += scoreSweetSpot
	}

	if persona.InterestedIn(p.Category) {
		score += scoreCategoryMatch
	}

	for _, feature := range persona.ValuedFeatures {
		if p.HasFeatureKeyword(feature) {
			score += scorePerFeatureMatch
		}
	}

	if p.Featured {
		score += scoreFeatured
	}
	if p.OnSale() {
		score += scoreOnSale
	}

	switch {
	case p.Rating >= 4.5:
		score += scoreRatingHigh
	case p.Rating >= 4.0:
		score += scoreRatingGood
	}

	return score
}

// Similar returns up to limit available same-category products ranked by
// similarity to the given product.
func (s *RecommendService) Similar(product *domain.Product, limit int) []domain.Product {
	var scored []scoredProduct
	for _, p := range s.store.All() {
		if p.ID == product.ID || !p.Available() {
			continue
		}
		if !p.MatchesCategory(product.Category) {
			continue
		}
		scored = append(scored, scoredProduct{product: p, score: similarity(product, &p)})
	}

	return topProducts(scored, limit)
}

// similarity computes the pairwise similarity score. The price bands are
// strict less-than checks applied in order 50, 100, 200; first match wins.
func similarity(a, b *domain.Product) float64 {
	var score float64

	if a.MatchesSubcategory(b.Subcategory) {
		score += simSameSubcategory
	}
	if a.MatchesBrand(b.Brand) {
		score += simSameBrand
	}

	diff := math.Abs(a.Price.Price - b.Price.Price)
	switch {
	case diff < 50:
		score += simPriceNear
	case diff < 100:
		score += simPriceClose
	case diff < 200:
		score += simPriceFar
	}

	if a.Tier == b.Tier {
		score += simSameTier
	}

	score += float64(sharedTagCount(a.Tags, b.Tags)) * simPerSharedTag

	return score
}

// sharedTagCount returns the size of the tag set intersection.
func sharedTagCount(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	count := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			count++
			delete(set, t)
		}
	}
	return count
}

// topProducts sorts descending by score, stable on catalog order, and
// returns at most limit products.
func topProducts(scored []scoredProduct, limit int) []domain.Product {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]domain.Product, 0, len(scored))
	for _, sp := range scored {
		out = append(out, sp.product)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
