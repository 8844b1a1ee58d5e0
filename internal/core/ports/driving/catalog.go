package driving

import "github.com/salesmate-labs/salesmate-cli/internal/core/domain"

// CatalogService exposes catalog browsing operations.
type CatalogService interface {
	// All returns every product in source order.
	All() []domain.Product

	// ByID returns the product with the given ID, or domain.ErrNotFound.
	ByID(id string) (*domain.Product, error)

	// Search returns products matching the criteria, in source order.
	Search(criteria domain.FilterCriteria) []domain.Product

	// ByCategories returns the concatenation of per-category matches,
	// restricted to available products. Products matching more than one
	// requested category appear once per match; the duplicates are kept.
	ByCategories(categories []string, limit int) []domain.Product

	// Featured returns available featured products, up to limit.
	Featured(limit int) []domain.Product

	// OnSale returns available discounted products, up to limit.
	OnSale(limit int) []domain.Product

	// Categories returns the distinct product categories, sorted.
	Categories() []string

	// Brands returns the distinct product brands, sorted.
	Brands() []string
}

// Recommender scores and ranks products for personas and computes
// inter-product similarity. Both operations are deterministic given
// identical inputs.
type Recommender interface {
	// Recommend returns up to limit products ranked for the persona.
	// Products outside the persona's budget are excluded outright.
	Recommend(persona *domain.Persona, limit int) []domain.Product

	// Similar returns up to limit products similar to the given product.
	Similar(product *domain.Product, limit int) []domain.Product
}
