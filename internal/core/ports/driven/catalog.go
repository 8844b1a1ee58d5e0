package driven

import "github.com/salesmate-labs/salesmate-cli/internal/core/domain"

// CatalogStore provides read-only access to the immutable product catalog.
// The full catalog is loaded once and cached; Reload invalidates the cache
// and re-reads the source. All lookups are pure and preserve source order.
type CatalogStore interface {
	// All returns every product in source order.
	All() []domain.Product

	// ByID returns the product with the given ID, or domain.ErrNotFound.
	ByID(id string) (*domain.Product, error)

	// BySKU returns the product with the given SKU, or domain.ErrNotFound.
	BySKU(sku string) (*domain.Product, error)

	// Filter returns the products matching the criteria, in source order.
	Filter(criteria domain.FilterCriteria) []domain.Product

	// Categories returns the distinct product categories, sorted.
	Categories() []string

	// Brands returns the distinct product brands, sorted.
	Brands() []string

	// Reload invalidates the cache and re-reads the source.
	Reload() error
}

// PersonaStore provides read-only access to the loaded customer personas.
type PersonaStore interface {
	// All returns every persona in source order.
	All() []domain.Persona

	// ByID returns the persona with the given ID, or domain.ErrNotFound.
	ByID(id string) (*domain.Persona, error)
}
