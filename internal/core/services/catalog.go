package services

import (
	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driving"
	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService provides catalog browsing on top of the catalog store.
// All operations are pure reads; the catalog is never mutated at runtime.
type CatalogService struct {
	store driven.CatalogStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// All returns every product in source order.
func (s *CatalogService) All() []domain.Product {
	return s.store.All()
}

// ByID returns the product with the given ID.
func (s *CatalogService) ByID(id string) (*domain.Product, error) {
	return s.store.ByID(id)
}

// Search returns products matching the criteria, in source order.
func (s *CatalogService) Search(criteria domain.FilterCriteria) []domain.Product {
	return s.store.Filter(criteria)
}

// ByCategories returns the concatenation of per-category matches,
// restricted to available products. A product matching several requested
// categories appears once per match; the duplicates are kept so the
// caller sees each category's slice intact.
func (s *CatalogService) ByCategories(categories []string, limit int) []domain.Product {
	var products []domain.Product
	for _, category := range categories {
		matches := s.store.Filter(domain.FilterCriteria{Category: category})
		products = append(products, matches...)
	}
	logger.Debug("category retrieval: %d categories, %d products", len(categories), len(products))
	return truncate(products, limit)
}

// Featured returns available featured products, up to limit.
func (s *CatalogService) Featured(limit int) []domain.Product {
	var out []domain.Product
	for _, p := range s.store.All() {
		if p.Featured && p.Available() {
			out = append(out, p)
		}
	}
	return truncate(out, limit)
}

// OnSale returns available discounted products, up to limit.
func (s *CatalogService) OnSale(limit int) []domain.Product {
	var out []domain.Product
	for _, p := range s.store.All() {
		if p.OnSale() && p.Available() {
			out = append(out, p)
		}
	}
	return truncate(out, limit)
}

// Categories returns the distinct product categories, sorted.
func (s *CatalogService) Categories() []string {
	return s.store.Categories()
}

// Brands returns the distinct product brands, sorted.
func (s *CatalogService) Brands() []string {
	return s.store.Brands()
}

// truncate bounds a slice to limit. Non-positive limits keep everything.
func truncate(products []domain.Product, limit int) []domain.Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}
