package services

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockCatalogStore implements driven.CatalogStore over a fixed slice.
type mockCatalogStore struct {
	products  []domain.Product
	reloadErr error
	reloads   int
}

func (m *mockCatalogStore) All() []domain.Product {
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out
}

func (m *mockCatalogStore) ByID(id string) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
}

func (m *mockCatalogStore) BySKU(sku string) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].SKU == sku {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: sku %s", domain.ErrNotFound, sku)
}

func (m *mockCatalogStore) Filter(criteria domain.FilterCriteria) []domain.Product {
	var out []domain.Product
	for i := range m.products {
		if criteria.Matches(&m.products[i]) {
			out = append(out, m.products[i])
		}
	}
	return out
}

func (m *mockCatalogStore) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range m.products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

func (m *mockCatalogStore) Brands() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range m.products {
		if _, ok := seen[p.Brand]; !ok {
			seen[p.Brand] = struct{}{}
			out = append(out, p.Brand)
		}
	}
	sort.Strings(out)
	return out
}

func (m *mockCatalogStore) Reload() error {
	m.reloads++
	return m.reloadErr
}

// --- Fixtures ---

// fixtureProduct builds an in-stock product with sane defaults.
func fixtureProduct(id, name, category string, price float64) domain.Product {
	return domain.Product{
		ID:          id,
		SKU:         "SKU-" + id,
		Name:        name,
		Category:    category,
		Subcategory: category,
		Brand:       "Aurora",
		Price:       domain.PriceInfo{Price: price, Currency: "USD"},
		Stock:       domain.StockInfo{Status: domain.StockInStock, Quantity: 25, ReorderLevel: 5},
		Tier:        domain.TierMidRange,
		Warranty:    domain.Warranty{Months: 12, ReturnDays: 30},
		Rating:      4.2,
		ReviewCount: 120,
	}
}

func fixtureCatalog() []domain.Product {
	laptop := fixtureProduct("PROD-001", "Aurora Laptop 14", "laptops", 899)
	laptop.Featured = true

	headphones := fixtureProduct("PROD-002", "Aurora Pods Pro", "audio", 199)
	headphones.Price.OriginalPrice = 249
	headphones.Price.DiscountPercent = 20

	monitor := fixtureProduct("PROD-003", "Aurora View 27", "monitors", 349)
	monitor.Stock = domain.StockInfo{Status: domain.StockLowStock, Quantity: 3, ReorderLevel: 5}

	soldOut := fixtureProduct("PROD-004", "Aurora Dock", "accessories", 129)
	soldOut.Stock = domain.StockInfo{Status: domain.StockOutOfStock, Quantity: 0}
	soldOut.Featured = true

	return []domain.Product{laptop, headphones, monitor, soldOut}
}

// --- Tests ---

func TestCatalogServiceByID(t *testing.T) {
	svc := NewCatalogService(&mockCatalogStore{products: fixtureCatalog()})

	p, err := svc.ByID("PROD-002")
	require.NoError(t, err)
	assert.Equal(t, "Aurora Pods Pro", p.Name)

	_, err = svc.ByID("PROD-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogServiceSearchExcludesUnavailable(t *testing.T) {
	svc := NewCatalogService(&mockCatalogStore{products: fixtureCatalog()})

	results := svc.Search(domain.FilterCriteria{})
	ids := collectIDs(results)
	assert.NotContains(t, ids, "PROD-004")
	assert.Contains(t, ids, "PROD-003") // low stock still counts as available

	all := svc.Search(domain.FilterCriteria{IncludeUnavailable: true})
	assert.Len(t, all, 4)
}

func TestCatalogServiceByCategories(t *testing.T) {
	svc := NewCatalogService(&mockCatalogStore{products: fixtureCatalog()})

	t.Run("concatenates in request order", func(t *testing.T) {
		results := svc.ByCategories([]string{"audio", "laptops"}, 0)
		assert.Equal(t, []string{"PROD-002", "PROD-001"}, collectIDs(results))
	})

	t.Run("keeps duplicates across repeated categories", func(t *testing.T) {
		results := svc.ByCategories([]string{"laptops", "laptops"}, 0)
		assert.Equal(t, []string{"PROD-001", "PROD-001"}, collectIDs(results))
	})

	t.Run("excludes unavailable products", func(t *testing.T) {
		results := svc.ByCategories([]string{"accessories"}, 0)
		assert.Empty(t, results)
	})

	t.Run("applies limit after concatenation", func(t *testing.T) {
		results := svc.ByCategories([]string{"audio", "laptops", "monitors"}, 2)
		assert.Equal(t, []string{"PROD-002", "PROD-001"}, collectIDs(results))
	})
}

func TestCatalogServiceFeatured(t *testing.T) {
	svc := NewCatalogService(&mockCatalogStore{products: fixtureCatalog()})

	// PROD-004 is featured but out of stock.
	results := svc.Featured(10)
	assert.Equal(t, []string{"PROD-001"}, collectIDs(results))
}

func TestCatalogServiceOnSale(t *testing.T) {
	svc := NewCatalogService(&mockCatalogStore{products: fixtureCatalog()})

	results := svc.OnSale(10)
	assert.Equal(t, []string{"PROD-002"}, collectIDs(results))
}

func TestCatalogServiceCategoriesAndBrands(t *testing.T) {
	svc := NewCatalogService(&mockCatalogStore{products: fixtureCatalog()})

	assert.Equal(t, []string{"accessories", "audio", "laptops", "monitors"}, svc.Categories())
	assert.Equal(t, []string{"Aurora"}, svc.Brands())
}

func collectIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
