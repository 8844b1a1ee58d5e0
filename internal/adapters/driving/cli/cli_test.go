package cli

import (
	"time"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

// mockCatalogService implements driving.CatalogService over a fixed slice.
type mockCatalogService struct {
	products []domain.Product
}

func (m *mockCatalogService) All() []domain.Product {
	return m.products
}

func (m *mockCatalogService) ByID(id string) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogService) Search(criteria domain.FilterCriteria) []domain.Product {
	var out []domain.Product
	for i := range m.products {
		if criteria.Matches(&m.products[i]) {
			out = append(out, m.products[i])
		}
	}
	return out
}

func (m *mockCatalogService) ByCategories(categories []string, limit int) []domain.Product {
	var out []domain.Product
	for _, c := range categories {
		out = append(out, m.Search(domain.FilterCriteria{Category: c})...)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *mockCatalogService) Featured(limit int) []domain.Product {
	var out []domain.Product
	for i := range m.products {
		if m.products[i].Featured && m.products[i].Available() {
			out = append(out, m.products[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *mockCatalogService) OnSale(limit int) []domain.Product {
	var out []domain.Product
	for i := range m.products {
		if m.products[i].OnSale() && m.products[i].Available() {
			out = append(out, m.products[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *mockCatalogService) Categories() []string {
	return []string{"audio", "laptops"}
}

func (m *mockCatalogService) Brands() []string {
	return []string{"Aurora", "Nimbus"}
}

// mockRecommender implements driving.Recommender with canned results.
type mockRecommender struct {
	recommended []domain.Product
	similar     []domain.Product
}

func (m *mockRecommender) Recommend(_ *domain.Persona, limit int) []domain.Product {
	out := m.recommended
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *mockRecommender) Similar(_ *domain.Product, limit int) []domain.Product {
	out := m.similar
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// mockPersonaDirectory implements driving.PersonaDirectory over a fixed slice.
type mockPersonaDirectory struct {
	personas []domain.Persona
}

func (m *mockPersonaDirectory) All() []domain.Persona {
	return m.personas
}

func (m *mockPersonaDirectory) ByID(id string) (*domain.Persona, error) {
	for i := range m.personas {
		if m.personas[i].ID == id {
			return &m.personas[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockHistoryBrowser implements driving.HistoryBrowser.
type mockHistoryBrowser struct {
	summaries []domain.Summary
	err       error
}

func (m *mockHistoryBrowser) List(limit int) ([]domain.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := m.summaries
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func testProduct(id, name, category string, price float64) domain.Product {
	return domain.Product{
		ID:          id,
		SKU:         "SKU-" + id,
		Name:        name,
		Category:    category,
		Subcategory: category,
		Brand:       "Aurora",
		Description: name + " description",
		Price:       domain.PriceInfo{Price: price, OriginalPrice: price, Currency: "USD"},
		Stock:       domain.StockInfo{Status: domain.StockInStock, Quantity: 10, ReorderLevel: 2},
		Tier:        domain.TierMidRange,
		Warranty:    domain.Warranty{Months: 12, ReturnDays: 30},
		Rating:      4.3,
		ReviewCount: 120,
	}
}

func testPersona(id, name string) domain.Persona {
	return domain.Persona{
		ID:                   id,
		Name:                 name,
		Age:                  34,
		Occupation:           "Designer",
		TechSavviness:        domain.TechModerate,
		Budget:               domain.BudgetRange{Min: 100, Max: 800, SweetSpot: 400},
		CategoriesOfInterest: []string{"laptops"},
		ValuedFeatures:       []string{"long battery"},
	}
}

// setupTestServices wires mock services into the command tree and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldCatalog := catalogService
	oldRecommender := recommender
	oldPersonas := personaDirectory
	oldHistory := historyBrowser

	sale := testProduct("PROD-002", "Aurora Pods Pro", "audio", 199)
	sale.Price.OriginalPrice = 249
	sale.Price.DiscountPercent = 20

	featured := testProduct("PROD-001", "Aurora Book 14", "laptops", 899)
	featured.Featured = true

	products := []domain.Product{featured, sale}

	catalogService = &mockCatalogService{products: products}
	recommender = &mockRecommender{
		recommended: []domain.Product{sale},
		similar:     []domain.Product{featured},
	}
	personaDirectory = &mockPersonaDirectory{
		personas: []domain.Persona{testPersona("persona-001", "Dana")},
	}
	started := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	ended := started.Add(12 * time.Minute)
	historyBrowser = &mockHistoryBrowser{
		summaries: []domain.Summary{{
			ConversationID: "CONV-AB12CD34EF56",
			PersonaID:      "persona-001",
			Status:         domain.StatusCompleted,
			StartedAt:      started,
			EndedAt:        &ended,
			TotalMessages:  6,
			UserMessages:   3,
			AssistantMsgs:  3,
		}},
	}

	return func() {
		catalogService = oldCatalog
		recommender = oldRecommender
		personaDirectory = oldPersonas
		historyBrowser = oldHistory
	}
}
