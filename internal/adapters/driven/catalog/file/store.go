package file

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.CatalogStore = (*Store)(nil)

// Store is a file-backed catalog store. The products file is read once at
// construction and cached; Reload (or the fsnotify watcher) re-reads it.
// Loading is all-or-nothing: one bad product fails the whole file and the
// previous cache stays in place.
type Store struct {
	mu       sync.RWMutex
	path     string
	validate *validator.Validate

	products []domain.Product
	byID     map[string]int
	bySKU    map[string]int
}

// NewStore creates a catalog store and loads the products file.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:     path,
		validate: validator.New(),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the products file, replacing the cache only on success.
func (s *Store) Reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("%w: read products file %s: %w", domain.ErrLoad, s.path, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: parse products file %s: %w", domain.ErrLoad, s.path, err)
	}
	if len(doc.Products) == 0 {
		return fmt.Errorf("%w: no products found in %s", domain.ErrLoad, s.path)
	}

	products := make([]domain.Product, 0, len(doc.Products))
	byID := make(map[string]int, len(doc.Products))
	bySKU := make(map[string]int, len(doc.Products))

	for i := range doc.Products {
		rec := &doc.Products[i]
		p, err := rec.toDomain(s.validate)
		if err != nil {
			return fmt.Errorf("%w: product %s: %w", domain.ErrLoad, recordID(rec), err)
		}
		if _, dup := byID[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %s", domain.ErrLoad, p.ID)
		}
		byID[p.ID] = len(products)
		bySKU[p.SKU] = len(products)
		products = append(products, p)
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.bySKU = bySKU
	s.mu.Unlock()

	logger.Info("catalog loaded: %d products from %s", len(products), s.path)
	return nil
}

func recordID(rec *productRecord) string {
	if rec.ProductID != "" {
		return rec.ProductID
	}
	return "unknown"
}

// All returns every product in source order.
func (s *Store) All() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ByID returns the product with the given ID.
func (s *Store) ByID(id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	p := s.products[i]
	return &p, nil
}

// BySKU returns the product with the given SKU.
func (s *Store) BySKU(sku string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.bySKU[sku]
	if !ok {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrNotFound, sku)
	}
	p := s.products[i]
	return &p, nil
}

// Filter returns the products matching the criteria, in source order.
func (s *Store) Filter(criteria domain.FilterCriteria) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for i := range s.products {
		if criteria.Matches(&s.products[i]) {
			out = append(out, s.products[i])
		}
	}
	return out
}

// Categories returns the distinct product categories, sorted.
func (s *Store) Categories() []string {
	return s.distinct(func(p *domain.Product) string { return p.Category })
}

// Brands returns the distinct product brands, sorted.
func (s *Store) Brands() []string {
	return s.distinct(func(p *domain.Product) string { return p.Brand })
}

func (s *Store) distinct(key func(*domain.Product) string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for i := range s.products {
		k := key(&s.products[i])
		if k == "" {
			continue
		}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
