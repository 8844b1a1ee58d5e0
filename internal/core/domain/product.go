package domain

import (
	"fmt"
	"strings"
)

// StockStatus describes the availability of a product.
type StockStatus string

// Recognised stock statuses.
const (
	StockInStock      StockStatus = "in_stock"
	StockLowStock     StockStatus = "low_stock"
	StockOutOfStock   StockStatus = "out_of_stock"
	StockDiscontinued StockStatus = "discontinued"
	StockPreOrder     StockStatus = "pre_order"
)

// IsValid returns true if the stock status is recognised.
func (s StockStatus) IsValid() bool {
	switch s {
	case StockInStock, StockLowStock, StockOutOfStock, StockDiscontinued, StockPreOrder:
		return true
	default:
		return false
	}
}

// Available returns true if products with this status can be sold.
func (s StockStatus) Available() bool {
	return s == StockInStock || s == StockLowStock
}

// String returns the string representation.
func (s StockStatus) String() string {
	return string(s)
}

// PriceTier is a coarse price bucket independent of the exact price,
// used for coarse similarity matching.
type PriceTier string

// Recognised price tiers.
const (
	TierBudget   PriceTier = "budget"
	TierMidRange PriceTier = "mid_range"
	TierPremium  PriceTier = "premium"
	TierLuxury   PriceTier = "luxury"
)

// IsValid returns true if the price tier is recognised.
func (t PriceTier) IsValid() bool {
	switch t {
	case TierBudget, TierMidRange, TierPremium, TierLuxury:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t PriceTier) String() string {
	return string(t)
}

// PriceInfo holds the pricing fields of a product.
type PriceInfo struct {
	// Price is the current selling price.
	Price float64

	// OriginalPrice is the pre-discount price. Invariant: Price <= OriginalPrice.
	OriginalPrice float64

	// Currency is the 3-letter ISO currency code.
	Currency string

	// DiscountPercent is the advertised discount, in [0, 100].
	DiscountPercent int
}

// Savings returns the difference between original and current price.
func (p PriceInfo) Savings() float64 {
	return p.OriginalPrice - p.Price
}

// OnSale returns true if a discount is advertised.
func (p PriceInfo) OnSale() bool {
	return p.DiscountPercent > 0
}

// Validate checks the pricing invariants.
func (p PriceInfo) Validate() error {
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidInput)
	}
	if p.OriginalPrice <= 0 {
		return fmt.Errorf("%w: original price must be greater than 0", ErrInvalidInput)
	}
	if p.Price > p.OriginalPrice {
		return fmt.Errorf("%w: price cannot exceed original price", ErrInvalidInput)
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter ISO code", ErrInvalidInput)
	}
	if p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount percent must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

// StockInfo holds the inventory fields of a product.
type StockInfo struct {
	// Status is the advertised availability.
	Status StockStatus

	// Quantity is the number of units on hand. Never negative.
	Quantity int

	// ReorderLevel is the quantity at which stock is considered low.
	ReorderLevel int
}

// Normalize reconciles the status with the quantity. It is invoked once at
// construction time as part of the stock invariant: zero quantity forces
// out_of_stock, and an in_stock product at or below the reorder level
// becomes low_stock.
func (s *StockInfo) Normalize() {
	if s.Quantity == 0 && s.Status != StockOutOfStock {
		s.Status = StockOutOfStock
		return
	}
	if s.Quantity > 0 && s.Quantity <= s.ReorderLevel && s.Status == StockInStock {
		s.Status = StockLowStock
	}
}

// Available returns true if the product can be sold right now.
func (s StockInfo) Available() bool {
	return s.Status.Available()
}

// NeedsReorder returns true if stock is at or below the reorder level.
func (s StockInfo) NeedsReorder() bool {
	return s.Quantity <= s.ReorderLevel
}

// Validate checks the inventory invariants. Normalize must have run first.
func (s StockInfo) Validate() error {
	if !s.Status.IsValid() {
		return fmt.Errorf("%w: unknown stock status %q", ErrInvalidInput, s.Status)
	}
	if s.Quantity < 0 {
		return fmt.Errorf("%w: stock quantity cannot be negative", ErrInvalidInput)
	}
	if s.ReorderLevel < 0 {
		return fmt.Errorf("%w: reorder level cannot be negative", ErrInvalidInput)
	}
	return nil
}

// Warranty holds the warranty and return terms of a product.
type Warranty struct {
	// Months is the warranty duration in months.
	Months int

	// ReturnDays is the return policy window in days.
	ReturnDays int
}

// Years returns the warranty duration in years, rounded to one decimal.
func (w Warranty) Years() float64 {
	return float64(int(float64(w.Months)/12*10+0.5)) / 10
}

// Product is an immutable catalog record. Identity is the product ID.
type Product struct {
	// ID is the unique product identifier.
	ID string

	// SKU is the stock-keeping unit code.
	SKU string

	// Name is the display name.
	Name string

	// Category and Subcategory classify the product.
	Category    string
	Subcategory string

	// Brand and Manufacturer identify the maker.
	Brand        string
	Manufacturer string

	// Description is the long marketing text; ShortDescription a one-liner.
	Description      string
	ShortDescription string

	// Price holds the pricing fields.
	Price PriceInfo

	// Stock holds the inventory fields.
	Stock StockInfo

	// Specs contains free-form technical specifications.
	Specs map[string]any

	// Features lists marketed capabilities.
	Features []string

	// Accessories lists what ships in the box.
	Accessories []string

	// TargetAudience and UseCases describe who the product is for.
	TargetAudience []string
	UseCases       []string

	// Tags are free-form labels used for similarity matching.
	Tags []string

	// Tier is the coarse price bucket.
	Tier PriceTier

	// Warranty holds warranty and return terms.
	Warranty Warranty

	// Rating is the average review rating in [0, 5].
	Rating float64

	// ReviewCount is the number of reviews. Never negative.
	ReviewCount int

	// Featured marks store-promoted products.
	Featured bool

	// NewArrival marks recently added products.
	NewArrival bool

	// ReleaseDate is the YYYY-MM-DD release date.
	ReleaseDate string
}

// Validate checks the product invariants. Call after Stock.Normalize.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: product ID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.SKU) == "" {
		return fmt.Errorf("%w: SKU is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Brand) == "" {
		return fmt.Errorf("%w: brand is required", ErrInvalidInput)
	}
	if len(p.Description) < 10 {
		return fmt.Errorf("%w: description must be at least 10 characters", ErrInvalidInput)
	}
	if len(p.Features) == 0 {
		return fmt.Errorf("%w: features must be non-empty", ErrInvalidInput)
	}
	if err := p.Price.Validate(); err != nil {
		return err
	}
	if err := p.Stock.Validate(); err != nil {
		return err
	}
	if !p.Tier.IsValid() {
		return fmt.Errorf("%w: unknown price tier %q", ErrInvalidInput, p.Tier)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0.0 and 5.0", ErrInvalidInput)
	}
	if p.ReviewCount < 0 {
		return fmt.Errorf("%w: review count cannot be negative", ErrInvalidInput)
	}
	if p.Warranty.Months < 0 || p.Warranty.ReturnDays < 0 {
		return fmt.Errorf("%w: warranty terms cannot be negative", ErrInvalidInput)
	}
	return nil
}

// Available returns true if the product can be sold right now.
func (p *Product) Available() bool {
	return p.Stock.Available()
}

// OnSale returns true if a discount is advertised.
func (p *Product) OnSale() bool {
	return p.Price.OnSale()
}

// MatchesCategory reports a case-insensitive category match.
func (p *Product) MatchesCategory(category string) bool {
	return strings.EqualFold(p.Category, category)
}

// MatchesSubcategory reports a case-insensitive subcategory match.
func (p *Product) MatchesSubcategory(subcategory string) bool {
	return strings.EqualFold(p.Subcategory, subcategory)
}

// MatchesBrand reports a case-insensitive brand match.
func (p *Product) MatchesBrand(brand string) bool {
	return strings.EqualFold(p.Brand, brand)
}

// HasTag reports a case-insensitive tag membership test.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// HasFeatureKeyword reports whether the keyword appears as a
// case-insensitive substring in any feature, the name, or the description.
func (p *Product) HasFeatureKeyword(keyword string) bool {
	k := strings.ToLower(keyword)
	for _, f := range p.Features {
		if strings.Contains(strings.ToLower(f), k) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(p.Name), k) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Description), k)
}

// WithinBudget reports whether the price falls in [min, max] inclusive.
func (p *Product) WithinBudget(min, max float64) bool {
	return p.Price.Price >= min && p.Price.Price <= max
}

// FormattedPrice renders the current price with its currency.
func (p *Product) FormattedPrice() string {
	return fmt.Sprintf("%s %.2f", p.Price.Currency, p.Price.Price)
}

// Summary renders a one-line description for list displays.
func (p *Product) Summary() string {
	sale := "Regular Price"
	if p.OnSale() {
		sale = "On Sale"
	}
	return fmt.Sprintf("%s by %s - %s (%s) - %s", p.Name, p.Brand, p.FormattedPrice(), sale, p.Stock.Status)
}

// FilterCriteria narrows a catalog listing. Zero-value fields are ignored.
// The zero value matches available products only; set IncludeUnavailable to
// also return out-of-stock, discontinued, and pre-order items.
type FilterCriteria struct {
	Category    string
	Subcategory string
	Brand       string
	Tag         string

	// MinPrice and MaxPrice bound the current price when non-nil.
	MinPrice *float64
	MaxPrice *float64

	// Tier filters by price bucket when set.
	Tier PriceTier

	// IncludeUnavailable disables the default availability filter.
	IncludeUnavailable bool
}

// Matches reports whether the product satisfies every set criterion.
func (c FilterCriteria) Matches(p *Product) bool {
	if !c.IncludeUnavailable && !p.Available() {
		return false
	}
	if c.Category != "" && !p.MatchesCategory(c.Category) {
		return false
	}
	if c.Subcategory != "" && !p.MatchesSubcategory(c.Subcategory) {
		return false
	}
	if c.Brand != "" && !p.MatchesBrand(c.Brand) {
		return false
	}
	if c.Tag != "" && !p.HasTag(c.Tag) {
		return false
	}
	if c.MinPrice != nil && p.Price.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price.Price > *c.MaxPrice {
		return false
	}
	if c.Tier != "" && p.Tier != c.Tier {
		return false
	}
	return true
}
