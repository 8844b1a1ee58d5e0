package file

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

// catalogDocument is the top-level shape of the products file.
type catalogDocument struct {
	Products []productRecord `json:"products" validate:"required,min=1,dive"`
}

// productRecord is the on-disk product shape. Field names follow the data
// file, not the domain; decoding and validation happen here so the domain
// never sees a half-formed product.
type productRecord struct {
	ProductID        string `json:"product_id" validate:"required"`
	SKU              string `json:"sku" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Category         string `json:"category" validate:"required"`
	Subcategory      string `json:"subcategory"`
	Brand            string `json:"brand"`
	Manufacturer     string `json:"manufacturer"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`

	Price              float64 `json:"price" validate:"gt=0"`
	OriginalPrice      float64 `json:"original_price" validate:"gt=0,gtefield=Price"`
	Currency           string  `json:"currency" validate:"required,len=3"`
	DiscountPercentage int     `json:"discount_percentage" validate:"gte=0,lte=100"`

	StockStatus   string `json:"stock_status" validate:"required"`
	StockQuantity int    `json:"stock_quantity" validate:"gte=0"`
	ReorderLevel  int    `json:"reorder_level" validate:"gte=0"`

	Specifications      map[string]any `json:"specifications"`
	Features            []string       `json:"features"`
	IncludedAccessories []string       `json:"included_accessories"`
	TargetAudience      []string       `json:"target_audience"`
	UseCases            []string       `json:"use_cases"`
	Tags                []string       `json:"tags"`

	PriceTier string `json:"price_tier" validate:"required"`

	WarrantyMonths   int `json:"warranty_months" validate:"gte=0"`
	ReturnPolicyDays int `json:"return_policy_days" validate:"gte=0"`

	Rating       float64 `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount  int     `json:"review_count" validate:"gte=0"`
	ReleaseDate  string  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	IsFeatured   bool    `json:"is_featured"`
	IsNewArrival bool    `json:"is_new_arrival"`
}

// toDomain converts a validated record, checking the enum fields and
// reconciling the stock status with the quantity.
func (r *productRecord) toDomain(validate *validator.Validate) (domain.Product, error) {
	if err := validate.Struct(r); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	status := domain.StockStatus(r.StockStatus)
	if !status.IsValid() {
		return domain.Product{}, fmt.Errorf("%w: unknown stock status %q", domain.ErrInvalidInput, r.StockStatus)
	}
	tier := domain.PriceTier(r.PriceTier)
	if !tier.IsValid() {
		return domain.Product{}, fmt.Errorf("%w: unknown price tier %q", domain.ErrInvalidInput, r.PriceTier)
	}

	stock := domain.StockInfo{Status: status, Quantity: r.StockQuantity, ReorderLevel: r.ReorderLevel}
	stock.Normalize()

	p := domain.Product{
		ID:               r.ProductID,
		SKU:              r.SKU,
		Name:             r.Name,
		Category:         r.Category,
		Subcategory:      r.Subcategory,
		Brand:            r.Brand,
		Manufacturer:     r.Manufacturer,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Price: domain.PriceInfo{
			Price:           r.Price,
			OriginalPrice:   r.OriginalPrice,
			Currency:        r.Currency,
			DiscountPercent: r.DiscountPercentage,
		},
		Stock:          stock,
		Specs:          r.Specifications,
		Features:       r.Features,
		Accessories:    r.IncludedAccessories,
		TargetAudience: r.TargetAudience,
		UseCases:       r.UseCases,
		Tags:           r.Tags,
		Tier:           tier,
		Warranty:       domain.Warranty{Months: r.WarrantyMonths, ReturnDays: r.ReturnPolicyDays},
		Rating:         r.Rating,
		ReviewCount:    r.ReviewCount,
		Featured:       r.IsFeatured,
		NewArrival:     r.IsNewArrival,
		ReleaseDate:    r.ReleaseDate,
	}

	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
