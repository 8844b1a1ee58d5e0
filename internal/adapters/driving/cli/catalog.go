package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

var (
	catalogLimit       int
	catalogJSON        bool
	catalogCategory    string
	catalogSubcategory string
	catalogBrand       string
	catalogTag         string
	catalogTier        string
	catalogMinPrice    float64
	catalogMaxPrice    float64
	catalogAll         bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the product catalog",
	Long: `Browse the product catalog loaded from the products file.

Lists, filters, and inspects products without starting a conversation.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [product-id]",
	Short: "Show full details for a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search products by category, brand, tag, tier, or price",
	Long: `Search products by any combination of filters.

Only available products are returned unless --all is set.`,
	RunE: runCatalogSearch,
}

var catalogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the product categories",
	RunE:  runCatalogCategories,
}

var catalogBrandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List the product brands",
	RunE:  runCatalogBrands,
}

var catalogFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "List featured products",
	RunE:  runCatalogFeatured,
}

var catalogSaleCmd = &cobra.Command{
	Use:   "sale",
	Short: "List products on sale",
	RunE:  runCatalogSale,
}

func init() {
	catalogListCmd.Flags().IntVarP(&catalogLimit, "limit", "n", 0, "maximum number of products (0 = all)")
	catalogListCmd.Flags().BoolVar(&catalogJSON, "json", false, "output as JSON")

	catalogSearchCmd.Flags().StringVar(&catalogCategory, "category", "", "filter by category")
	catalogSearchCmd.Flags().StringVar(&catalogSubcategory, "subcategory", "", "filter by subcategory")
	catalogSearchCmd.Flags().StringVar(&catalogBrand, "brand", "", "filter by brand")
	catalogSearchCmd.Flags().StringVar(&catalogTag, "tag", "", "filter by tag")
	catalogSearchCmd.Flags().StringVar(&catalogTier, "tier", "", "filter by price tier (budget, mid_range, premium, luxury)")
	catalogSearchCmd.Flags().Float64Var(&catalogMinPrice, "min-price", 0, "minimum price")
	catalogSearchCmd.Flags().Float64Var(&catalogMaxPrice, "max-price", 0, "maximum price")
	catalogSearchCmd.Flags().BoolVar(&catalogAll, "all", false, "include unavailable products")
	catalogSearchCmd.Flags().BoolVar(&catalogJSON, "json", false, "output as JSON")

	catalogFeaturedCmd.Flags().IntVarP(&catalogLimit, "limit", "n", 0, "maximum number of products (0 = all)")
	catalogSaleCmd.Flags().IntVarP(&catalogLimit, "limit", "n", 0, "maximum number of products (0 = all)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogCategoriesCmd)
	catalogCmd.AddCommand(catalogBrandsCmd)
	catalogCmd.AddCommand(catalogFeaturedCmd)
	catalogCmd.AddCommand(catalogSaleCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	products := catalogService.All()
	if catalogLimit > 0 && len(products) > catalogLimit {
		products = products[:catalogLimit]
	}

	if catalogJSON {
		return outputProductsJSON(cmd, products)
	}
	return outputProductTable(cmd, products)
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	product, err := catalogService.ByID(args[0])
	if err != nil {
		return fmt.Errorf("product %s: %w", args[0], err)
	}

	cmd.Printf("%s (%s)\n", product.Name, product.ID)
	cmd.Printf("  SKU:        %s\n", product.SKU)
	cmd.Printf("  Brand:      %s\n", product.Brand)
	cmd.Printf("  Category:   %s / %s\n", product.Category, product.Subcategory)
	cmd.Printf("  Price:      %s", product.FormattedPrice())
	if product.OnSale() {
		cmd.Printf(" (was %s %.2f, %d%% off)", product.Price.Currency, product.Price.OriginalPrice, product.Price.DiscountPercent)
	}
	cmd.Println()
	cmd.Printf("  Tier:       %s\n", product.Tier)
	cmd.Printf("  Stock:      %s (%d units)\n", product.Stock.Status, product.Stock.Quantity)
	cmd.Printf("  Rating:     %.1f/5.0 (%d reviews)\n", product.Rating, product.ReviewCount)
	cmd.Printf("  Warranty:   %d months, %d day returns\n", product.Warranty.Months, product.Warranty.ReturnDays)
	if product.Description != "" {
		cmd.Printf("  About:      %s\n", product.Description)
	}
	if len(product.Features) > 0 {
		cmd.Printf("  Features:   %s\n", strings.Join(product.Features, ", "))
	}
	if len(product.UseCases) > 0 {
		cmd.Printf("  Use cases:  %s\n", strings.Join(product.UseCases, ", "))
	}
	if len(product.Tags) > 0 {
		cmd.Printf("  Tags:       %s\n", strings.Join(product.Tags, ", "))
	}
	return nil
}

func runCatalogSearch(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	criteria := domain.FilterCriteria{
		Category:           catalogCategory,
		Subcategory:        catalogSubcategory,
		Brand:              catalogBrand,
		Tag:                catalogTag,
		Tier:               domain.PriceTier(catalogTier),
		IncludeUnavailable: catalogAll,
	}
	if catalogMinPrice > 0 {
		criteria.MinPrice = &catalogMinPrice
	}
	if catalogMaxPrice > 0 {
		criteria.MaxPrice = &catalogMaxPrice
	}
	if criteria.Tier != "" && !criteria.Tier.IsValid() {
		return fmt.Errorf("unknown price tier %q", catalogTier)
	}

	products := catalogService.Search(criteria)
	if catalogJSON {
		return outputProductsJSON(cmd, products)
	}
	return outputProductTable(cmd, products)
}

func runCatalogCategories(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	for _, c := range catalogService.Categories() {
		cmd.Println(c)
	}
	return nil
}

func runCatalogBrands(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	for _, b := range catalogService.Brands() {
		cmd.Println(b)
	}
	return nil
}

func runCatalogFeatured(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	return outputProductTable(cmd, catalogService.Featured(catalogLimit))
}

func runCatalogSale(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	return outputProductTable(cmd, catalogService.OnSale(catalogLimit))
}

func outputProductsJSON(cmd *cobra.Command, products []domain.Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputProductTable(cmd *cobra.Command, products []domain.Product) error {
	if len(products) == 0 {
		cmd.Println("No products found.")
		return nil
	}

	for i := range products {
		p := &products[i]
		cmd.Printf("  %-10s %s\n", p.ID, p.Summary())
	}
	cmd.Printf("\n%d product(s)\n", len(products))
	return nil
}
