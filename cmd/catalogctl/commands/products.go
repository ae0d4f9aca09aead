package commands

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/dmitryhil/vineweb/internal/catalog/mirror"
	"github.com/spf13/cobra"
)

// server-side query flags, forwarded verbatim when set
var serverFilterFlags = []string{
	"category", "subcategory", "gender", "search", "minPrice", "maxPrice",
	"sizes", "isNew", "inStock", "sortBy", "sortOrder", "page", "limit",
}

var localOpts = mirror.DefaultOptions()

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products",
	Long: `List products from GET /api/products.

Examples:
  catalogctl products --category men --sizes M,L
  catalogctl products --limit 100 --search-local denim --sort price-low
  catalogctl products --min-price-local 1000 --width 600 --local-page 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProducts(cmd)
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		product, err := fetchProduct(cmd.Context(), serverURL, args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return writeJSON(product)
		}

		fmt.Println(renderProduct(product))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(productCmd)

	f := productsCmd.Flags()
	for _, name := range serverFilterFlags {
		f.String(name, "", fmt.Sprintf("Server filter %q", name))
	}

	f.StringVar(&localOpts.Search, "search-local", localOpts.Search, "Substring match on name, description and tags")
	f.StringVar(&localOpts.Category, "category-local", localOpts.Category, "Category to keep (all keeps every category)")
	f.StringVar(&localOpts.Size, "size-local", localOpts.Size, "Size to keep")
	f.Int64Var(&localOpts.MinPrice, "min-price-local", localOpts.MinPrice, "Lowest price to keep")
	f.Int64Var(&localOpts.MaxPrice, "max-price-local", localOpts.MaxPrice, "Highest price to keep")
	f.StringVar(&localOpts.SortBy, "sort", localOpts.SortBy, "Local sort: name, price-low, price-high, newest")
	f.IntVar(&localOpts.ViewportWidth, "width", 1280, "Viewport width used to pick the page size")
	f.IntVar(&localOpts.Page, "local-page", localOpts.Page, "Page of the locally filtered result")
}

// serverQuery collects the server filter flags the user actually set.
func serverQuery(cmd *cobra.Command) url.Values {
	flags := cmd.Flags()
	query := url.Values{}
	for _, name := range serverFilterFlags {
		if !flags.Changed(name) {
			continue
		}
		if v, err := flags.GetString(name); err == nil {
			query.Set(name, v)
		}
	}
	return query
}

func runProducts(cmd *cobra.Command) error {
	res, err := fetchProducts(cmd.Context(), serverURL, serverQuery(cmd))
	if err != nil {
		return err
	}

	view := mirror.Apply(res.Products, localOpts)

	if jsonOutput {
		return writeJSON(view)
	}

	fmt.Println(renderProducts(view, res.Pagination.Total))
	return nil
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
