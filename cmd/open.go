package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/config"
	"github.com/pders01/skuref/internal/transform"
)

var openProduct string

var openCmd = &cobra.Command{
	Use:   "open <sku>",
	Short: "Print the admin link for a stored SKU",
	Long: `Decode a stored SKU and print the matching admin URL.

Products and collections are resolved offline. Variant links need the parent
product; pass it with --product or let skuref look it up in the storefront.

Example:
  skuref open Z2lkOi8vc2hvcGlmeS9Qcm9kdWN0LzE=
  skuref open <variant-sku> --product <product-sku>`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().StringVar(&openProduct, "product", "", "Parent product SKU (variants only)")
}

func runOpen(cmd *cobra.Command, args []string) error {
	sku := args[0]

	gid, err := transform.DecodeID(sku)
	if err != nil {
		return fmt.Errorf("failed to decode sku: %w", err)
	}

	endpoint := config.GetAPIEndpoint()
	if endpoint == "" {
		return fmt.Errorf("shopify.api_endpoint is not configured")
	}

	link := transform.AdminLink(sku, openProduct, endpoint)
	if link == "" && openProduct == "" {
		link, err = lookupAdminLink(cmd, sku)
		if err != nil {
			return err
		}
	}
	if link == "" {
		return fmt.Errorf("no admin link for %s", gid)
	}

	fmt.Println(link)
	return nil
}

// lookupAdminLink asks the storefront for the variant's parent product.
func lookupAdminLink(cmd *cobra.Command, sku string) (string, error) {
	client, err := newShopifyClient()
	if err != nil {
		return "", err
	}

	previews, err := client.FetchVariantPreviews(commandContext(cmd), []string{sku})
	if err != nil {
		return "", fmt.Errorf("failed to look up variant: %w", err)
	}
	if len(previews) == 0 || previews[0].IsMissing {
		return "", nil
	}
	return previews[0].ExternalLink, nil
}
