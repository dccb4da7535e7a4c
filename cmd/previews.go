package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/shopify"
)

var (
	previewsType string
	previewsJSON bool
	previewsToon bool
)

var previewsCmd = &cobra.Command{
	Use:   "previews <sku>...",
	Short: "Resolve stored SKUs into preview records",
	Long: `Look up stored SKUs (opaque storefront ids) and print one preview per SKU,
in the order given.

SKUs of the wrong type, malformed SKUs and records the storefront no longer
returns are reported as missing instead of being dropped.

Example:
  skuref previews Z2lkOi8vc2hvcGlmeS9Qcm9kdWN0VmFyaWFudC8x
  skuref previews --type product <sku> <sku> --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreviews,
}

func init() {
	rootCmd.AddCommand(previewsCmd)

	previewsCmd.Flags().StringVarP(&previewsType, "type", "t", shopify.SkuTypeVariant, "Record type: product, collection or variant")
	previewsCmd.Flags().BoolVar(&previewsJSON, "json", false, "Output previews as JSON")
	previewsCmd.Flags().BoolVar(&previewsToon, "toon", false, "Output previews as TOON")
}

func runPreviews(cmd *cobra.Command, args []string) error {
	if err := checkOutputFlags(previewsJSON, previewsToon); err != nil {
		return err
	}

	client, err := newShopifyClient()
	if err != nil {
		return err
	}

	previews, err := client.MakePreviewResolver(previewsType)(commandContext(cmd), args)
	if err != nil {
		return fmt.Errorf("failed to fetch previews: %w", err)
	}

	if done, err := emitStructured(previews, previewsJSON, previewsToon); done {
		return err
	}

	missing := 0
	for _, p := range previews {
		if p.IsMissing {
			missing++
		}
	}

	printProductTable(previews, 0)
	fmt.Printf("\n%d preview(s), %d missing\n", len(previews), missing)

	return nil
}
