package transform

import (
	"fmt"

	"github.com/pders01/skuref/internal/models"
)

// DefaultVariantTitle is the title the storefront gives the implicit variant
// of a product without options.
const DefaultVariantTitle = "Default Title"

// Product maps a storefront product to a preview record.
func Product(p models.RawProduct, apiEndpoint string) models.Product {
	return models.Product{
		ID:           p.ID,
		SKU:          p.ID,
		Name:         p.Title,
		Image:        p.FirstImage(),
		DisplaySKU:   displayProductID(p.ID),
		ExternalLink: AdminLink(p.ID, "", apiEndpoint),
	}
}

// Collection maps a storefront collection to a preview record.
func Collection(c models.RawCollection, apiEndpoint string) models.Product {
	image := ""
	if c.Image != nil {
		image = c.Image.Src
	}
	return models.Product{
		ID:           c.ID,
		SKU:          c.ID,
		Name:         c.Title,
		Image:        image,
		DisplaySKU:   displayProductID(c.ID),
		ExternalLink: AdminLink(c.ID, "", apiEndpoint),
	}
}

// Variant maps a storefront variant to a preview record. The variant must
// carry its parent product; otherwise the name falls back to the variant title.
func Variant(v models.RawVariant, apiEndpoint string) models.Product {
	productID, productTitle := "", ""
	if v.Product != nil {
		productID, productTitle = v.Product.ID, v.Product.Title
	}

	image := ""
	if v.Image != nil {
		image = v.Image.Src
	}

	var displaySKU string
	if v.SKU != "" {
		displaySKU = fmt.Sprintf("SKU: %s", v.SKU)
	} else {
		displaySKU = displayProductID(v.ID)
	}

	return models.Product{
		ID:           v.ID,
		SKU:          v.ID,
		Name:         variantName(productTitle, v.Title),
		Image:        image,
		DisplaySKU:   displaySKU,
		ExternalLink: AdminLink(v.ID, productID, apiEndpoint),
	}
}

// Variants explodes a product into one preview record per variant. A product
// without variants yields a single record standing for the product itself.
func Variants(p models.RawProduct, apiEndpoint string) []models.Product {
	parent := &models.VariantProduct{ID: p.ID, Title: p.Title}

	if len(p.Variants) == 0 {
		synthetic := models.RawVariant{ID: p.ID, Title: p.Title, Product: parent}
		if img := p.FirstImage(); img != "" {
			synthetic.Image = &models.Image{Src: img}
		}
		return []models.Product{Variant(synthetic, apiEndpoint)}
	}

	records := make([]models.Product, 0, len(p.Variants))
	for _, v := range p.Variants {
		v.Product = parent
		if v.Image == nil && p.FirstImage() != "" {
			v.Image = &models.Image{Src: p.FirstImage()}
		}
		records = append(records, Variant(v, apiEndpoint))
	}
	return records
}

func variantName(productTitle, variantTitle string) string {
	switch {
	case productTitle == "":
		return variantTitle
	case variantTitle == "", variantTitle == DefaultVariantTitle, variantTitle == productTitle:
		return productTitle
	}
	return fmt.Sprintf("%s (%s)", productTitle, variantTitle)
}

func displayProductID(id string) string {
	if numericID, ok := NumericID(id); ok {
		return fmt.Sprintf("Product ID: %s", numericID)
	}
	return ""
}
