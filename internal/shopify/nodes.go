package shopify

import (
	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/transform"
)

// Wire shapes of the storefront responses. Ids arrive as plain global ids
// and are encoded on conversion.

type imageNode struct {
	Src string `json:"src"`
}

type variantNode struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	SKU     string     `json:"sku"`
	Image   *imageNode `json:"image"`
	Product *struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"product"`
}

type productNode struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Images struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type collectionNode struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Handle string     `json:"handle"`
	Image  *imageNode `json:"image"`
}

func (n imageNode) model() models.Image {
	return models.Image{Src: n.Src}
}

func optionalImage(n *imageNode) *models.Image {
	if n == nil || n.Src == "" {
		return nil
	}
	img := n.model()
	return &img
}

func (n variantNode) raw() models.RawVariant {
	v := models.RawVariant{
		ID:    transform.EncodeID(n.ID),
		Title: n.Title,
		SKU:   n.SKU,
		Image: optionalImage(n.Image),
	}
	if n.Product != nil {
		v.Product = &models.VariantProduct{ID: transform.EncodeID(n.Product.ID), Title: n.Product.Title}
	}
	return v
}

func (n productNode) raw() models.RawProduct {
	p := models.RawProduct{
		ID:     transform.EncodeID(n.ID),
		Title:  n.Title,
		Handle: n.Handle,
	}
	for _, e := range n.Images.Edges {
		p.Images = append(p.Images, e.Node.model())
	}
	for _, e := range n.Variants.Edges {
		p.Variants = append(p.Variants, e.Node.raw())
	}
	return p
}

func (n collectionNode) raw() models.RawCollection {
	return models.RawCollection{
		ID:     transform.EncodeID(n.ID),
		Title:  n.Title,
		Handle: n.Handle,
		Image:  optionalImage(n.Image),
	}
}
