package transform

import "github.com/pders01/skuref/internal/models"

// Missing builds the placeholder record for a requested id the storefront
// did not return.
func Missing(id string) models.Product {
	return models.Product{
		ID:        id,
		SKU:       id,
		Name:      "",
		Image:     "",
		IsMissing: true,
	}
}

// Reconcile returns exactly one record per requested id, in request order:
// the matching found record, or a missing placeholder.
func Reconcile(requested []string, found []models.Product) []models.Product {
	byID := make(map[string]models.Product, len(found))
	for _, p := range found {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}

	out := make([]models.Product, 0, len(requested))
	for _, id := range requested {
		if p, ok := byID[id]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, Missing(id))
	}
	return out
}
