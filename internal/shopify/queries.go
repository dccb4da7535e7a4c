package shopify

const productFields = `
	id
	title
	handle
	images(first: 1) { edges { node { src: url } } }
	variants(first: 250) {
		edges { node { id title sku image { src: url } } }
	}`

const collectionFields = `
	id
	title
	handle
	image { src: url }`

const productSearchQuery = `
query Products($first: Int!, $after: String, $query: String, $sortKey: ProductSortKeys, $reverse: Boolean) {
	products(first: $first, after: $after, query: $query, sortKey: $sortKey, reverse: $reverse) {
		edges { cursor node {` + productFields + `
		} }
	}
}`

const collectionSearchQuery = `
query Collections($first: Int!, $after: String, $query: String, $sortKey: CollectionSortKeys, $reverse: Boolean) {
	collections(first: $first, after: $after, query: $query, sortKey: $sortKey, reverse: $reverse) {
		edges { cursor node {` + collectionFields + `
		} }
	}
}`

const productNodesQuery = `
query ProductNodes($ids: [ID!]!) {
	nodes(ids: $ids) {
		... on Product {` + productFields + `
		}
	}
}`

const variantNodesQuery = `
query VariantNodes($ids: [ID!]!) {
	nodes(ids: $ids) {
		... on ProductVariant {
			id
			title
			sku
			image { src: url }
			product { id title }
		}
	}
}`

const collectionNodesQuery = `
query CollectionNodes($ids: [ID!]!) {
	nodes(ids: $ids) {
		... on Collection {` + collectionFields + `
		}
	}
}`
