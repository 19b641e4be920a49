// Package gtin resolves barcodes to existing articles or to product data
// from an external product database.
package gtin

import "inventory/internal/core/id"

// ResultType classifies a lookup outcome.
type ResultType string

const (
	TypeExisting ResultType = "existing"
	TypeFound    ResultType = "found"
	TypeNotFound ResultType = "notFound"
	TypeError    ResultType = "error"
)

// Result is the outcome of a lookup. Only the fields of its Type are set.
type Result struct {
	Type      ResultType
	ArticleID id.ID
	Name      string
	Quantity  string
	Error     string
}

// Product is what the external database knows about a barcode.
type Product struct {
	Name     string
	Quantity string
}
