package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is invalid, empty, or not in
// the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"sku":             true,
	"unit_price":      true,
	"cost_price":      true,
	"last_cost_price": true,
	"stock_qty":       true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"phone":      true,
	"email":      true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"contact_person": true,
	"phone":          true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"invoice_date":   true,
	"customer_name":  true,
	"status":         true,
	"payment_status": true,
	"grand_total":    true,
	"confirmed_at":   true,
}

// PurchaseSortFields contains allowed sort fields for purchases
var PurchaseSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"purchase_number": true,
	"purchase_date":   true,
	"supplier_name":   true,
	"status":          true,
	"total_cost":      true,
	"confirmed_at":    true,
}
