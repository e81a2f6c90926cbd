package persistence

import (
	"strings"

	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
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

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
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

// applyPagination applies pagination and validated ordering to the query
func applyPagination(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultField string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, allowedFields, defaultField)
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// StockRecordSortFields contains allowed sort fields for ledger rows
var StockRecordSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"item_id":       true,
	"location_id":   true,
	"quantity":      true,
	"status":        true,
	"last_cost":     true,
	"source_ref":    true,
	"last_moved_at": true,
}

// LocationSortFields contains allowed sort fields for locations
var LocationSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"name":         true,
	"category":     true,
	"max_capacity": true,
	"active":       true,
}

// ItemSortFields contains allowed sort fields for items
var ItemSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"name":           true,
	"unit":           true,
	"standard_price": true,
	"min_stock":      true,
	"status":         true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"supplier_id":   true,
	"supplier_name": true,
	"status":        true,
	"total_amount":  true,
	"sent_at":       true,
}

// ShipmentNoticeSortFields contains allowed sort fields for shipment notices
var ShipmentNoticeSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"notice_number":     true,
	"purchase_order_id": true,
	"status":            true,
	"arrived_at":        true,
	"processed_at":      true,
}

// SalesOrderSortFields contains allowed sort fields for sales orders
var SalesOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"customer_id":   true,
	"customer_name": true,
	"status":        true,
	"total_amount":  true,
	"confirmed_at":  true,
	"shipped_at":    true,
	"completed_at":  true,
}

// PickingListSortFields contains allowed sort fields for picking lists
var PickingListSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"list_number":    true,
	"sales_order_id": true,
	"status":         true,
	"completed_at":   true,
}
