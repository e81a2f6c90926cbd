package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE stock_records;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortOrder(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expected     string
	}{
		{"empty string returns default", "", "last_moved_at"},
		{"valid field returns field", "quantity", "quantity"},
		{"invalid field returns default", "not_a_column", "last_moved_at"},
		{"sql injection attempt returns default", "id; DROP TABLE stock_records;--", "last_moved_at"},
		{"case sensitive - uppercase invalid", "QUANTITY", "last_moved_at"},
		{"whitespace around valid field returns field", "  quantity  ", "quantity"},
		{"field with quotes injection returns default", "quantity'--", "last_moved_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortField(tt.input, StockRecordSortFields, "last_moved_at")
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSortFieldWhitelists(t *testing.T) {
	t.Run("ledger whitelist covers the FIFO ordering column", func(t *testing.T) {
		assert.True(t, StockRecordSortFields["last_moved_at"])
		assert.True(t, StockRecordSortFields["quantity"])
		assert.False(t, StockRecordSortFields["company_id"])
	})

	t.Run("document whitelists cover their number columns", func(t *testing.T) {
		assert.True(t, PurchaseOrderSortFields["order_number"])
		assert.True(t, ShipmentNoticeSortFields["notice_number"])
		assert.True(t, SalesOrderSortFields["order_number"])
		assert.True(t, PickingListSortFields["list_number"])
	})
}
