package persistence

import (
	"fmt"

	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/stock"
	"github.com/warehouse/backend/internal/domain/trade"
	"github.com/warehouse/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// companyUniqueIndexes are the composite business-key indexes. Every business
// key (document number, item code, location code) is unique per company, not
// globally: the company column must lead each index, and since CompanyID
// lives on the shared embedded base its struct tag cannot name a different
// index per table. The indexes are therefore created here, after AutoMigrate.
var companyUniqueIndexes = []struct {
	name    string
	table   string
	columns string
}{
	{"idx_item_company_code", "items", "company_id, code"},
	{"idx_location_company_code", "locations", "company_id, code"},
	{"idx_stock_company_item_location", "stock_records", "company_id, item_id, location_id"},
	{"idx_purchase_order_company_number", "purchase_orders", "company_id, order_number"},
	{"idx_shipment_notice_company_number", "shipment_notices", "company_id, notice_number"},
	{"idx_sales_order_company_number", "sales_orders", "company_id, order_number"},
	{"idx_picking_list_company_number", "picking_lists", "company_id, list_number"},
}

// Migrate creates or updates the schema for every persisted aggregate and
// installs the company-scoped unique indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalog.Item{},
		&warehouse.Location{},
		&stock.StockRecord{},
		&trade.PurchaseOrder{},
		&trade.PurchaseOrderLine{},
		&trade.ShipmentNotice{},
		&trade.ShipmentNoticeLine{},
		&trade.SalesOrder{},
		&trade.SalesOrderLine{},
		&trade.PickingList{},
		&trade.PickingListLine{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	for _, idx := range companyUniqueIndexes {
		stmt := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s)",
			idx.name, idx.table, idx.columns)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}
