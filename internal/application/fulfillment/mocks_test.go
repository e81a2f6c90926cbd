package fulfillment

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
	"github.com/warehouse/backend/internal/domain/stock"
	"github.com/warehouse/backend/internal/domain/trade"
	"github.com/warehouse/backend/internal/domain/warehouse"
)

// MockStockRecordRepository is a mock implementation of stock.StockRecordRepository
type MockStockRecordRepository struct {
	mock.Mock
}

func (m *MockStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByItemAndLocation(ctx context.Context, companyID, itemID, locationID uuid.UUID) (*stock.StockRecord, error) {
	args := m.Called(ctx, companyID, itemID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByItem(ctx context.Context, companyID, itemID uuid.UUID) ([]stock.StockRecord, error) {
	args := m.Called(ctx, companyID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindAvailableByItem(ctx context.Context, companyID, itemID uuid.UUID) ([]stock.StockRecord, error) {
	args := m.Called(ctx, companyID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByLocation(ctx context.Context, companyID, locationID uuid.UUID) ([]stock.StockRecord, error) {
	args := m.Called(ctx, companyID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindBySourceRef(ctx context.Context, companyID uuid.UUID, sourceRef string) ([]stock.StockRecord, error) {
	args := m.Called(ctx, companyID, sourceRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]stock.StockRecord, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) SumAvailableByItem(ctx context.Context, companyID, itemID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, itemID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockRecordRepository) SumQuantityByLocation(ctx context.Context, companyID, locationID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, locationID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockRecordRepository) Save(ctx context.Context, record *stock.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLocationRepository is a mock implementation of warehouse.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*warehouse.Location, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*warehouse.Location, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]warehouse.Location, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) FindActiveStorage(ctx context.Context, companyID uuid.UUID) ([]warehouse.Location, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) Save(ctx context.Context, location *warehouse.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockLocationRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, companyID, code)
	return args.Bool(0), args.Error(1)
}

// MockShipmentNoticeRepository is a mock implementation of trade.ShipmentNoticeRepository
type MockShipmentNoticeRepository struct {
	mock.Mock
}

func (m *MockShipmentNoticeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ShipmentNotice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ShipmentNotice), args.Error(1)
}

func (m *MockShipmentNoticeRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.ShipmentNotice, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ShipmentNotice), args.Error(1)
}

func (m *MockShipmentNoticeRepository) FindByNoticeNumber(ctx context.Context, companyID uuid.UUID, noticeNumber string) (*trade.ShipmentNotice, error) {
	args := m.Called(ctx, companyID, noticeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ShipmentNotice), args.Error(1)
}

func (m *MockShipmentNoticeRepository) FindByPurchaseOrder(ctx context.Context, companyID, purchaseOrderID uuid.UUID) ([]trade.ShipmentNotice, error) {
	args := m.Called(ctx, companyID, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.ShipmentNotice), args.Error(1)
}

func (m *MockShipmentNoticeRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.ShipmentNotice, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.ShipmentNotice), args.Error(1)
}

func (m *MockShipmentNoticeRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.ShipmentNoticeStatus) ([]trade.ShipmentNotice, error) {
	args := m.Called(ctx, companyID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.ShipmentNotice), args.Error(1)
}

func (m *MockShipmentNoticeRepository) Save(ctx context.Context, notice *trade.ShipmentNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockShipmentNoticeRepository) GenerateNoticeNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockShipmentNoticeRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSalesOrderRepository is a mock implementation of trade.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByOrderNumber(ctx context.Context, companyID uuid.UUID, orderNumber string) (*trade.SalesOrder, error) {
	args := m.Called(ctx, companyID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.SalesOrderStatus) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, companyID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) GenerateOrderNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockSalesOrderRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPickingListRepository is a mock implementation of trade.PickingListRepository
type MockPickingListRepository struct {
	mock.Mock
}

func (m *MockPickingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PickingList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PickingList), args.Error(1)
}

func (m *MockPickingListRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.PickingList, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PickingList), args.Error(1)
}

func (m *MockPickingListRepository) FindBySalesOrder(ctx context.Context, companyID, salesOrderID uuid.UUID) ([]trade.PickingList, error) {
	args := m.Called(ctx, companyID, salesOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PickingList), args.Error(1)
}

func (m *MockPickingListRepository) FindActiveBySalesOrder(ctx context.Context, companyID, salesOrderID uuid.UUID) (*trade.PickingList, error) {
	args := m.Called(ctx, companyID, salesOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PickingList), args.Error(1)
}

func (m *MockPickingListRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.PickingList, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PickingList), args.Error(1)
}

func (m *MockPickingListRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.PickingListStatus) ([]trade.PickingList, error) {
	args := m.Called(ctx, companyID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PickingList), args.Error(1)
}

func (m *MockPickingListRepository) Save(ctx context.Context, list *trade.PickingList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockPickingListRepository) GenerateListNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockPickingListRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher collects published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEvents() []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]shared.DomainEvent(nil), m.events...)
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

func (m *MockEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

// Shared fixtures

func testOperator(companyID uuid.UUID) shared.OperatorContext {
	return shared.NewOperatorContext(companyID, uuid.New())
}

func testStorageLocation(t *testing.T, companyID uuid.UUID, code string, maxCapacity int64) *warehouse.Location {
	t.Helper()
	location, err := warehouse.NewLocation(companyID, code, warehouse.LocationCategoryStorage, decimal.NewFromInt(maxCapacity))
	require.NoError(t, err)
	return location
}

func testStockRecord(t *testing.T, companyID, itemID, locationID uuid.UUID, quantity int64, cost float64) *stock.StockRecord {
	t.Helper()
	record, err := stock.NewStockRecord(companyID, itemID, locationID,
		decimal.NewFromInt(quantity), valueobject.NewMoneyUSDFromFloat(cost), "")
	require.NoError(t, err)
	record.ClearDomainEvents()
	return record
}

// arrivedNotice returns a notice with one line of the given shipped quantity,
// dispatched and arrived
func arrivedNotice(t *testing.T, companyID, itemID uuid.UUID, shipped int64) *trade.ShipmentNotice {
	t.Helper()
	notice, err := trade.NewShipmentNotice(companyID, "ASN-2026-00001", uuid.New())
	require.NoError(t, err)
	_, err = notice.AddLine(itemID, "WIDGET-01", "Widget", decimal.NewFromInt(shipped), valueobject.NewMoneyUSDFromFloat(9.99))
	require.NoError(t, err)
	require.NoError(t, notice.MarkInTransit())
	require.NoError(t, notice.MarkArrived())
	notice.ClearDomainEvents()
	return notice
}

// confirmedOrder returns a sales order with one line of the given demand
func confirmedOrder(t *testing.T, companyID, itemID uuid.UUID, quantity int64) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder(companyID, "SO-2026-00001", uuid.New(), "Globex Corp")
	require.NoError(t, err)
	_, err = order.AddLine(itemID, "WIDGET-01", "Widget", decimal.NewFromInt(quantity), valueobject.NewMoneyUSDFromFloat(19.99))
	require.NoError(t, err)
	require.NoError(t, order.Confirm())
	order.ClearDomainEvents()
	return order
}

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*catalog.Item, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindActive(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockItemRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, companyID, code)
	return args.Bool(0), args.Error(1)
}

// thresholdItem returns an item with a configured low-stock threshold
func thresholdItem(t *testing.T, companyID uuid.UUID, minStock int64) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(companyID, "WIDGET-01", "Widget", "pcs")
	require.NoError(t, err)
	require.NoError(t, item.SetMinStock(decimal.NewFromInt(minStock)))
	item.ClearDomainEvents()
	return item
}
