package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
	"github.com/warehouse/backend/internal/domain/stock"
	"github.com/warehouse/backend/internal/domain/warehouse"
)

// StockService handles ledger-level stock operations. Every mutation runs
// through the ledger domain service and a mandatory capacity check on the
// receiving location; occupancy is always derived from ledger rows.
type StockService struct {
	stockRepo      stock.StockRecordRepository
	locationRepo   warehouse.LocationRepository
	itemRepo       catalog.ItemRepository
	ledger         *stock.LedgerService
	capacity       *warehouse.CapacityTracker
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new StockService
func NewStockService(
	stockRepo stock.StockRecordRepository,
	locationRepo warehouse.LocationRepository,
	itemRepo catalog.ItemRepository,
) *StockService {
	return &StockService{
		stockRepo:    stockRepo,
		locationRepo: locationRepo,
		itemRepo:     itemRepo,
		ledger:       stock.NewLedgerService(),
		capacity:     warehouse.NewCapacityTracker(stockRepo),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetTransactionScope sets the transaction scope used by transfer operations
func (s *StockService) SetTransactionScope(scope TransactionScope) {
	s.txScope = scope
}

// publishDomainEvents publishes all domain events from the given records
func (s *StockService) publishDomainEvents(ctx context.Context, records ...*stock.StockRecord) {
	if s.eventPublisher == nil {
		return
	}
	for _, record := range records {
		if record == nil {
			continue
		}
		events := record.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		// Publish events (errors are logged by the event bus, not propagated)
		_ = s.eventPublisher.Publish(ctx, events...)
		record.ClearDomainEvents()
	}
}

// transactionScope returns the configured scope, or a no-op fallback wired
// to the service's own repositories
func (s *StockService) transactionScope() TransactionScope {
	if s.txScope != nil {
		return s.txScope
	}
	return NewNoOpTransactionScope(s.stockRepo, s.locationRepo)
}

// AddStock adds stock for an item at a location. The location must be active
// with enough headroom; the ledger row is created when the (item, location)
// pair holds nothing yet.
func (s *StockService) AddStock(ctx context.Context, op shared.OperatorContext, req AddStockRequest) (*StockRecordResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	var record *stock.StockRecord

	err := s.transactionScope().Execute(ctx, func(repos TransactionalRepositories) error {
		stockRepo := repos.StockRepo()

		location, err := repos.LocationRepo().FindByIDForCompany(ctx, op.CompanyID, req.LocationID)
		if err != nil {
			return err
		}

		// Capacity is checked against the transactional ledger view
		capacity := warehouse.NewCapacityTracker(stockRepo)
		if err := capacity.CheckCapacity(ctx, op.CompanyID, location, req.Quantity); err != nil {
			return err
		}

		existing, err := stockRepo.FindByItemAndLocation(ctx, op.CompanyID, req.ItemID, req.LocationID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		cost := valueobject.NewMoneyUSD(req.UnitCost)
		record, err = s.ledger.AddOrCreate(existing, op.CompanyID, req.ItemID, req.LocationID, req.Quantity, cost, req.SourceRef)
		if err != nil {
			return err
		}

		return stockRepo.Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, record)

	response := ToStockRecordResponse(record)
	return &response, nil
}

// ReduceStock removes stock for an item at a location. A row reduced to zero
// stays in the ledger as EMPTY. Crossing the item's low-stock threshold
// publishes an alert event.
func (s *StockService) ReduceStock(ctx context.Context, op shared.OperatorContext, req ReduceStockRequest) (*StockRecordResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	record, err := s.stockRepo.FindByItemAndLocation(ctx, op.CompanyID, req.ItemID, req.LocationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_STOCK", "No stock found for this item at this location")
		}
		return nil, err
	}

	if err := s.ledger.Reduce(record, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.stockRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, record)
	s.checkLowStockThreshold(ctx, op.CompanyID, req.ItemID)

	response := ToStockRecordResponse(record)
	return &response, nil
}

// TransferStock atomically moves stock between two locations: the source row
// is reduced and the destination row increased under one transaction, with
// the capacity check re-run against transactional state. The last cost of
// the source row travels with the stock.
func (s *StockService) TransferStock(ctx context.Context, op shared.OperatorContext, req TransferStockRequest) (*TransferStockResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if req.FromLocationID == req.ToLocationID {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Source and destination location are the same")
	}

	var source, dest *stock.StockRecord

	err := s.transactionScope().Execute(ctx, func(repos TransactionalRepositories) error {
		stockRepo := repos.StockRepo()

		from, err := stockRepo.FindByItemAndLocation(ctx, op.CompanyID, req.ItemID, req.FromLocationID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NO_STOCK", "No stock found for this item at the source location")
			}
			return err
		}

		toLocation, err := repos.LocationRepo().FindByIDForCompany(ctx, op.CompanyID, req.ToLocationID)
		if err != nil {
			return err
		}

		// Capacity is checked against the transactional ledger view
		capacity := warehouse.NewCapacityTracker(stockRepo)
		if err := capacity.CheckCapacity(ctx, op.CompanyID, toLocation, req.Quantity); err != nil {
			return err
		}

		to, err := stockRepo.FindByItemAndLocation(ctx, op.CompanyID, req.ItemID, req.ToLocationID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		dest, err = s.ledger.Transfer(from, to, req.ToLocationID, req.Quantity, req.SourceRef)
		if err != nil {
			return err
		}
		source = from

		if err := stockRepo.Save(ctx, from); err != nil {
			return err
		}
		return stockRepo.Save(ctx, dest)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, source, dest)

	return &TransferStockResponse{
		Source:      ToStockRecordResponse(source),
		Destination: ToStockRecordResponse(dest),
	}, nil
}

// MoveStock relocates the full quantity of one ledger row to another
// location. It is the operator-directed form of TransferStock: the row is
// looked up by id, and everything it holds moves in one step.
func (s *StockService) MoveStock(ctx context.Context, op shared.OperatorContext, req MoveStockRequest) (*TransferStockResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	record, err := s.stockRepo.FindByID(ctx, req.RecordID)
	if err != nil {
		return nil, err
	}
	if record.CompanyID != op.CompanyID {
		return nil, shared.ErrNotFound
	}
	if record.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("NO_STOCK", "Stock record is empty, nothing to move")
	}

	return s.TransferStock(ctx, op, TransferStockRequest{
		ItemID:         record.ItemID,
		FromLocationID: record.LocationID,
		ToLocationID:   req.ToLocationID,
		Quantity:       record.Quantity,
		SourceRef:      req.SourceRef,
	})
}

// MarkDamaged moves a ledger row out of sellable stock
func (s *StockService) MarkDamaged(ctx context.Context, op shared.OperatorContext, recordID uuid.UUID) (*StockRecordResponse, error) {
	return s.changeStatus(ctx, op, recordID, (*stock.StockRecord).MarkDamaged)
}

// MarkAvailable returns a ledger row to sellable stock
func (s *StockService) MarkAvailable(ctx context.Context, op shared.OperatorContext, recordID uuid.UUID) (*StockRecordResponse, error) {
	return s.changeStatus(ctx, op, recordID, (*stock.StockRecord).MarkAvailable)
}

func (s *StockService) changeStatus(ctx context.Context, op shared.OperatorContext, recordID uuid.UUID, transition func(*stock.StockRecord) error) (*StockRecordResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	record, err := s.stockRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.CompanyID != op.CompanyID {
		return nil, shared.NewDomainError("FORBIDDEN", "Ledger row does not belong to this company")
	}

	if err := transition(record); err != nil {
		return nil, err
	}

	if err := s.stockRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, record)
	s.checkLowStockThreshold(ctx, op.CompanyID, record.ItemID)

	response := ToStockRecordResponse(record)
	return &response, nil
}

// checkLowStockThreshold publishes an alert when an item's total available
// quantity sits at or below its configured threshold. Failures here never
// fail the mutation that triggered the check.
func (s *StockService) checkLowStockThreshold(ctx context.Context, companyID, itemID uuid.UUID) {
	if s.eventPublisher == nil || s.itemRepo == nil {
		return
	}

	item, err := s.itemRepo.FindByIDForCompany(ctx, companyID, itemID)
	if err != nil || !item.HasLowStockThreshold() {
		return
	}

	total, err := s.stockRepo.SumAvailableByItem(ctx, companyID, itemID)
	if err != nil {
		return
	}
	if total.LessThanOrEqual(item.MinStock) {
		event := stock.NewLowStockThresholdCrossedEvent(companyID, itemID, item.Code, total, item.MinStock)
		_ = s.eventPublisher.Publish(ctx, event)
	}
}

// GetByID retrieves a ledger row by ID
func (s *StockService) GetByID(ctx context.Context, op shared.OperatorContext, recordID uuid.UUID) (*StockRecordResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	record, err := s.stockRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.CompanyID != op.CompanyID {
		return nil, shared.ErrNotFound
	}
	response := ToStockRecordResponse(record)
	return &response, nil
}

// GetByItemAndLocation retrieves the ledger row for an (item, location) pair
func (s *StockService) GetByItemAndLocation(ctx context.Context, op shared.OperatorContext, itemID, locationID uuid.UUID) (*StockRecordResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	record, err := s.stockRepo.FindByItemAndLocation(ctx, op.CompanyID, itemID, locationID)
	if err != nil {
		return nil, err
	}
	response := ToStockRecordResponse(record)
	return &response, nil
}

// List retrieves ledger rows with filtering and pagination
func (s *StockService) List(ctx context.Context, op shared.OperatorContext, filter StockListFilter) ([]StockRecordResponse, int64, error) {
	if err := op.Validate(); err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "last_moved_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.ItemID != nil {
		domainFilter.Filters["item_id"] = *filter.ItemID
	}
	if filter.LocationID != nil {
		domainFilter.Filters["location_id"] = *filter.LocationID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.SourceRef != "" {
		domainFilter.Filters["source_ref"] = filter.SourceRef
	}

	records, err := s.stockRepo.FindAllForCompany(ctx, op.CompanyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.stockRepo.CountForCompany(ctx, op.CompanyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockRecordResponses(records), total, nil
}

// ListByLocation retrieves all ledger rows at a location
func (s *StockService) ListByLocation(ctx context.Context, op shared.OperatorContext, locationID uuid.UUID) ([]StockRecordResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	records, err := s.stockRepo.FindByLocation(ctx, op.CompanyID, locationID)
	if err != nil {
		return nil, err
	}
	return ToStockRecordResponses(records), nil
}

// ListBySourceRef retrieves ledger rows by provenance tag
func (s *StockService) ListBySourceRef(ctx context.Context, op shared.OperatorContext, sourceRef string) ([]StockRecordResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	records, err := s.stockRepo.FindBySourceRef(ctx, op.CompanyID, sourceRef)
	if err != nil {
		return nil, err
	}
	return ToStockRecordResponses(records), nil
}

// GetItemAvailability reports total pickable stock for an item across
// locations
func (s *StockService) GetItemAvailability(ctx context.Context, op shared.OperatorContext, itemID uuid.UUID) (*ItemAvailabilityResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	records, err := s.stockRepo.FindAvailableByItem(ctx, op.CompanyID, itemID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range records {
		total = total.Add(records[i].Quantity)
	}

	return &ItemAvailabilityResponse{
		ItemID:         itemID,
		TotalAvailable: total,
		RowCount:       len(records),
	}, nil
}

// GetLocationOccupancy reports the derived occupancy and headroom of a
// location
func (s *StockService) GetLocationOccupancy(ctx context.Context, op shared.OperatorContext, locationID uuid.UUID) (*LocationOccupancyResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	location, err := s.locationRepo.FindByIDForCompany(ctx, op.CompanyID, locationID)
	if err != nil {
		return nil, err
	}

	current, err := s.capacity.CurrentCapacity(ctx, op.CompanyID, location)
	if err != nil {
		return nil, err
	}

	utilization := decimal.Zero
	if location.HasValidCapacity() {
		utilization = current.Div(location.MaxCapacity)
	}

	return &LocationOccupancyResponse{
		LocationID:        location.ID,
		LocationCode:      location.Code,
		MaxCapacity:       location.MaxCapacity,
		CurrentCapacity:   current,
		AvailableCapacity: location.MaxCapacity.Sub(current),
		Utilization:       utilization,
	}, nil
}
