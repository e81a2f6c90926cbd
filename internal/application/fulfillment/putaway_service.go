package fulfillment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/stock"
	"github.com/warehouse/backend/internal/domain/trade"
	"github.com/warehouse/backend/internal/domain/warehouse"
)

// PutawayService orchestrates the inbound side of fulfillment: placing
// arrived shipment-notice stock into storage locations. The placement
// suggestion is advisory and computed against a snapshot; the commit
// re-validates line remaining and location capacity against current state
// inside one transaction.
type PutawayService struct {
	noticeRepo     trade.ShipmentNoticeRepository
	stockRepo      stock.StockRecordRepository
	locationRepo   warehouse.LocationRepository
	allocator      *warehouse.PutawayAllocator
	ledger         *stock.LedgerService
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPutawayService creates a new PutawayService
func NewPutawayService(
	noticeRepo trade.ShipmentNoticeRepository,
	stockRepo stock.StockRecordRepository,
	locationRepo warehouse.LocationRepository,
) *PutawayService {
	capacity := warehouse.NewCapacityTracker(stockRepo)
	return &PutawayService{
		noticeRepo:   noticeRepo,
		stockRepo:    stockRepo,
		locationRepo: locationRepo,
		allocator:    warehouse.NewPutawayAllocator(locationRepo, capacity),
		ledger:       stock.NewLedgerService(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PutawayService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetTransactionScope sets the transaction scope used by putaway commits
func (s *PutawayService) SetTransactionScope(scope TransactionScope) {
	s.txScope = scope
}

func (s *PutawayService) transactionScope() TransactionScope {
	if s.txScope != nil {
		return s.txScope
	}
	return NewNoOpTransactionScope(s.stockRepo, s.locationRepo, s.noticeRepo, nil, nil)
}

func (s *PutawayService) publishEvents(ctx context.Context, sources ...shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	for _, source := range sources {
		events := source.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		_ = s.eventPublisher.Publish(ctx, events...)
		source.ClearDomainEvents()
	}
}

// SuggestLocation returns the least-utilized storage location able to absorb
// the quantity. Advisory only; the operator may override and the commit
// re-checks capacity either way.
func (s *PutawayService) SuggestLocation(ctx context.Context, op shared.OperatorContext, quantity decimal.Decimal) (*warehouse.PutawaySuggestion, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return s.allocator.SuggestLocation(ctx, op.CompanyID, quantity)
}

// RankLocations returns every suitable storage location for the quantity,
// ordered by ascending utilization
func (s *PutawayService) RankLocations(ctx context.Context, op shared.OperatorContext, quantity decimal.Decimal) ([]warehouse.PutawaySuggestion, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return s.allocator.RankLocations(ctx, op.CompanyID, quantity)
}

// ProcessPutaway places quantity from one shipment-notice line into a
// location. When the request names no location, the allocator chooses one.
// Ledger addition and the line's placed-quantity update commit atomically;
// the notice advances to PROCESSED when its last line is fully placed.
func (s *PutawayService) ProcessPutaway(ctx context.Context, op shared.OperatorContext, req PutawayRequest) (*PutawayResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Putaway quantity must be positive")
	}

	locationID := req.LocationID
	suggested := false
	if locationID == uuid.Nil {
		suggestion, err := s.allocator.SuggestLocation(ctx, op.CompanyID, req.Quantity)
		if err != nil {
			return nil, err
		}
		locationID = suggestion.LocationID
		suggested = true
	}

	var result *PutawayResult
	var notice *trade.ShipmentNotice
	var record *stock.StockRecord

	err := s.transactionScope().Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		notice, err = repos.NoticeRepo().FindByIDForCompany(ctx, op.CompanyID, req.NoticeID)
		if err != nil {
			return err
		}
		if !notice.CanPutaway() {
			return shared.NewDomainError("NOTICE_NOT_ARRIVED", "Putaway requires an arrived shipment notice")
		}

		line := notice.GetLine(req.LineID)
		if line == nil {
			return shared.NewDomainError("LINE_NOT_FOUND", "Shipment notice line not found")
		}
		if line.Remaining().LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("LINE_FULLY_PLACED", "Nothing remains to put away on this line")
		}
		if req.Quantity.GreaterThan(line.Remaining()) {
			return shared.NewDomainError("QUANTITY_EXCEEDS_REMAINING",
				fmt.Sprintf("Requested %s exceeds remaining %s", req.Quantity, line.Remaining()))
		}

		location, err := repos.LocationRepo().FindByIDForCompany(ctx, op.CompanyID, locationID)
		if err != nil {
			return err
		}

		stockRepo := repos.StockRepo()
		capacity := warehouse.NewCapacityTracker(stockRepo)
		if err := capacity.CheckCapacity(ctx, op.CompanyID, location, req.Quantity); err != nil {
			return err
		}

		existing, err := stockRepo.FindByItemAndLocation(ctx, op.CompanyID, line.ItemID, locationID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		sourceRef := fmt.Sprintf("%s/%s", notice.NoticeNumber, line.ID)
		record, err = s.ledger.AddOrCreate(existing, op.CompanyID, line.ItemID, locationID, req.Quantity, line.GetActualUnitPriceMoney(), sourceRef)
		if err != nil {
			return err
		}
		if err := stockRepo.Save(ctx, record); err != nil {
			return err
		}

		if err := notice.RecordPutaway(req.LineID, req.Quantity); err != nil {
			return err
		}
		if err := repos.NoticeRepo().Save(ctx, notice); err != nil {
			return err
		}

		result = &PutawayResult{
			NoticeID:          notice.ID,
			LineID:            line.ID,
			ItemID:            line.ItemID,
			LocationID:        locationID,
			LocationCode:      location.Code,
			PlacedQuantity:    req.Quantity,
			LineRemaining:     line.Remaining(),
			NoticeStatus:      notice.Status.String(),
			SuggestedLocation: suggested,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record, notice)

	return result, nil
}

// ProcessBulkPutaway applies ProcessPutaway per submitted line, best-effort:
// a failed line does not roll back lines already committed.
func (s *PutawayService) ProcessBulkPutaway(ctx context.Context, op shared.OperatorContext, noticeID uuid.UUID, requests []PutawayRequest) (*BulkPutawayResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, shared.NewDomainError("EMPTY_REQUEST", "Bulk putaway requires at least one line")
	}

	bulk := &BulkPutawayResult{
		NoticeID: noticeID,
		Lines:    make([]BulkPutawayLineResult, 0, len(requests)),
	}

	for _, req := range requests {
		req.NoticeID = noticeID
		result, err := s.ProcessPutaway(ctx, op, req)
		if err != nil {
			bulk.Lines = append(bulk.Lines, BulkPutawayLineResult{
				LineID:  req.LineID,
				Success: false,
				Error:   err.Error(),
			})
			bulk.Failed++
			continue
		}
		bulk.Lines = append(bulk.Lines, BulkPutawayLineResult{
			LineID:  req.LineID,
			Success: true,
			Result:  result,
		})
		bulk.Succeeded++
	}

	bulk.SucceededAll = bulk.Failed == 0
	return bulk, nil
}
