package fulfillment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
	"github.com/warehouse/backend/internal/domain/stock"
	"github.com/warehouse/backend/internal/domain/trade"
	"github.com/warehouse/backend/internal/domain/warehouse"
)

// PickingService orchestrates the outbound side of fulfillment: generating
// picking lists from confirmed sales orders via FIFO allocation, committing
// picks against the ledger, and completing or unwinding lists. Confirmation
// places no durable hold; picks consume AVAILABLE stock directly, so every
// commit re-validates the ledger row immediately before reducing it.
type PickingService struct {
	salesOrderRepo  trade.SalesOrderRepository
	pickingListRepo trade.PickingListRepository
	stockRepo       stock.StockRecordRepository
	locationRepo    warehouse.LocationRepository
	itemRepo        catalog.ItemRepository
	allocator       *stock.PickAllocator
	ledger          *stock.LedgerService
	txScope         TransactionScope
	eventPublisher  shared.EventPublisher
}

// NewPickingService creates a new PickingService
func NewPickingService(
	salesOrderRepo trade.SalesOrderRepository,
	pickingListRepo trade.PickingListRepository,
	stockRepo stock.StockRecordRepository,
	locationRepo warehouse.LocationRepository,
) *PickingService {
	return &PickingService{
		salesOrderRepo:  salesOrderRepo,
		pickingListRepo: pickingListRepo,
		stockRepo:       stockRepo,
		locationRepo:    locationRepo,
		allocator:       stock.NewPickAllocator(),
		ledger:          stock.NewLedgerService(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PickingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetTransactionScope sets the transaction scope used by pick commits
func (s *PickingService) SetTransactionScope(scope TransactionScope) {
	s.txScope = scope
}

// SetItemRepository enables low-stock threshold alerts after pick commits
func (s *PickingService) SetItemRepository(repo catalog.ItemRepository) {
	s.itemRepo = repo
}

func (s *PickingService) transactionScope() TransactionScope {
	if s.txScope != nil {
		return s.txScope
	}
	return NewNoOpTransactionScope(s.stockRepo, s.locationRepo, nil, s.salesOrderRepo, s.pickingListRepo)
}

func (s *PickingService) publishEvents(ctx context.Context, sources ...shared.AggregateRoot) {
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

// GeneratePickingList creates a picking list for a confirmed sales order.
// Generation is all-or-nothing: every order line's demand must be covered by
// AVAILABLE stock before any document is created, and only one active list
// may exist per order. Demand is split across locations in FIFO order and
// the order advances to PICKING.
func (s *PickingService) GeneratePickingList(ctx context.Context, op shared.OperatorContext, req GeneratePickingListRequest) (*GenerationResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	var result *GenerationResult
	var list *trade.PickingList
	var order *trade.SalesOrder

	err := s.transactionScope().Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.SalesOrderRepo().FindByIDForCompany(ctx, op.CompanyID, req.SalesOrderID)
		if err != nil {
			return err
		}
		if order.Status != trade.SalesOrderStatusConfirmed {
			return shared.NewDomainError("ORDER_NOT_CONFIRMED", "Picking list generation requires a confirmed sales order")
		}
		if len(order.Lines) == 0 {
			return shared.NewDomainError("EMPTY_ORDER", "Sales order has no lines to pick")
		}

		active, err := repos.PickingListRepo().FindActiveBySalesOrder(ctx, op.CompanyID, order.ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if active != nil {
			return shared.NewDomainError("ACTIVE_LIST_EXISTS", "Sales order already has an active picking list")
		}

		stockRepo := repos.StockRepo()

		// Fail-fast pre-validation: every line must be coverable before any
		// document is created
		rowsByItem := make(map[uuid.UUID][]stock.StockRecord, len(order.Lines))
		for i := range order.Lines {
			line := &order.Lines[i]
			rows, err := stockRepo.FindAvailableByItem(ctx, op.CompanyID, line.ItemID)
			if err != nil {
				return err
			}
			ok, total := stock.ValidateAvailability(rows, line.Quantity)
			if !ok {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Item %s requires %s but only %s is available", line.ItemCode, line.Quantity, total))
			}
			rowsByItem[line.ItemID] = rows
		}

		listNumber := req.ListNumber
		if listNumber == "" {
			listNumber, err = repos.PickingListRepo().GenerateListNumber(ctx, op.CompanyID)
			if err != nil {
				return err
			}
		}

		list, err = trade.NewPickingList(op.CompanyID, listNumber, order.ID)
		if err != nil {
			return err
		}

		locationCodes := make(map[uuid.UUID]string)
		lineResults := make([]GenerationLineResult, 0, len(order.Lines))

		for i := range order.Lines {
			line := &order.Lines[i]
			plan, err := s.allocator.Allocate(line.Quantity, rowsByItem[line.ItemID])
			if err != nil {
				return err
			}
			// Pre-validation guarantees coverage, but the snapshot may have
			// moved underneath us
			if !plan.FullyFulfilled {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Item %s can no longer be fully allocated", line.ItemCode))
			}

			for _, suggestion := range plan.Suggestions {
				code, found := locationCodes[suggestion.LocationID]
				if !found {
					location, err := repos.LocationRepo().FindByIDForCompany(ctx, op.CompanyID, suggestion.LocationID)
					if err != nil {
						return err
					}
					code = location.Code
					locationCodes[suggestion.LocationID] = code
				}
				if _, err := list.AddLine(line.ID, line.ItemID, line.ItemCode, suggestion.LocationID, code, suggestion.SuggestedQuantity); err != nil {
					return err
				}
			}

			lineResults = append(lineResults, GenerationLineResult{
				SalesOrderLineID: line.ID,
				ItemID:           line.ItemID,
				ItemCode:         line.ItemCode,
				RequiredQuantity: line.Quantity,
				LocationCount:    len(plan.Suggestions),
			})
		}

		if err := order.StartPicking(); err != nil {
			return err
		}

		if err := repos.PickingListRepo().Save(ctx, list); err != nil {
			return err
		}
		if err := repos.SalesOrderRepo().Save(ctx, order); err != nil {
			return err
		}

		result = &GenerationResult{
			PickingListID: list.ID,
			ListNumber:    list.ListNumber,
			SalesOrderID:  order.ID,
			Lines:         lineResults,
			OrderStatus:   order.Status.String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, list, order)

	return result, nil
}

// ProcessPick commits a pick of quantity against one picking-list line. The
// ledger row for the line's (item, location) is re-validated against current
// state and reduced in the same transaction that updates the line.
func (s *PickingService) ProcessPick(ctx context.Context, op shared.OperatorContext, req PickRequest) (*PickResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Pick quantity must be positive")
	}

	var result *PickResult
	var list *trade.PickingList
	var record *stock.StockRecord

	err := s.transactionScope().Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		list, err = repos.PickingListRepo().FindByIDForCompany(ctx, op.CompanyID, req.PickingListID)
		if err != nil {
			return err
		}
		if !list.IsActive() {
			return shared.NewDomainError("LIST_NOT_ACTIVE", "Picking list is "+list.Status.String())
		}

		line := list.GetLine(req.LineID)
		if line == nil {
			return shared.NewDomainError("LINE_NOT_FOUND", "Picking list line not found")
		}
		if req.Quantity.GreaterThan(line.Remaining()) {
			return shared.NewDomainError("QUANTITY_EXCEEDS_REMAINING",
				fmt.Sprintf("Requested %s exceeds remaining %s", req.Quantity, line.Remaining()))
		}

		stockRepo := repos.StockRepo()
		record, err = stockRepo.FindByItemAndLocation(ctx, op.CompanyID, line.ItemID, line.LocationID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NO_STOCK", "No ledger row for this item at the line's location")
			}
			return err
		}
		if !record.IsPickable() {
			return shared.NewDomainError("ROW_NOT_PICKABLE", "Ledger row is not available for picking")
		}
		if !record.CanFulfill(req.Quantity) {
			return shared.ErrInsufficientStock
		}

		if err := s.ledger.Reduce(record, req.Quantity); err != nil {
			return err
		}
		if err := stockRepo.Save(ctx, record); err != nil {
			return err
		}

		if err := list.RecordPick(req.LineID, req.Quantity); err != nil {
			return err
		}
		if err := repos.PickingListRepo().Save(ctx, list); err != nil {
			return err
		}

		result = &PickResult{
			PickingListID:  list.ID,
			LineID:         line.ID,
			ItemID:         line.ItemID,
			LocationID:     line.LocationID,
			PickedQuantity: req.Quantity,
			LineRemaining:  line.Remaining(),
			ListStatus:     list.Status.String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record, list)
	s.checkLowStockThreshold(ctx, op.CompanyID, result.ItemID)

	return result, nil
}

// checkLowStockThreshold publishes an alert when a pick drives an item's
// total available quantity to or below its configured threshold. Failures
// here never fail the pick that triggered the check.
func (s *PickingService) checkLowStockThreshold(ctx context.Context, companyID, itemID uuid.UUID) {
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

// ProcessBulkPick applies ProcessPick per submitted line, best-effort: a
// failed line does not roll back lines already committed.
func (s *PickingService) ProcessBulkPick(ctx context.Context, op shared.OperatorContext, pickingListID uuid.UUID, requests []PickRequest) (*BulkPickResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, shared.NewDomainError("EMPTY_REQUEST", "Bulk pick requires at least one line")
	}

	bulk := &BulkPickResult{
		PickingListID: pickingListID,
		Lines:         make([]BulkPickLineResult, 0, len(requests)),
	}

	for _, req := range requests {
		req.PickingListID = pickingListID
		result, err := s.ProcessPick(ctx, op, req)
		if err != nil {
			bulk.Lines = append(bulk.Lines, BulkPickLineResult{
				LineID:  req.LineID,
				Success: false,
				Error:   err.Error(),
			})
			bulk.Failed++
			continue
		}
		bulk.Lines = append(bulk.Lines, BulkPickLineResult{
			LineID:  req.LineID,
			Success: true,
			Result:  result,
		})
		bulk.Succeeded++
	}

	bulk.SucceededAll = bulk.Failed == 0
	return bulk, nil
}

// CompletePickingList marks a list COMPLETED. At least one unit must have
// been picked. The parent sales order advances to READY_TO_SHIP only when
// every line is fully picked; a partially picked order stays in PICKING.
func (s *PickingService) CompletePickingList(ctx context.Context, op shared.OperatorContext, pickingListID uuid.UUID) (*CompletionResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	var result *CompletionResult
	var list *trade.PickingList
	var order *trade.SalesOrder

	err := s.transactionScope().Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		list, err = repos.PickingListRepo().FindByIDForCompany(ctx, op.CompanyID, pickingListID)
		if err != nil {
			return err
		}

		fullyPicked := list.AllLinesPicked()

		if err := list.Complete(); err != nil {
			return err
		}

		order, err = repos.SalesOrderRepo().FindByIDForCompany(ctx, op.CompanyID, list.SalesOrderID)
		if err != nil {
			return err
		}
		if fullyPicked {
			if err := order.MarkReadyToShip(); err != nil {
				return err
			}
			if err := repos.SalesOrderRepo().Save(ctx, order); err != nil {
				return err
			}
		}

		if err := repos.PickingListRepo().Save(ctx, list); err != nil {
			return err
		}

		result = &CompletionResult{
			PickingListID: list.ID,
			ListStatus:    list.Status.String(),
			OrderStatus:   order.Status.String(),
			TotalPicked:   list.TotalPicked(),
			FullyPicked:   fullyPicked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, list, order)

	return result, nil
}

// CancelPickingList unwinds an active list: every picked quantity is added
// back to the ledger at the same location with the cost it left at, the list
// goes CANCELLED, and the sales order reverts to CONFIRMED so that a new
// list can be generated.
func (s *PickingService) CancelPickingList(ctx context.Context, op shared.OperatorContext, pickingListID uuid.UUID, reason string) (*CancellationResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	var result *CancellationResult
	var list *trade.PickingList
	var order *trade.SalesOrder
	var reversed []*stock.StockRecord

	err := s.transactionScope().Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		list, err = repos.PickingListRepo().FindByIDForCompany(ctx, op.CompanyID, pickingListID)
		if err != nil {
			return err
		}
		if !list.IsActive() {
			return shared.NewDomainError("LIST_NOT_ACTIVE", "Picking list is "+list.Status.String())
		}

		stockRepo := repos.StockRepo()
		reversals := make([]ReversalResult, 0)
		sourceRef := "REVERSAL/" + list.ListNumber

		for _, line := range list.LinesWithPicks() {
			existing, err := stockRepo.FindByItemAndLocation(ctx, op.CompanyID, line.ItemID, line.LocationID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}

			// Picks drove this row down; it carries the cost the stock left
			// at. A missing row means it was purged out-of-band, so the
			// reversal recreates it at zero cost.
			cost := valueobject.ZeroUSD()
			if existing != nil {
				cost = existing.GetLastCostMoney()
			}

			record, err := s.ledger.AddOrCreate(existing, op.CompanyID, line.ItemID, line.LocationID, line.PickedQuantity, cost, sourceRef)
			if err != nil {
				return err
			}
			if err := stockRepo.Save(ctx, record); err != nil {
				return err
			}
			reversed = append(reversed, record)
			reversals = append(reversals, ReversalResult{
				ItemID:     line.ItemID,
				LocationID: line.LocationID,
				Quantity:   line.PickedQuantity,
			})
		}

		if err := list.Cancel(reason); err != nil {
			return err
		}
		if err := repos.PickingListRepo().Save(ctx, list); err != nil {
			return err
		}

		order, err = repos.SalesOrderRepo().FindByIDForCompany(ctx, op.CompanyID, list.SalesOrderID)
		if err != nil {
			return err
		}
		if err := order.RevertToConfirmed(); err != nil {
			return err
		}
		if err := repos.SalesOrderRepo().Save(ctx, order); err != nil {
			return err
		}

		result = &CancellationResult{
			PickingListID: list.ID,
			ListStatus:    list.Status.String(),
			OrderStatus:   order.Status.String(),
			Reversals:     reversals,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sources := make([]shared.AggregateRoot, 0, len(reversed)+2)
	for _, record := range reversed {
		sources = append(sources, record)
	}
	sources = append(sources, list, order)
	s.publishEvents(ctx, sources...)

	return result, nil
}
