package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
	"github.com/warehouse/backend/internal/domain/trade"
)

// ShipmentNoticeService handles the inbound document lifecycle. Notices are
// raised against sent purchase orders and walk DRAFT → IN_TRANSIT → ARRIVED;
// from ARRIVED, the putaway side of fulfillment takes over.
type ShipmentNoticeService struct {
	noticeRepo     trade.ShipmentNoticeRepository
	orderRepo      trade.PurchaseOrderRepository
	eventPublisher shared.EventPublisher
}

// NewShipmentNoticeService creates a new ShipmentNoticeService
func NewShipmentNoticeService(noticeRepo trade.ShipmentNoticeRepository, orderRepo trade.PurchaseOrderRepository) *ShipmentNoticeService {
	return &ShipmentNoticeService{
		noticeRepo: noticeRepo,
		orderRepo:  orderRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ShipmentNoticeService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ShipmentNoticeService) publishDomainEvents(ctx context.Context, notice *trade.ShipmentNotice) {
	if s.eventPublisher == nil {
		return
	}
	events := notice.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	notice.ClearDomainEvents()
}

// Create creates a shipment notice from a sent purchase order. Lines copy
// the order's items and prices; overrides adjust shipped quantity or actual
// unit price per item (short shipments and price drift are normal).
func (s *ShipmentNoticeService) Create(ctx context.Context, op shared.OperatorContext, req CreateShipmentNoticeRequest) (*ShipmentNoticeResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByIDForCompany(ctx, op.CompanyID, req.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != trade.PurchaseOrderStatusSent {
		return nil, shared.NewDomainError("ORDER_NOT_SENT", "Shipment notices require a sent purchase order")
	}

	noticeNumber, err := s.noticeRepo.GenerateNoticeNumber(ctx, op.CompanyID)
	if err != nil {
		return nil, err
	}

	notice, err := trade.NewShipmentNotice(op.CompanyID, noticeNumber, order.ID)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		notice.Remark = req.Remark
	}

	overrides := make(map[uuid.UUID]ShipmentLineOverride, len(req.LineOverrides))
	for _, o := range req.LineOverrides {
		overrides[o.ItemID] = o
	}

	for _, line := range order.Lines {
		quantity := line.Quantity
		price := line.UnitPrice
		if o, ok := overrides[line.ItemID]; ok {
			if o.ShippedQuantity != nil {
				quantity = *o.ShippedQuantity
			}
			if o.ActualUnitPrice != nil {
				price = *o.ActualUnitPrice
			}
		}
		if _, err := notice.AddLine(line.ItemID, line.ItemCode, line.ItemName, quantity, valueobject.NewMoneyUSD(price)); err != nil {
			return nil, err
		}
	}

	if err := s.noticeRepo.Save(ctx, notice); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, notice)

	response := ToShipmentNoticeResponse(notice)
	return &response, nil
}

// MarkInTransit records the shipment leaving the supplier
func (s *ShipmentNoticeService) MarkInTransit(ctx context.Context, op shared.OperatorContext, noticeID uuid.UUID) (*ShipmentNoticeResponse, error) {
	return s.transition(ctx, op, noticeID, (*trade.ShipmentNotice).MarkInTransit)
}

// MarkArrived records physical arrival, opening the notice for putaway
func (s *ShipmentNoticeService) MarkArrived(ctx context.Context, op shared.OperatorContext, noticeID uuid.UUID) (*ShipmentNoticeResponse, error) {
	return s.transition(ctx, op, noticeID, (*trade.ShipmentNotice).MarkArrived)
}

// Cancel cancels a notice from any non-terminal state
func (s *ShipmentNoticeService) Cancel(ctx context.Context, op shared.OperatorContext, noticeID uuid.UUID, reason string) (*ShipmentNoticeResponse, error) {
	return s.transition(ctx, op, noticeID, func(notice *trade.ShipmentNotice) error {
		return notice.Cancel(reason)
	})
}

func (s *ShipmentNoticeService) transition(ctx context.Context, op shared.OperatorContext, noticeID uuid.UUID, fn func(*trade.ShipmentNotice) error) (*ShipmentNoticeResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	notice, err := s.noticeRepo.FindByIDForCompany(ctx, op.CompanyID, noticeID)
	if err != nil {
		return nil, err
	}

	if err := fn(notice); err != nil {
		return nil, err
	}

	if err := s.noticeRepo.Save(ctx, notice); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, notice)

	response := ToShipmentNoticeResponse(notice)
	return &response, nil
}

// GetByID retrieves a shipment notice by ID
func (s *ShipmentNoticeService) GetByID(ctx context.Context, op shared.OperatorContext, noticeID uuid.UUID) (*ShipmentNoticeResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	notice, err := s.noticeRepo.FindByIDForCompany(ctx, op.CompanyID, noticeID)
	if err != nil {
		return nil, err
	}
	response := ToShipmentNoticeResponse(notice)
	return &response, nil
}

// List retrieves shipment notices with filtering and pagination
func (s *ShipmentNoticeService) List(ctx context.Context, op shared.OperatorContext, filter DocumentListFilter) ([]ShipmentNoticeResponse, int64, error) {
	if err := op.Validate(); err != nil {
		return nil, 0, err
	}

	domainFilter := buildDocumentFilter(filter)
	notices, err := s.noticeRepo.FindAllForCompany(ctx, op.CompanyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.noticeRepo.CountForCompany(ctx, op.CompanyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShipmentNoticeResponse, len(notices))
	for i := range notices {
		responses[i] = ToShipmentNoticeResponse(&notices[i])
	}
	return responses, total, nil
}
