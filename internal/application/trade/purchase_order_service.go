package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
	"github.com/warehouse/backend/internal/domain/trade"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo      trade.PurchaseOrderRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(orderRepo trade.PurchaseOrderRepository) *PurchaseOrderService {
	return &PurchaseOrderService{orderRepo: orderRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PurchaseOrderService) publishDomainEvents(ctx context.Context, order *trade.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}

// Create creates a new purchase order in DRAFT
func (s *PurchaseOrderService) Create(ctx context.Context, op shared.OperatorContext, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx, op.CompanyID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewPurchaseOrder(op.CompanyID, orderNumber, req.SupplierID, req.SupplierName)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Lines {
		unitPrice := valueobject.NewMoneyUSD(line.UnitPrice)
		if _, err := order.AddLine(line.ItemID, line.ItemCode, line.ItemName, line.Quantity, unitPrice); err != nil {
			return nil, err
		}
	}
	if req.Remark != "" {
		order.Remark = req.Remark
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Send marks the order as sent to the supplier, freezing its lines
func (s *PurchaseOrderService) Send(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, op, orderID, (*trade.PurchaseOrder).Send)
}

// Cancel cancels a draft order
func (s *PurchaseOrderService) Cancel(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID, reason string) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, op, orderID, func(order *trade.PurchaseOrder) error {
		return order.Cancel(reason)
	})
}

func (s *PurchaseOrderService) transition(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID, fn func(*trade.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByIDForCompany(ctx, op.CompanyID, orderID)
	if err != nil {
		return nil, err
	}

	if err := fn(order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByIDForCompany(ctx, op.CompanyID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, op shared.OperatorContext, filter DocumentListFilter) ([]PurchaseOrderResponse, int64, error) {
	if err := op.Validate(); err != nil {
		return nil, 0, err
	}

	domainFilter := buildDocumentFilter(filter)
	orders, err := s.orderRepo.FindAllForCompany(ctx, op.CompanyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForCompany(ctx, op.CompanyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// buildDocumentFilter maps a list filter onto the shared repository filter
// with defaults applied
func buildDocumentFilter(filter DocumentListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
