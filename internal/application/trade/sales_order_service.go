package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/shared/valueobject"
	"github.com/warehouse/backend/internal/domain/trade"
)

// SalesOrderService handles the outbound document lifecycle up to and after
// picking: creation, confirmation, shipping and completion. The picking
// transitions themselves belong to the fulfillment orchestrator.
type SalesOrderService struct {
	orderRepo      trade.SalesOrderRepository
	eventPublisher shared.EventPublisher
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(orderRepo trade.SalesOrderRepository) *SalesOrderService {
	return &SalesOrderService{orderRepo: orderRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SalesOrderService) publishDomainEvents(ctx context.Context, order *trade.SalesOrder) {
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

// Create creates a new sales order in DRAFT
func (s *SalesOrderService) Create(ctx context.Context, op shared.OperatorContext, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx, op.CompanyID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewSalesOrder(op.CompanyID, orderNumber, req.CustomerID, req.CustomerName)
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

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Confirm confirms a draft order, making it eligible for picking list
// generation. No stock is held at confirmation; availability is validated
// when the picking list is generated.
func (s *SalesOrderService) Confirm(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, op, orderID, (*trade.SalesOrder).Confirm)
}

// Ship marks a ready order as shipped
func (s *SalesOrderService) Ship(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, op, orderID, (*trade.SalesOrder).Ship)
}

// Complete closes a shipped order
func (s *SalesOrderService) Complete(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, op, orderID, (*trade.SalesOrder).Complete)
}

// Cancel cancels an order from DRAFT or CONFIRMED
func (s *SalesOrderService) Cancel(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID, reason string) (*SalesOrderResponse, error) {
	return s.transition(ctx, op, orderID, func(order *trade.SalesOrder) error {
		return order.Cancel(reason)
	})
}

func (s *SalesOrderService) transition(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID, fn func(*trade.SalesOrder) error) (*SalesOrderResponse, error) {
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

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, op shared.OperatorContext, orderID uuid.UUID) (*SalesOrderResponse, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByIDForCompany(ctx, op.CompanyID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, op shared.OperatorContext, filter DocumentListFilter) ([]SalesOrderResponse, int64, error) {
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

	responses := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderResponse(&orders[i])
	}
	return responses, total, nil
}
