package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	portsvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type purchaseOrderService struct {
	BaseService
	purchaseOrderRepo portrepo.PurchaseOrderRepositoryFacade
}

// NewPurchaseOrderService creates a new purchase order service.
func NewPurchaseOrderService(purchaseOrderRepo portrepo.PurchaseOrderRepositoryFacade) portsvc.PurchaseOrderSvcFacade {
	return &purchaseOrderService{
		BaseService:       NewBaseService(),
		purchaseOrderRepo: purchaseOrderRepo,
	}
}

func (s *purchaseOrderService) CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	items := newLineItems(req.Items)
	if err := validateLineItems(items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := domain.PurchaseOrder{
		PurchaseOrderID: uuid.NewString(),
		OrderNumber:     req.OrderNumber,
		SupplierID:      req.SupplierID,
		OrderDate:       req.OrderDate,
		DueDate:         req.DueDate,
		Items:           items,
		Status:          domain.StatusDraft,
		Payments:        []domain.Payment{},
		PreviousDue:     req.PreviousDue,
		Discount:        req.Discount,
		TaxAmount:       req.TaxAmount,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.purchaseOrderRepo.SavePurchaseOrder(ctx, order); err != nil {
		s.LogError(ctx, "failed to save purchase order", "error", err)
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}
	return &order, nil
}

// UpdatePurchaseOrder mirrors invoice updates, including the derived-status
// write protection.
func (s *purchaseOrderService) UpdatePurchaseOrder(ctx context.Context, purchaseOrderID string, req dto.UpdatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	order, err := s.purchaseOrderRepo.FindPurchaseOrderByID(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != order.Status {
		if req.Status.IsDerived() {
			return nil, fmt.Errorf("%w: %s", ErrStatusProtected, *req.Status)
		}
		if order.TotalPaid().GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: purchase order %s has payments", ErrStatusProtected, purchaseOrderID)
		}
		order.Status = *req.Status
	}
	if req.OrderNumber != nil {
		order.OrderNumber = *req.OrderNumber
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if req.DueDate != nil {
		order.DueDate = *req.DueDate
	}
	if req.Items != nil {
		items := newLineItems(req.Items)
		if err := validateLineItems(items); err != nil {
			return nil, err
		}
		order.Items = items
	}
	if req.PreviousDue != nil {
		order.PreviousDue = *req.PreviousDue
	}
	if req.Discount != nil {
		order.Discount = *req.Discount
	}
	if req.TaxAmount != nil {
		order.TaxAmount = *req.TaxAmount
	}
	order.LastUpdatedAt = time.Now().UTC()

	if err := s.purchaseOrderRepo.UpdatePurchaseOrder(ctx, *order); err != nil {
		s.LogError(ctx, "failed to update purchase order", "error", err, "purchaseOrderID", purchaseOrderID)
		return nil, fmt.Errorf("failed to update purchase order: %w", err)
	}
	return order, nil
}

func (s *purchaseOrderService) DeletePurchaseOrder(ctx context.Context, purchaseOrderID string) error {
	order, err := s.purchaseOrderRepo.FindPurchaseOrderByID(ctx, purchaseOrderID)
	if err != nil {
		return err
	}
	if len(order.Payments) > 0 {
		return fmt.Errorf("%w: purchase order %s", ErrPaymentsExist, purchaseOrderID)
	}

	if err := s.purchaseOrderRepo.DeletePurchaseOrder(ctx, purchaseOrderID); err != nil {
		s.LogError(ctx, "failed to delete purchase order", "error", err, "purchaseOrderID", purchaseOrderID)
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}
	s.LogInfo(ctx, "purchase order deleted", "purchaseOrderID", purchaseOrderID)
	return nil
}

func (s *purchaseOrderService) GetPurchaseOrderByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	return s.purchaseOrderRepo.FindPurchaseOrderByID(ctx, purchaseOrderID)
}

func (s *purchaseOrderService) ListPurchaseOrders(ctx context.Context, supplierID string) ([]domain.PurchaseOrder, error) {
	return s.purchaseOrderRepo.ListPurchaseOrders(ctx, supplierID)
}
