package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	portsvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
)

// Challans are created by invoice conversion only; this service covers the
// remaining read/update/delete surface.
type challanService struct {
	BaseService
	challanRepo portrepo.ChallanRepositoryFacade
}

// NewChallanService creates a new delivery challan service.
func NewChallanService(challanRepo portrepo.ChallanRepositoryFacade) portsvc.ChallanSvcFacade {
	return &challanService{
		BaseService: NewBaseService(),
		challanRepo: challanRepo,
	}
}

func (s *challanService) GetChallanByID(ctx context.Context, challanID string) (*domain.DeliveryChallan, error) {
	return s.challanRepo.FindChallanByID(ctx, challanID)
}

func (s *challanService) ListChallans(ctx context.Context) ([]domain.DeliveryChallan, error) {
	return s.challanRepo.ListChallans(ctx)
}

func (s *challanService) UpdateChallan(ctx context.Context, challanID string, req dto.UpdateChallanRequest) (*domain.DeliveryChallan, error) {
	challan, err := s.challanRepo.FindChallanByID(ctx, challanID)
	if err != nil {
		return nil, err
	}

	if req.DeliveryDate != nil {
		challan.DeliveryDate = *req.DeliveryDate
	}
	if req.VehicleNumber != nil {
		challan.VehicleNumber = *req.VehicleNumber
	}
	if req.Notes != nil {
		challan.Notes = *req.Notes
	}
	challan.LastUpdatedAt = time.Now().UTC()

	if err := s.challanRepo.UpdateChallan(ctx, *challan); err != nil {
		s.LogError(ctx, "failed to update challan", "error", err, "challanID", challanID)
		return nil, fmt.Errorf("failed to update challan: %w", err)
	}
	return challan, nil
}

func (s *challanService) DeleteChallan(ctx context.Context, challanID string) error {
	if _, err := s.challanRepo.FindChallanByID(ctx, challanID); err != nil {
		return err
	}
	if err := s.challanRepo.DeleteChallan(ctx, challanID); err != nil {
		s.LogError(ctx, "failed to delete challan", "error", err, "challanID", challanID)
		return fmt.Errorf("failed to delete challan: %w", err)
	}
	return nil
}
