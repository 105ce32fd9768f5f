package application

import (
	"context"
	"errors"
	"time"

	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/internal/domain/repository"
)

var ErrCampaignNotFound = errors.New("campaign not found")

// metricsWindow is how many of the most recent daily metrics a campaign
// detail includes.
const metricsWindow = 30

// CampaignService owns campaign use cases; all reads are scoped to the
// calling user.
type CampaignService struct {
	Repo repository.CampaignRepository
}

func NewCampaignService(repo repository.CampaignRepository) *CampaignService {
	return &CampaignService{Repo: repo}
}

type CreateCampaignInput struct {
	Name      string
	City      string
	RadiusKm  int
	BudgetKr  int
	StartDate time.Time
	EndDate   time.Time
}

func (s *CampaignService) Create(ctx context.Context, userID string, in CreateCampaignInput) (*entity.Campaign, error) {
	c := &entity.Campaign{
		UserID:    userID,
		Name:      in.Name,
		City:      in.City,
		RadiusKm:  in.RadiusKm,
		BudgetKr:  in.BudgetKr,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) ListForUser(ctx context.Context, userID string) ([]entity.Campaign, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *CampaignService) GetDetail(ctx context.Context, id, userID string) (*entity.CampaignDetail, error) {
	d, err := s.Repo.GetDetail(ctx, id, userID, metricsWindow)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return d, nil
}
