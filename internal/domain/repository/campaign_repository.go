package repository

import (
	"context"

	"github.com/annonsera/backend/internal/domain/entity"
)

// CampaignRepository defines campaign persistence operations. Reads are
// scoped to the owning user.
type CampaignRepository interface {
	Create(ctx context.Context, c *entity.Campaign) error
	// ListByUser returns the user's campaigns, newest first, with ad counts.
	ListByUser(ctx context.Context, userID string) ([]entity.Campaign, error)
	// GetDetail returns an owned campaign with its ads and the most recent
	// metrics, limited to metricsLimit days. ErrNotFound covers both a missing
	// id and a campaign owned by someone else.
	GetDetail(ctx context.Context, id, userID string, metricsLimit int) (*entity.CampaignDetail, error)
}
