package repository

import (
	"context"

	"github.com/annonsera/backend/internal/domain/entity"
)

// AssetRepository defines asset-record persistence operations.
type AssetRepository interface {
	Create(ctx context.Context, a *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	List(ctx context.Context) ([]entity.Asset, error)
	Delete(ctx context.Context, id string) error
}
