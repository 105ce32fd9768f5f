package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/internal/domain/repository"
	"github.com/annonsera/backend/internal/infrastructure/objectstore"
)

var ErrAssetNotFound = errors.New("asset not found")

// presignExpiry is how long a download link stays valid.
const presignExpiry = 60 * time.Second

// AssetService stores uploaded files in the object store and tracks them in
// Postgres.
type AssetService struct {
	Repo   repository.AssetRepository
	Store  objectstore.Store
	Logger *logrus.Logger
}

func NewAssetService(repo repository.AssetRepository, store objectstore.Store, logger *logrus.Logger) *AssetService {
	return &AssetService{Repo: repo, Store: store, Logger: logger}
}

// Upload writes the object first, then records it; a failed insert leaves an
// orphan object rather than a dangling row.
func (s *AssetService) Upload(ctx context.Context, key, mime string, size int64, body io.Reader) (*entity.Asset, error) {
	if err := s.Store.Put(ctx, key, mime, body); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Error("object store put failed")
		}
		return nil, err
	}
	a := &entity.Asset{Key: key, Mime: mime, Size: size}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) List(ctx context.Context) ([]entity.Asset, error) {
	return s.Repo.List(ctx)
}

func (s *AssetService) ListObjects(ctx context.Context) ([]entity.StoredObject, error) {
	return s.Store.List(ctx)
}

// DownloadURL returns a short-lived presigned link for the asset's object.
func (s *AssetService) DownloadURL(ctx context.Context, id string) (string, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAssetNotFound
		}
		return "", err
	}
	return s.Store.PresignGet(ctx, a.Key, presignExpiry)
}

// Delete removes the object, then the row.
func (s *AssetService) Delete(ctx context.Context, id string) error {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssetNotFound
		}
		return err
	}
	if err := s.Store.Delete(ctx, a.Key); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("key", a.Key).Error("object store delete failed")
		}
		return err
	}
	return s.Repo.Delete(ctx, id)
}
