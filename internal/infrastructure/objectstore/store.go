package objectstore

import (
	"context"
	"io"
	"time"

	"github.com/annonsera/backend/internal/domain/entity"
)

// Store is the thin pass-through interface the application uses for object
// storage. The S3 implementation backs it in production; tests use fakes.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]entity.StoredObject, error)
}
