package repository

import (
	"context"
	"errors"

	"github.com/annonsera/backend/internal/domain/entity"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when creating a user with an email that is
// already taken.
var ErrDuplicateEmail = errors.New("email already exists")

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
