package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/internal/domain/repository"
	"github.com/annonsera/backend/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService implements registration, credential checks, token issuance and
// identity resolution over the user store.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Hasher *helpers.PasswordHasher
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, hasher *helpers.PasswordHasher, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Hasher: hasher, Logger: logger}
}

// Register hashes the credential and creates the user with the default role.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	digest, err := s.Hasher.Hash(password)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("password hashing failed")
		}
		return nil, err
	}
	u := &entity.User{
		Email:        email,
		PasswordHash: digest,
		Name:         name,
		Role:         entity.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate validates email/password. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken signs a session token for the user.
func (s *AuthService) IssueToken(u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.Generate(u.ID, u.Email, string(u.Role))
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign session token failed")
	}
	return token, exp, err
}

// Resolve maps verified claims back to a live identity. The role comes from
// the store, not the token, so demotions and deletions take effect on the
// next request. Store errors collapse into the same not-found outcome to
// avoid distinguishing failure causes to the caller.
func (s *AuthService) Resolve(ctx context.Context, userID string) (*entity.Identity, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("identity lookup failed")
		}
		return nil, ErrUserNotFound
	}
	ident := u.Identity()
	return &ident, nil
}
