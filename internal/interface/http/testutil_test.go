package handlers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/internal/domain/repository"
	"github.com/annonsera/backend/internal/interface/middleware"
	"github.com/annonsera/backend/pkg/helpers"
	"github.com/annonsera/backend/pkg/validation"
)

var setupOnce sync.Once

func testSetup() {
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})
}

// memUserRepo is an in-memory UserRepository for handler tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) List(ctx context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*memUserRepo)(nil)

// authEnv bundles the pieces handler tests wire together.
type authEnv struct {
	Router *gin.Engine
	Repo   *memUserRepo
	Auth   *application.AuthService
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	testSetup()

	repo := newMemUserRepo()
	auth := application.NewAuthService(
		repo,
		helpers.NewJWTManager("test-secret", 7*24*time.Hour),
		helpers.NewPasswordHasher(bcrypt.MinCost),
		nil,
	)
	h := NewAuthHandler(auth, helpers.NewLogger("test", "test"), "", false)
	admin := NewAdminHandler(repo, helpers.NewLogger("test", "test"))

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/session", middleware.OptionalAuth(auth.JWT, auth), h.Session)

	protected := r.Group("/")
	protected.Use(middleware.RequireAuth(auth.JWT, auth, nil))
	protected.GET("/auth/me", h.Me)

	adminGroup := r.Group("/")
	adminGroup.Use(middleware.RequireAuth(auth.JWT, auth, nil))
	adminGroup.Use(middleware.AdminOnly())
	adminGroup.GET("/admin/users", admin.ListUsers)

	return &authEnv{Router: r, Repo: repo, Auth: auth}
}
