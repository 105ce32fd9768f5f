package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/annonsera/backend/config"
	"github.com/annonsera/backend/internal/infrastructure/objectstore"
	"github.com/annonsera/backend/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire from these singletons, which main sets once at
// startup.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	store       objectstore.Store
	jwtManager  *helpers.JWTManager
	hasher      *helpers.PasswordHasher
)

func SetConfig(c *config.Config)          { cfg = c }
func GetConfig() *config.Config           { return cfg }
func SetLogger(l *logrus.Logger)          { logger = l }
func GetLogger() *logrus.Logger           { return logger }
func SetPGPool(p *pgxpool.Pool)           { pgPool = p }
func GetPGPool() *pgxpool.Pool            { return pgPool }
func SetRedis(r *redis.Client)            { redisClient = r }
func GetRedis() *redis.Client             { return redisClient }
func SetStore(s objectstore.Store)        { store = s }
func GetStore() objectstore.Store         { return store }
func SetJWT(m *helpers.JWTManager)        { jwtManager = m }
func GetJWT() *helpers.JWTManager         { return jwtManager }
func SetHasher(h *helpers.PasswordHasher) { hasher = h }
func GetHasher() *helpers.PasswordHasher  { return hasher }
