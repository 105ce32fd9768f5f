package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/internal/domain/repository"
)

type AssetRepository struct {
	pool *pgxpool.Pool
}

func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

func (r *AssetRepository) Create(ctx context.Context, a *entity.Asset) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO assets (key, mime, size)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, a.Key, a.Mime, a.Size)

	return row.Scan(&a.ID, &a.CreatedAt)
}

func (r *AssetRepository) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	a := &entity.Asset{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, key, mime, size, created_at
		FROM assets
		WHERE id = $1
	`, id)
	if err := row.Scan(&a.ID, &a.Key, &a.Mime, &a.Size, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AssetRepository) List(ctx context.Context) ([]entity.Asset, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, key, mime, size, created_at
		FROM assets
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []entity.Asset{}
	for rows.Next() {
		var a entity.Asset
		if err := rows.Scan(&a.ID, &a.Key, &a.Mime, &a.Size, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AssetRepository = (*AssetRepository)(nil)
