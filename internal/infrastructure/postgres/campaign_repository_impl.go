package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/internal/domain/repository"
)

type CampaignRepository struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (user_id, name, city, radius_km, budget_kr, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.Name, c.City, c.RadiusKm, c.BudgetKr, c.StartDate, c.EndDate)

	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepository) ListByUser(ctx context.Context, userID string) ([]entity.Campaign, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.user_id, c.name, c.city, c.radius_km, c.budget_kr,
		       c.start_date, c.end_date, c.created_at, c.updated_at,
		       COUNT(a.id) AS ad_count
		FROM campaigns c
		LEFT JOIN ads a ON a.campaign_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []entity.Campaign{}
	for rows.Next() {
		var c entity.Campaign
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.City, &c.RadiusKm, &c.BudgetKr,
			&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt, &c.AdCount); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) GetDetail(ctx context.Context, id, userID string, metricsLimit int) (*entity.CampaignDetail, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	d := &entity.CampaignDetail{Ads: []entity.Ad{}, Metrics: []entity.Metric{}}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, city, radius_km, budget_kr,
		       start_date, end_date, created_at, updated_at
		FROM campaigns
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.City, &d.RadiusKm, &d.BudgetKr,
		&d.StartDate, &d.EndDate, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	adRows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, title, image_url, created_at
		FROM ads
		WHERE campaign_id = $1
		ORDER BY created_at
	`, id)
	if err != nil {
		return nil, err
	}
	defer adRows.Close()
	for adRows.Next() {
		var a entity.Ad
		if err := adRows.Scan(&a.ID, &a.CampaignID, &a.Title, &a.ImageURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		d.Ads = append(d.Ads, a)
	}
	if err := adRows.Err(); err != nil {
		return nil, err
	}

	mRows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, date, impressions, clicks, spend_kr
		FROM metrics
		WHERE campaign_id = $1
		ORDER BY date DESC
		LIMIT $2
	`, id, metricsLimit)
	if err != nil {
		return nil, err
	}
	defer mRows.Close()
	for mRows.Next() {
		var m entity.Metric
		if err := mRows.Scan(&m.ID, &m.CampaignID, &m.Date, &m.Impressions, &m.Clicks, &m.SpendKr); err != nil {
			return nil, err
		}
		d.Metrics = append(d.Metrics, m)
	}
	return d, mRows.Err()
}

var _ repository.CampaignRepository = (*CampaignRepository)(nil)
