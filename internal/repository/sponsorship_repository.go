package repository

import (
	"context"
	"database/sql"

	"charity/internal/models"
)

type SponsorshipRepository interface {
	Create(ctx context.Context, sponsorship *models.Sponsorship) error
	Stats(ctx context.Context) (*models.SponsorshipStats, error)
}

type sponsorshipRepository struct {
	db *sql.DB
}

func NewSponsorshipRepository(db *sql.DB) SponsorshipRepository {
	return &sponsorshipRepository{db: db}
}

func (r *sponsorshipRepository) Create(ctx context.Context, sponsorship *models.Sponsorship) error {
	query := `
		INSERT INTO sponsorships (
			id, first_name, last_name, email, phone, monthly_amount,
			currency, payment_method, child_id, is_completed, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		sponsorship.ID,
		sponsorship.FirstName,
		sponsorship.LastName,
		sponsorship.Email,
		sponsorship.Phone,
		sponsorship.MonthlyAmount,
		sponsorship.Currency,
		sponsorship.PaymentMethod,
		sponsorship.ChildID,
		sponsorship.IsCompleted,
		sponsorship.CreatedAt,
	).Scan(&sponsorship.CreatedAt)
	return err
}

func (r *sponsorshipRepository) Stats(ctx context.Context) (*models.SponsorshipStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(monthly_amount), 0),
			COUNT(DISTINCT child_id) FILTER (WHERE child_id IS NOT NULL)
		FROM sponsorships
		WHERE is_completed = true
	`

	var stats models.SponsorshipStats
	if err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalSponsorships,
		&stats.TotalMonthlyAmount,
		&stats.SponsoredChildCount,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}
