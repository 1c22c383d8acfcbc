package repository

import (
	"context"
	"database/sql"

	"charity/internal/models"
)

type DonationTotals struct {
	Count       int
	TotalAmount float64
}

type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	ListByEmail(ctx context.Context, email string, limit int) ([]models.Donation, error)
	Totals(ctx context.Context) (*DonationTotals, error)
}

type donationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	query := `
		INSERT INTO donations (
			id, first_name, last_name, email, phone, amount, currency,
			type, category, payment_method, item_type, item_description,
			is_completed, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		donation.ID,
		donation.FirstName,
		donation.LastName,
		donation.Email,
		donation.Phone,
		donation.Amount,
		donation.Currency,
		donation.Type,
		donation.Category,
		donation.PaymentMethod,
		donation.ItemType,
		donation.ItemDescription,
		donation.IsCompleted,
		donation.CreatedAt,
	).Scan(&donation.CreatedAt)
	return err
}

func (r *donationRepository) ListByEmail(ctx context.Context, email string, limit int) ([]models.Donation, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, amount, currency,
			type, category, payment_method, item_type, item_description,
			is_completed, created_at
		FROM donations
		WHERE LOWER(email) = LOWER($1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, email, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(
			&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.Phone,
			&d.Amount, &d.Currency, &d.Type, &d.Category, &d.PaymentMethod,
			&d.ItemType, &d.ItemDescription, &d.IsCompleted, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}

	return donations, rows.Err()
}

func (r *donationRepository) Totals(ctx context.Context) (*DonationTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM donations
		WHERE is_completed = true
	`

	var totals DonationTotals
	if err := r.db.QueryRowContext(ctx, query).Scan(&totals.Count, &totals.TotalAmount); err != nil {
		return nil, err
	}
	return &totals, nil
}
