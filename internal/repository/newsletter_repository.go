package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"charity/internal/models"
)

type NewsletterRepository interface {
	Upsert(ctx context.Context, sub *models.NewsletterSubscriber) error
	Unsubscribe(ctx context.Context, email string) error
	CountActive(ctx context.Context) (int, error)
}

type newsletterRepository struct {
	db *sql.DB
}

func NewNewsletterRepository(db *sql.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

// Upsert keeps subscribe idempotent: re-subscribing an existing email
// reactivates it and refreshes the optional fields.
func (r *newsletterRepository) Upsert(ctx context.Context, sub *models.NewsletterSubscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email, first_name, last_name, preferences, subscribed, created_at)
		VALUES ($1, LOWER($2), $3, $4, $5, true, $6)
		ON CONFLICT (email) DO UPDATE
		SET first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			preferences = EXCLUDED.preferences,
			subscribed = true
		RETURNING id, created_at
	`

	preferences := sub.Preferences
	if preferences == nil {
		preferences = []string{}
	}

	err := r.db.QueryRowContext(
		ctx, query,
		sub.ID, sub.Email, sub.FirstName, sub.LastName, pq.Array(preferences), sub.CreatedAt,
	).Scan(&sub.ID, &sub.CreatedAt)
	return err
}

func (r *newsletterRepository) Unsubscribe(ctx context.Context, email string) error {
	query := `UPDATE newsletter_subscribers SET subscribed = false WHERE LOWER(email) = LOWER($1)`
	res, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("subscriber not found")
	}
	return nil
}

func (r *newsletterRepository) CountActive(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM newsletter_subscribers WHERE subscribed = true`
	var total int
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
