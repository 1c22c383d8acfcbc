package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"charity/internal/models"
)

type ChildRepository interface {
	GetByID(ctx context.Context, id string) (*models.Child, error)
	ListAvailable(ctx context.Context, limit int, region string) ([]models.Child, error)
	ListFeatured(ctx context.Context) ([]models.Child, error)
	MarkSponsored(ctx context.Context, id string) error
	UpdatePhotoURL(ctx context.Context, id string, photoURL string) error
}

type childRepository struct {
	db *sql.DB
}

func NewChildRepository(db *sql.DB) ChildRepository {
	return &childRepository{db: db}
}

const childColumns = `id, name, age, country, region, photo_url, story, needs, is_sponsored, featured, created_at`

func scanChild(row interface{ Scan(...any) error }) (*models.Child, error) {
	var c models.Child
	err := row.Scan(
		&c.ID, &c.Name, &c.Age, &c.Country, &c.Region, &c.PhotoURL,
		&c.Story, pq.Array(&c.Needs), &c.IsSponsored, &c.Featured, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *childRepository) GetByID(ctx context.Context, id string) (*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE id = $1`

	child, err := scanChild(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return child, nil
}

func (r *childRepository) ListAvailable(ctx context.Context, limit int, region string) ([]models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE is_sponsored = false`

	args := []any{}
	argPos := 1
	if region != "" {
		query += fmt.Sprintf(" AND region = $%d", argPos)
		args = append(args, region)
		argPos++
	}
	query += " ORDER BY created_at"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, limit)
	}

	return r.list(ctx, query, args...)
}

func (r *childRepository) ListFeatured(ctx context.Context) ([]models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE featured = true AND is_sponsored = false ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *childRepository) list(ctx context.Context, query string, args ...any) ([]models.Child, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, *c)
	}

	return children, rows.Err()
}

func (r *childRepository) MarkSponsored(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE children SET is_sponsored = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *childRepository) UpdatePhotoURL(ctx context.Context, id string, photoURL string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE children SET photo_url = $1 WHERE id = $2`, photoURL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
