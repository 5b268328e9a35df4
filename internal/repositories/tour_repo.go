package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wanderly/trailhead/internal/database"
	"github.com/wanderly/trailhead/internal/models"
)

type TourRepository struct {
	pool *pgxpool.Pool
}

func NewTourRepository(db *database.DB) *TourRepository {
	return &TourRepository{pool: db.Pool}
}

const tourColumns = `id, name, duration, max_group_size, difficulty, price, summary, description, created_at, updated_at`

func scanTourRow(scanner rowScanner) (*models.Tour, error) {
	var tour models.Tour

	err := scanner.Scan(
		&tour.ID, &tour.Name, &tour.Duration, &tour.MaxGroupSize,
		&tour.Difficulty, &tour.Price, &tour.Summary, &tour.Description,
		&tour.CreatedAt, &tour.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &tour, nil
}

func scanTourRows(rows pgx.Rows) ([]*models.Tour, error) {
	defer rows.Close()

	tours := make([]*models.Tour, 0)

	for rows.Next() {
		tour, err := scanTourRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tour: %w", err)
		}
		tours = append(tours, tour)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tours, nil
}

func (r *TourRepository) GetByID(ctx context.Context, id string) (*models.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`

	return scanTourRow(r.pool.QueryRow(ctx, query, id))
}

func (r *TourRepository) List(ctx context.Context, limit, offset int) ([]*models.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query tours: %w", err)
	}

	return scanTourRows(rows)
}

func (r *TourRepository) Create(ctx context.Context, tour *models.Tour) (*models.Tour, error) {
	tour.ID = uuid.New().String()

	now := time.Now()
	tour.CreatedAt = now
	tour.UpdatedAt = now

	query := `
		INSERT INTO tours (id, name, duration, max_group_size, difficulty, price, summary, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + tourColumns

	return scanTourRow(r.pool.QueryRow(ctx, query,
		tour.ID, tour.Name, tour.Duration, tour.MaxGroupSize, tour.Difficulty,
		tour.Price, tour.Summary, tour.Description, tour.CreatedAt, tour.UpdatedAt,
	))
}

func (r *TourRepository) Update(ctx context.Context, id string, tour *models.Tour) (*models.Tour, error) {
	query := `
		UPDATE tours
		SET name = $1, duration = $2, max_group_size = $3, difficulty = $4,
		    price = $5, summary = $6, description = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + tourColumns

	return scanTourRow(r.pool.QueryRow(ctx, query,
		tour.Name, tour.Duration, tour.MaxGroupSize, tour.Difficulty,
		tour.Price, tour.Summary, tour.Description, id,
	))
}

func (r *TourRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tours WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
