package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venueseating/internal/domain"
)

type chartRepository struct {
	DB *sql.DB
}

// NewChartRepository returns a domain.ChartRepository implemented with Postgres.
// The full chart is stored as one versioned JSON blob; event id, canvas
// dimensions, and version are denormalized for listing without decoding.
func NewChartRepository(db *sql.DB) domain.ChartRepository {
	return &chartRepository{DB: db}
}

func (r *chartRepository) Create(ctx context.Context, chart *domain.SeatingChart) error {
	blob, err := domain.MarshalChart(chart)
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}
	query := `
		INSERT INTO seating_charts (id, event_id, canvas_width, canvas_height, version, layout, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.DB.ExecContext(ctx, query,
		chart.ID, chart.EventID, chart.CanvasWidth, chart.CanvasHeight, chart.Version, blob, chart.UpdatedAt)
	return err
}

func (r *chartRepository) GetByID(ctx context.Context, id string) (*domain.SeatingChart, error) {
	var blob []byte
	err := r.DB.QueryRowContext(ctx, `SELECT layout FROM seating_charts WHERE id = $1`, id).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return domain.UnmarshalChart(blob)
}

func (r *chartRepository) GetByEventID(ctx context.Context, eventID string) (*domain.SeatingChart, error) {
	var blob []byte
	err := r.DB.QueryRowContext(ctx, `SELECT layout FROM seating_charts WHERE event_id = $1`, eventID).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return domain.UnmarshalChart(blob)
}

func (r *chartRepository) Save(ctx context.Context, chart *domain.SeatingChart) error {
	blob, err := domain.MarshalChart(chart)
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}
	query := `
		UPDATE seating_charts
		SET canvas_width = $2, canvas_height = $3, version = $4, layout = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		chart.ID, chart.CanvasWidth, chart.CanvasHeight, chart.Version, blob, chart.UpdatedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
