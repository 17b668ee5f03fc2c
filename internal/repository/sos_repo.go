package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"guardian-backend/internal/models"
)

type SOSRepo struct {
	pool *pgxpool.Pool
}

func NewSOSRepo(pool *pgxpool.Pool) *SOSRepo {
	return &SOSRepo{pool: pool}
}

func (r *SOSRepo) Create(ctx context.Context, event *models.SOSEvent) error {
	query := `
		INSERT INTO sos_events (id, user_id, lat, lng, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	event.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		event.ID, event.UserID, event.Location.Lat, event.Location.Lng, event.Status,
	).Scan(&event.CreatedAt)
}

func (r *SOSRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SOSEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, lat, lng, status, created_at
		FROM sos_events
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.SOSEvent, 0)
	for rows.Next() {
		var e models.SOSEvent
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Location.Lat, &e.Location.Lng, &e.Status, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
