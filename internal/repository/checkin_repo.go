package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"guardian-backend/internal/models"
)

type CheckinRepo struct {
	pool *pgxpool.Pool
}

func NewCheckinRepo(pool *pgxpool.Pool) *CheckinRepo {
	return &CheckinRepo{pool: pool}
}

// Create inserts a new active check-in. There is deliberately no
// uniqueness check against existing active sessions for the same user;
// starting twice produces two active rows.
func (r *CheckinRepo) Create(ctx context.Context, checkin *models.Checkin) error {
	query := `
		INSERT INTO checkins (id, user_id, expires_at, active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING created_at`

	checkin.ID = uuid.New()
	checkin.Active = true

	return r.pool.QueryRow(ctx, query,
		checkin.ID, checkin.UserID, checkin.ExpiresAt,
	).Scan(&checkin.CreatedAt)
}

// Deactivate flips one of the user's active check-ins to inactive in a
// single conditional UPDATE, so a concurrent cancel/trigger pair cannot
// both observe the session as active. When several sessions are active,
// both Deactivate and DeactivateExpired resolve the oldest first, so
// repeated calls drain them in start order. Returns pgx.ErrNoRows when
// the user has no active check-in.
func (r *CheckinRepo) Deactivate(ctx context.Context, userID string) (*models.Checkin, error) {
	checkin := &models.Checkin{}
	err := r.pool.QueryRow(ctx, `
		UPDATE checkins
		SET active = FALSE
		WHERE active = TRUE
		  AND id = (
			SELECT id FROM checkins
			WHERE user_id = $1 AND active = TRUE
			ORDER BY created_at ASC
			LIMIT 1
		  )
		RETURNING id, user_id, expires_at, active, created_at
	`, userID).Scan(
		&checkin.ID, &checkin.UserID, &checkin.ExpiresAt, &checkin.Active, &checkin.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return checkin, nil
}

// DeactivateExpired is the escalation variant: it only matches a check-in
// whose deadline has passed server-side, so a client cannot force an
// escalation early or after a cancel has landed. Returns pgx.ErrNoRows
// when no active, expired check-in exists.
func (r *CheckinRepo) DeactivateExpired(ctx context.Context, userID string) (*models.Checkin, error) {
	checkin := &models.Checkin{}
	err := r.pool.QueryRow(ctx, `
		UPDATE checkins
		SET active = FALSE
		WHERE active = TRUE
		  AND id = (
			SELECT id FROM checkins
			WHERE user_id = $1 AND active = TRUE AND expires_at <= NOW()
			ORDER BY created_at ASC
			LIMIT 1
		  )
		RETURNING id, user_id, expires_at, active, created_at
	`, userID).Scan(
		&checkin.ID, &checkin.UserID, &checkin.ExpiresAt, &checkin.Active, &checkin.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return checkin, nil
}
