package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"guardian-backend/internal/models"
)

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

func (r *ContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, name, phone, email, relationship, is_emergency_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	contact.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		contact.ID, contact.UserID, contact.Name, contact.Phone,
		contact.Email, contact.Relationship, contact.IsEmergencyContact,
	).Scan(&contact.CreatedAt)
}

func (r *ContactRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, phone, email, relationship, is_emergency_contact, created_at
		FROM contacts
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// ListEmergency returns the contacts that should receive SOS alerts.
func (r *ContactRepo) ListEmergency(ctx context.Context, userID uuid.UUID) ([]models.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, phone, email, relationship, is_emergency_contact, created_at
		FROM contacts
		WHERE user_id = $1
		  AND is_emergency_contact = TRUE
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

func (r *ContactRepo) Update(ctx context.Context, contact *models.Contact) error {
	return r.pool.QueryRow(ctx, `
		UPDATE contacts
		SET name = $1, phone = $2, email = $3, relationship = $4, is_emergency_contact = $5
		WHERE id = $6
		  AND user_id = $7
		RETURNING created_at
	`, contact.Name, contact.Phone, contact.Email, contact.Relationship,
		contact.IsEmergencyContact, contact.ID, contact.UserID,
	).Scan(&contact.CreatedAt)
}

func (r *ContactRepo) Delete(ctx context.Context, contactID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM contacts WHERE id = $1 AND user_id = $2", contactID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanContacts(rows pgx.Rows) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email,
			&c.Relationship, &c.IsEmergencyContact, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
