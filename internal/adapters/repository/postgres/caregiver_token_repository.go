package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vncsmyrnk/pulse/internal/core/domain"
)

type CaregiverTokenRepository struct {
	db *sql.DB
}

func NewCaregiverTokenRepository(db *sql.DB) *CaregiverTokenRepository {
	return &CaregiverTokenRepository{db: db}
}

func (r *CaregiverTokenRepository) Insert(ctx context.Context, token *domain.CaregiverToken) error {
	query := `
		INSERT INTO caregiver_tokens (token, user_id, created_at, expires_by)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, token.Token, token.UserID, token.CreatedAt, token.ExpiresBy)
	if err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			return domain.ErrTokenCollision
		case foreignKeyViolation:
			return domain.ErrUserNotFound
		}
		return storageErr("insert caregiver token", err)
	}
	return nil
}

func (r *CaregiverTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM caregiver_tokens WHERE expires_by < $1`, now)
	if err != nil {
		return 0, storageErr("delete expired caregiver tokens", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("count deleted caregiver tokens", err)
	}
	return n, nil
}

// Take deletes and returns the token in a single statement, so two concurrent
// redemptions cannot both succeed.
func (r *CaregiverTokenRepository) Take(ctx context.Context, token string, now time.Time) (*domain.CaregiverToken, error) {
	query := `
		DELETE FROM caregiver_tokens
		WHERE token = $1 AND expires_by >= $2
		RETURNING token, user_id, created_at, expires_by
	`
	t := &domain.CaregiverToken{}
	err := r.db.QueryRowContext(ctx, query, token, now).Scan(&t.Token, &t.UserID, &t.CreatedAt, &t.ExpiresBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, storageErr("take caregiver token", err)
	}
	return t, nil
}
