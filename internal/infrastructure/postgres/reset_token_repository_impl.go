package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/repository"
)

type ResetTokenRepository struct {
	pool *pgxpool.Pool
}

func NewResetTokenRepository(pool *pgxpool.Pool) *ResetTokenRepository {
	return &ResetTokenRepository{pool: pool}
}

func (r *ResetTokenRepository) Insert(ctx context.Context, t *entity.ResetToken) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO password_reset_tokens (user_id, token, expires_at, used)
		VALUES ($1, $2, $3, FALSE)
		RETURNING created_at
	`, t.UserID, t.Token, t.ExpiresAt)
	if err := row.Scan(&t.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert reset token: %w", repository.ErrConflict)
		}
		return fmt.Errorf("insert reset token: %w", err)
	}
	t.Used = false
	return nil
}

// Consume flips used in a single conditional UPDATE, so two concurrent
// redemptions of the same token cannot both succeed.
func (r *ResetTokenRepository) Consume(ctx context.Context, token string, now time.Time) (string, error) {
	var userID string
	err := r.pool.QueryRow(ctx, `
		UPDATE password_reset_tokens SET used = TRUE
		WHERE token = $1 AND used = FALSE AND expires_at > $2
		RETURNING user_id
	`, token, now).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}

func (r *ResetTokenRepository) ConsumeAndSetPassword(ctx context.Context, token string, now time.Time, passwordHash string) (userID string, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		UPDATE password_reset_tokens SET used = TRUE
		WHERE token = $1 AND used = FALSE AND expires_at > $2
		RETURNING user_id
	`, token, now).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = repository.ErrNotFound
			return "", err
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}

	res, err := tx.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3
	`, passwordHash, time.Now(), userID)
	if err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}
	if res.RowsAffected() == 0 {
		err = repository.ErrNotFound
		return "", err
	}

	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return userID, nil
}

var _ repository.ResetTokenRepository = (*ResetTokenRepository)(nil)
