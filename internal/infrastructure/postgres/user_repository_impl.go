package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/repository"
)

const pgUniqueViolation = "23505"

const userColumns = `id, telegram_id, full_name, phone, email, business_name, business_address,
	governorate, annual_revenue, business_type, password_hash, status, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts u. If u.ChatID is set, any stale binding of that chat to
// another account is cleared in the same transaction.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if u.ChatID != nil {
		if _, err = tx.Exec(ctx, `
			UPDATE users SET telegram_id = NULL, updated_at = now()
			WHERE telegram_id = $1
		`, *u.ChatID); err != nil {
			return fmt.Errorf("unbind stale chat: %w", err)
		}
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO users (telegram_id, full_name, phone, email, business_name, business_address,
		                   governorate, annual_revenue, business_type, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, status, created_at, updated_at
	`, u.ChatID, u.FullName, u.Phone, u.Email, u.BusinessName, u.BusinessAddress,
		u.Governorate, string(u.AnnualRevenue), string(u.BusinessType), u.PasswordHash)

	var status string
	if err = row.Scan(&u.ID, &status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user: %w", repository.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.Status = entity.UserStatus(status)

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}

func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, chatID)
}

func (r *UserRepository) SetChatID(ctx context.Context, phone string, chatID *int64) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	now := time.Now()
	if chatID != nil {
		// a chat can only be bound to one account at a time
		if _, err = tx.Exec(ctx, `
			UPDATE users SET telegram_id = NULL, updated_at = $1
			WHERE telegram_id = $2 AND phone <> $3
		`, now, *chatID, phone); err != nil {
			return fmt.Errorf("unbind stale chat: %w", err)
		}
	}

	res, err := tx.Exec(ctx, `
		UPDATE users SET telegram_id = $1, updated_at = $2
		WHERE phone = $3
	`, chatID, now, phone)
	if err != nil {
		return fmt.Errorf("bind chat: %w", err)
	}
	if res.RowsAffected() == 0 {
		err = repository.ErrNotFound
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var revenue, businessType, status string
	if err := row.Scan(&u.ID, &u.ChatID, &u.FullName, &u.Phone, &u.Email, &u.BusinessName,
		&u.BusinessAddress, &u.Governorate, &revenue, &businessType, &u.PasswordHash, &status,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.AnnualRevenue = entity.AnnualRevenue(revenue)
	u.BusinessType = entity.BusinessType(businessType)
	u.Status = entity.UserStatus(status)
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

var _ repository.UserRepository = (*UserRepository)(nil)
