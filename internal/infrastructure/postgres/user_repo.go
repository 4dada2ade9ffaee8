package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jooddae/bojbot/internal/domain"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, judge_id, created_at, updated_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByJudgeID(ctx context.Context, judgeID string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, judge_id, created_at, updated_at FROM users WHERE judge_id = $1`, judgeID)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, id, judgeID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, judge_id) VALUES ($1, $2)`, id, judgeID)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 unique_violation: the precondition check raced another run.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.JudgeID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
