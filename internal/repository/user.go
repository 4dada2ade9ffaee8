package repository

import (
	"context"

	"github.com/jooddae/bojbot/internal/domain"
)

// UserRepository is the persistent registry of confirmed registrations.
// Lookups return domain.ErrUserNotFound when no mapping exists.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByJudgeID(ctx context.Context, judgeID string) (*domain.User, error)

	// Create inserts a new mapping. Returns domain.ErrDuplicateUser when
	// either the platform id or the judge id is already mapped.
	Create(ctx context.Context, id, judgeID string) error
}
