package usecase

import (
	"context"

	"github.com/jooddae/bojbot/internal/domain"
	"github.com/jooddae/bojbot/internal/repository"
)

// RegistrationUsecase serves the admin API's read side of the registry.
type RegistrationUsecase struct {
	users repository.UserRepository
}

func NewRegistrationUsecase(users repository.UserRepository) *RegistrationUsecase {
	return &RegistrationUsecase{users: users}
}

func (u *RegistrationUsecase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return u.users.FindByID(ctx, id)
}

func (u *RegistrationUsecase) GetByJudgeID(ctx context.Context, judgeID string) (*domain.User, error) {
	return u.users.FindByJudgeID(ctx, judgeID)
}
