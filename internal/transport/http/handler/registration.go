package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jooddae/bojbot/internal/domain"
)

// registrationUsecaser is the subset of RegistrationUsecase the handler
// needs. Defined here (point of use) so tests can inject a fake.
type registrationUsecaser interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByJudgeID(ctx context.Context, judgeID string) (*domain.User, error)
}

type RegistrationHandler struct {
	registrations registrationUsecaser
	logger        *slog.Logger
}

func NewRegistrationHandler(registrations registrationUsecaser, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		logger:        logger.With("component", "registration_handler"),
	}
}

type registrationResponse struct {
	ID        string    `json:"id"`
	JudgeID   string    `json:"judge_id"`
	CreatedAt time.Time `json:"created_at"`
}

// GET /users/:id
func (h *RegistrationHandler) GetByID(c *gin.Context) {
	user, err := h.registrations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(user))
}

// GET /users/by-judge/:judgeID
func (h *RegistrationHandler) GetByJudgeID(c *gin.Context) {
	user, err := h.registrations.GetByJudgeID(c.Request.Context(), c.Param("judgeID"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(user))
}

func (h *RegistrationHandler) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errRegistrationMissing})
		return
	}
	h.logger.Error("look up registration", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}

func toResponse(u *domain.User) registrationResponse {
	return registrationResponse{
		ID:        u.ID,
		JudgeID:   u.JudgeID,
		CreatedAt: u.CreatedAt,
	}
}
