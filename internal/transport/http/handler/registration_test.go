package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jooddae/bojbot/internal/domain"
	"github.com/jooddae/bojbot/internal/transport/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRegistrations struct {
	getByID      func(ctx context.Context, id string) (*domain.User, error)
	getByJudgeID func(ctx context.Context, judgeID string) (*domain.User, error)
}

func (f *fakeRegistrations) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return f.getByID(ctx, id)
}

func (f *fakeRegistrations) GetByJudgeID(ctx context.Context, judgeID string) (*domain.User, error) {
	return f.getByJudgeID(ctx, judgeID)
}

func newEngine(fake *fakeRegistrations) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewRegistrationHandler(fake, logger)

	r := gin.New()
	r.GET("/users/:id", h.GetByID)
	r.GET("/users/by-judge/:judgeID", h.GetByJudgeID)
	return r
}

func TestGetByID_Found(t *testing.T) {
	fake := &fakeRegistrations{
		getByID: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, JudgeID: "alice"}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/U1", nil)
	newEngine(fake).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		ID      string `json:"id"`
		JudgeID string `json:"judge_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ID != "U1" || body.JudgeID != "alice" {
		t.Errorf("body = %+v, want U1/alice", body)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	fake := &fakeRegistrations{
		getByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/U1", nil)
	newEngine(fake).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetByJudgeID_RepoError_Returns500(t *testing.T) {
	fake := &fakeRegistrations{
		getByJudgeID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, errors.New("db down")
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/by-judge/alice", nil)
	newEngine(fake).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
