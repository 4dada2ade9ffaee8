package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/jooddae/bojbot/internal/transport/http/handler"
	"github.com/jooddae/bojbot/internal/transport/http/middleware"
)

func NewRouter(logger *slog.Logger, registrationHandler *handler.RegistrationHandler, jwtKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	users := r.Group("/users", middleware.AdminAuth(jwtKey))
	users.GET("/:id", registrationHandler.GetByID)
	users.GET("/by-judge/:judgeID", registrationHandler.GetByJudgeID)

	return r
}
