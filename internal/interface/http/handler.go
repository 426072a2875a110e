package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/desi-diet/internal/domain/auth"
	"github.com/yanqian/desi-diet/internal/domain/catalog"
	"github.com/yanqian/desi-diet/internal/domain/nutrition"
	"github.com/yanqian/desi-diet/internal/domain/profile"
	"github.com/yanqian/desi-diet/internal/domain/recommend"
	"github.com/yanqian/desi-diet/internal/domain/subscription"
	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc         auth.Service
	foods           *catalog.Catalog
	mealSvc         nutrition.Service
	profileSvc      profile.Service
	recommendSvc    recommend.Service
	subscriptionSvc subscription.Service
	logger          *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	authSvc auth.Service,
	foods *catalog.Catalog,
	mealSvc nutrition.Service,
	profileSvc profile.Service,
	recommendSvc recommend.Service,
	subscriptionSvc subscription.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authSvc:         authSvc,
		foods:           foods,
		mealSvc:         mealSvc,
		profileSvc:      profileSvc,
		recommendSvc:    recommendSvc,
		subscriptionSvc: subscriptionSvc,
		logger:          logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// userID resolves the authenticated user or aborts the request.
func (h *Handler) userID(c *gin.Context) (int64, bool) {
	id, ok := currentUserID(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, apperrors.CodeUnauthorized, "missing user", nil))
		return 0, false
	}
	return id, true
}
