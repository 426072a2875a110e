package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/desi-diet/internal/domain/auth"
	"github.com/yanqian/desi-diet/internal/domain/subscription"
	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

func authMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, apperrors.CodeUnauthorized, "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, apperrors.CodeUnauthorized, "invalid authorization header", nil))
			return
		}
		token := strings.TrimSpace(parts[1])
		claims, err := svc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			status := http.StatusForbidden
			code := apperrors.CodeInvalidToken
			if !apperrors.IsCode(err, apperrors.CodeInvalidToken) {
				status = http.StatusInternalServerError
				code = "auth_failed"
			}
			abortWithError(c, NewHTTPError(status, code, apperrors.MessageOf(err), err))
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// requireTier rejects users whose active subscription does not include tier.
func requireTier(svc subscription.Service, tier subscription.Tier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, apperrors.CodeUnauthorized, "missing user", nil))
			return
		}
		allowed, err := svc.HasTier(c.Request.Context(), userID, tier)
		if err != nil {
			abortWithDomainError(c, err)
			return
		}
		if !allowed {
			abortWithError(c, NewHTTPError(http.StatusForbidden, apperrors.CodeSubscriptionRequired, string(tier)+" subscription required", nil))
			return
		}
		c.Next()
	}
}
