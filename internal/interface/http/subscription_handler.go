package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/desi-diet/internal/domain/subscription"
)

// ListPlans returns the plan catalog.
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.subscriptionSvc.Plans(c.Request.Context())})
}

// SubscriptionStatus reports the caller's current tier.
func (h *Handler) SubscriptionStatus(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	status, err := h.subscriptionSvc.Status(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Subscribe runs the checkout for a plan.
func (h *Handler) Subscribe(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req subscription.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	status, err := h.subscriptionSvc.Subscribe(c.Request.Context(), userID, req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// CancelSubscription cancels the caller's subscription.
func (h *Handler) CancelSubscription(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	status, err := h.subscriptionSvc.Cancel(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
