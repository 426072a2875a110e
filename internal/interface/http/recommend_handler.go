package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/desi-diet/internal/domain/metabolism"
	"github.com/yanqian/desi-diet/internal/domain/recommend"
)

// HealthRecommendations returns the rule-based health report.
func (h *Handler) HealthRecommendations(c *gin.Context) {
	var req recommend.HealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	result, err := h.recommendSvc.HealthRecommendations(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateWorkout builds a workout from the requested goal and level.
func (h *Handler) GenerateWorkout(c *gin.Context) {
	var req recommend.WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	workout, err := h.recommendSvc.GenerateWorkout(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// PersonalizedRecipes suggests recipes for the stored profile goal.
func (h *Handler) PersonalizedRecipes(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	p, found, err := h.profileSvc.Get(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	goal := metabolism.GoalMaintain
	if found && p.Goal != "" {
		goal = p.Goal
	}
	c.JSON(http.StatusOK, gin.H{
		"goal":    goal,
		"recipes": h.recommendSvc.Recipes(c.Request.Context(), goal),
	})
}
