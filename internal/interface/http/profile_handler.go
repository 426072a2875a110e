package http

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/desi-diet/internal/domain/profile"
	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

// GetProfile returns the stored profile with its completeness and BMI.
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	overview, err := h.profileSvc.Overview(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// UpdateProfile replaces the stored profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req profile.UserProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	overview, err := h.profileSvc.Update(c.Request.Context(), userID, req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ClassifyBMI computes a BMI assessment from query parameters.
func (h *Handler) ClassifyBMI(c *gin.Context) {
	height, err := parseMeasurement(c.Query("height"))
	if err != nil {
		abortWithDomainError(c, apperrors.Wrap(apperrors.CodeInvalidInput, "height must be a number", err))
		return
	}
	weight, err := parseMeasurement(c.Query("weight"))
	if err != nil {
		abortWithDomainError(c, apperrors.Wrap(apperrors.CodeInvalidInput, "weight must be a number", err))
		return
	}
	assessment, ok := profile.ClassifyBMI(height, weight)
	if !ok {
		abortWithDomainError(c, apperrors.Wrap(apperrors.CodeInvalidInput, "height and weight must be positive", nil))
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// parseMeasurement accepts finite decimal values only.
func parseMeasurement(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}
