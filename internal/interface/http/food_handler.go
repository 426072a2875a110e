package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

// ListFoods returns the catalog, optionally narrowed by category and name.
func (h *Handler) ListFoods(c *gin.Context) {
	foods, err := h.foods.Filter(c.Query("category"), c.Query("q"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

// GetFood returns a single catalog entry.
func (h *Handler) GetFood(c *gin.Context) {
	item, ok := h.foods.Get(c.Param("id"))
	if !ok {
		abortWithDomainError(c, apperrors.Wrap(apperrors.CodeNotFound, "food not found", nil))
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListCategories describes the catalog categories in display order.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.foods.CategoryInfos()})
}
