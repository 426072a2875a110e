package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/desi-diet/internal/domain/nutrition"
)

type addMealItemRequest struct {
	FoodID   string `json:"foodId" binding:"required"`
	Quantity *int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetMeals returns the meal plan and its totals.
func (h *Handler) GetMeals(c *gin.Context) {
	h.respondMeals(c, func(userID int64) (nutrition.View, error) {
		return h.mealSvc.Plan(c.Request.Context(), userID)
	})
}

// AddMealItem adds a food to a slot. Quantity defaults to one.
func (h *Handler) AddMealItem(c *gin.Context) {
	var req addMealItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	h.respondMeals(c, func(userID int64) (nutrition.View, error) {
		return h.mealSvc.AddToMeal(c.Request.Context(), userID, c.Param("slot"), req.FoodID, quantity)
	})
}

// UpdateMealItem replaces an entry's quantity; zero or less removes it.
func (h *Handler) UpdateMealItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	h.respondMeals(c, func(userID int64) (nutrition.View, error) {
		return h.mealSvc.UpdateQuantity(c.Request.Context(), userID, c.Param("slot"), c.Param("foodId"), *req.Quantity)
	})
}

// RemoveMealItem drops a food from a slot.
func (h *Handler) RemoveMealItem(c *gin.Context) {
	h.respondMeals(c, func(userID int64) (nutrition.View, error) {
		return h.mealSvc.RemoveFromMeal(c.Request.Context(), userID, c.Param("slot"), c.Param("foodId"))
	})
}

// ClearMeal empties one slot.
func (h *Handler) ClearMeal(c *gin.Context) {
	h.respondMeals(c, func(userID int64) (nutrition.View, error) {
		return h.mealSvc.ClearMeal(c.Request.Context(), userID, c.Param("slot"))
	})
}

// ClearAllMeals empties every slot.
func (h *Handler) ClearAllMeals(c *gin.Context) {
	h.respondMeals(c, func(userID int64) (nutrition.View, error) {
		return h.mealSvc.ClearAllMeals(c.Request.Context(), userID)
	})
}

func (h *Handler) respondMeals(c *gin.Context, fn func(userID int64) (nutrition.View, error)) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	view, err := fn(userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
