package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/desi-diet/internal/domain/subscription"
	"github.com/yanqian/desi-diet/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(logger.With("component", "http.access")),
		errorHandlingMiddleware(logger.With("component", "http.error")),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, logger))
	{
		api.GET("/healthz", handler.Health)

		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)
		api.POST("/auth/refresh", handler.Refresh)

		api.GET("/foods", handler.ListFoods)
		api.GET("/foods/:id", handler.GetFood)
		api.GET("/categories", handler.ListCategories)
		api.GET("/bmi", handler.ClassifyBMI)
		api.GET("/subscriptions/plans", handler.ListPlans)

		secured := api.Group("")
		secured.Use(authMiddleware(handler.authSvc))
		{
			secured.GET("/auth/me", handler.Me)

			secured.GET("/meals", handler.GetMeals)
			secured.DELETE("/meals", handler.ClearAllMeals)
			secured.DELETE("/meals/:slot", handler.ClearMeal)
			secured.POST("/meals/:slot/items", handler.AddMealItem)
			secured.PUT("/meals/:slot/items/:foodId", handler.UpdateMealItem)
			secured.DELETE("/meals/:slot/items/:foodId", handler.RemoveMealItem)

			secured.GET("/profile", handler.GetProfile)
			secured.PUT("/profile", handler.UpdateProfile)

			secured.POST("/ai/health-recommendations", handler.HealthRecommendations)
			secured.POST("/ai/workouts", handler.GenerateWorkout)
			secured.GET("/recipes/personalized",
				requireTier(handler.subscriptionSvc, subscription.TierPremium),
				handler.PersonalizedRecipes,
			)

			secured.GET("/subscriptions/me", handler.SubscriptionStatus)
			secured.POST("/subscriptions", handler.Subscribe)
			secured.DELETE("/subscriptions/me", handler.CancelSubscription)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withCORS(cfg.HTTP.CORS, router),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
