package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/desi-diet/internal/domain/auth"
	"github.com/yanqian/desi-diet/internal/domain/catalog"
	"github.com/yanqian/desi-diet/internal/domain/nutrition"
	"github.com/yanqian/desi-diet/internal/domain/profile"
	"github.com/yanqian/desi-diet/internal/domain/recommend"
	"github.com/yanqian/desi-diet/internal/domain/subscription"
	"github.com/yanqian/desi-diet/internal/infra/config"
	"github.com/yanqian/desi-diet/internal/infra/statestore"
	"github.com/yanqian/desi-diet/internal/infra/subscriptionrepo"
	"github.com/yanqian/desi-diet/internal/infra/userrepo"
	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

func TestRouter_Health(t *testing.T) {
	server := newRouterUnderTest(t, nil)
	rec := performRequest(server, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
}

func TestRouter_FoodCatalog(t *testing.T) {
	server := newRouterUnderTest(t, nil)

	rec := performRequest(server, http.MethodGet, "/api/v1/foods?category=lentils", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Foods []catalog.FoodItem `json:"foods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Foods, 3)

	rec = performRequest(server, http.MethodGet, "/api/v1/foods?category=dessert", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, apperrors.CodeInvalidInput, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = performRequest(server, http.MethodGet, "/api/v1/foods/carb-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(server, http.MethodGet, "/api/v1/foods/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = performRequest(server, http.MethodGet, "/api/v1/categories", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats struct {
		Categories []catalog.CategoryInfo `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	require.Len(t, cats.Categories, len(catalog.Categories))
}

func TestRouter_BMI(t *testing.T) {
	server := newRouterUnderTest(t, nil)

	rec := performRequest(server, http.MethodGet, "/api/v1/bmi?height=170&weight=70", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got profile.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, profile.CategoryNormal, got.Category)
	require.InDelta(t, 24.2, got.BMI, 0.001)

	rec = performRequest(server, http.MethodGet, "/api/v1/bmi?height=0&weight=70", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = performRequest(server, http.MethodGet, "/api/v1/bmi?height=abc&weight=70", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	for _, query := range []string{"height=170&weight=NaN", "height=Inf&weight=70", "height=170&weight=-Inf"} {
		rec = performRequest(server, http.MethodGet, "/api/v1/bmi?"+query, "", "")
		require.Equal(t, http.StatusBadRequest, rec.Code, query)
		require.Equal(t, apperrors.CodeInvalidInput, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
	}
}

func TestRouter_RequiresBearerToken(t *testing.T) {
	server := newRouterUnderTest(t, nil)

	rec := performRequest(server, http.MethodGet, "/api/v1/meals", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, apperrors.CodeUnauthorized, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = performRequest(server, http.MethodGet, "/api/v1/meals", "", "garbage")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, apperrors.CodeInvalidToken, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_AuthFlow(t *testing.T) {
	server := newRouterUnderTest(t, nil)

	rec := performRequest(server, http.MethodPost, "/api/v1/auth/register",
		`{"email":"asha@example.com","password":"secret123","confirmPassword":"secret124","name":"Asha"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "passwords do not match", decodeErrorBody(t, rec.Body.Bytes())["error"]["message"])

	token := registerAndLogin(t, server, "asha@example.com")

	rec = performRequest(server, http.MethodPost, "/api/v1/auth/register",
		`{"email":"asha@example.com","password":"secret123","confirmPassword":"secret123","name":"Asha"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = performRequest(server, http.MethodPost, "/api/v1/auth/login", `{"email":"asha@example.com","password":"wrongpass"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = performRequest(server, http.MethodGet, "/api/v1/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var me auth.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "Asha", me.Name)
	require.False(t, me.IsSubscribed)
}

func TestRouter_MealsAndProfile(t *testing.T) {
	server := newRouterUnderTest(t, nil)
	token := registerAndLogin(t, server, "ravi@example.com")

	rec := performRequest(server, http.MethodGet, "/api/v1/meals", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	require.Equal(t, 0, view.Totals.TotalCalories)
	require.Equal(t, nutrition.DefaultTarget, view.Totals.Target)

	rec = performRequest(server, http.MethodPost, "/api/v1/meals/breakfast/items", `{"foodId":"carb-1","quantity":2}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeView(t, rec)
	require.Equal(t, 240, view.Totals.TotalCalories)
	require.Len(t, view.Meals.Breakfast, 1)

	rec = performRequest(server, http.MethodPost, "/api/v1/meals/breakfast/items", `{"foodId":"carb-1"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3, decodeView(t, rec).Meals.Breakfast[0].Quantity)

	rec = performRequest(server, http.MethodPost, "/api/v1/meals/brunch/items", `{"foodId":"carb-1"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(server, http.MethodPost, "/api/v1/meals/lunch/items", `{"foodId":"missing"}`, token)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = performRequest(server, http.MethodPost, "/api/v1/meals/lunch/items", `{"foodId":42}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = performRequest(server, http.MethodPut, "/api/v1/profile",
		`{"name":"Ravi","age":30,"weight":70,"height":170,"gender":"male","goal":"maintain","calorieTarget":9999}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var overview profile.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	require.True(t, overview.Complete)
	require.Equal(t, 1680, overview.Profile.CalorieTarget)

	rec = performRequest(server, http.MethodPut, "/api/v1/meals/breakfast/items/carb-1", `{"quantity":1}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeView(t, rec)
	require.Equal(t, 120, view.Totals.TotalCalories)
	require.Equal(t, 1680, view.Totals.Target)
	require.Equal(t, 1560, view.Totals.Remaining)

	rec = performRequest(server, http.MethodPut, "/api/v1/meals/breakfast/items/carb-1", `{"quantity":0}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeView(t, rec).Meals.Breakfast)

	rec = performRequest(server, http.MethodPost, "/api/v1/meals/dinner/items", `{"foodId":"meat-1"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = performRequest(server, http.MethodDelete, "/api/v1/meals/dinner", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeView(t, rec).Meals.Dinner)

	rec = performRequest(server, http.MethodDelete, "/api/v1/meals", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(server, http.MethodPut, "/api/v1/profile", `{"name":"Ravi","age":0,"weight":70,"height":170,"gender":"male","goal":"maintain"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ConflictMapsTo409(t *testing.T) {
	server := newRouterUnderTest(t, &stubMeals{err: apperrors.Wrap(apperrors.CodeConflict, "meal plan was changed elsewhere, please retry", nil)})
	token := registerAndLogin(t, server, "conflict@example.com")

	rec := performRequest(server, http.MethodPost, "/api/v1/meals/lunch/items", `{"foodId":"carb-1"}`, token)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, apperrors.CodeConflict, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_StorageErrorHidesCause(t *testing.T) {
	server := newRouterUnderTest(t, &stubMeals{err: apperrors.Wrap(apperrors.CodeStorage, "failed to load meal plan", io.ErrUnexpectedEOF)})
	token := registerAndLogin(t, server, "storage@example.com")

	rec := performRequest(server, http.MethodGet, "/api/v1/meals", "", token)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "something went wrong", decodeErrorBody(t, rec.Body.Bytes())["error"]["message"])
}

func TestRouter_Recommendations(t *testing.T) {
	server := newRouterUnderTest(t, nil)
	token := registerAndLogin(t, server, "fit@example.com")

	rec := performRequest(server, http.MethodPost, "/api/v1/ai/health-recommendations",
		`{"height":170,"weight":70,"age":30,"goal":"maintain","gender":"male"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var result recommend.HealthResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, 2591, result.CalorieTarget)

	rec = performRequest(server, http.MethodPost, "/api/v1/ai/health-recommendations", `{"height":0,"weight":70}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(server, http.MethodPost, "/api/v1/ai/workouts", `{"goal":"lose","fitnessLevel":"beginner","duration":20,"focus":"cardio"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var workout recommend.Workout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &workout))
	require.Equal(t, "20 minutes", workout.Duration)

	rec = performRequest(server, http.MethodPost, "/api/v1/ai/workouts", `{"duration":-5}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SubscriptionGate(t *testing.T) {
	server := newRouterUnderTest(t, nil)
	token := registerAndLogin(t, server, "pay@example.com")

	rec := performRequest(server, http.MethodGet, "/api/v1/subscriptions/plans", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(server, http.MethodGet, "/api/v1/recipes/personalized", "", token)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, apperrors.CodeSubscriptionRequired, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = performRequest(server, http.MethodPost, "/api/v1/subscriptions", `{"planId":"premium","card":{"number":"5111 1111 1111 1111"}}`, token)
	require.Equal(t, http.StatusPaymentRequired, rec.Code)
	require.Equal(t, apperrors.CodePaymentDeclined, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = performRequest(server, http.MethodPost, "/api/v1/subscriptions", `{"planId":"premium","card":{"number":"4111 1111 1111 1111"}}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var status subscription.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.True(t, status.Subscribed)
	require.Equal(t, subscription.TierPremium, status.Tier)

	rec = performRequest(server, http.MethodGet, "/api/v1/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var me auth.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.True(t, me.IsSubscribed)

	rec = performRequest(server, http.MethodGet, "/api/v1/recipes/personalized", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var recipes struct {
		Goal    string             `json:"goal"`
		Recipes []recommend.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recipes))
	require.Equal(t, "maintain", recipes.Goal)
	require.Len(t, recipes.Recipes, 3)

	rec = performRequest(server, http.MethodDelete, "/api/v1/subscriptions/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = performRequest(server, http.MethodGet, "/api/v1/subscriptions/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.False(t, status.Subscribed)
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/meals", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_RateLimit(t *testing.T) {
	server := newRouterWithConfig(t, nil, func(cfg *config.Config) {
		cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	})
	rec := performRequest(server, http.MethodGet, "/api/v1/categories", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = performRequest(server, http.MethodGet, "/api/v1/categories", "", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func registerAndLogin(t *testing.T, server *http.Server, email string) string {
	t.Helper()
	body := `{"email":"` + email + `","password":"secret123","confirmPassword":"secret123","name":"Asha"}`
	rec := performRequest(server, http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = performRequest(server, http.MethodPost, "/api/v1/auth/login", `{"email":"`+email+`","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp auth.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func performRequest(server *http.Server, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, meals nutrition.Service) *http.Server {
	return newRouterWithConfig(t, meals, nil)
}

func newRouterWithConfig(t *testing.T, meals nutrition.Service, mutate func(*config.Config)) *http.Server {
	t.Helper()
	logger := newTestLogger()
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			CORS:         config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	foods, err := catalog.New(catalog.DefaultFoods())
	require.NoError(t, err)
	store := statestore.NewMemoryStore()
	subscriptionSvc := subscription.NewService(subscription.Config{Period: 30 * 24 * time.Hour}, subscriptionrepo.NewMemoryRepository(), nil, logger)
	authSvc := auth.NewService(auth.Config{Secret: "test-secret", TokenTTL: time.Hour, RefreshTokenTTL: 24 * time.Hour}, userrepo.NewMemoryRepository(), subscriptionSvc, logger)
	profileSvc := profile.NewService(store, logger)
	if meals == nil {
		meals = nutrition.NewService(nutrition.Config{}, store, foods, profileSvc, logger)
	}

	handler := NewHandler(authSvc, foods, meals, profileSvc, recommend.NewService(logger), subscriptionSvc, logger)
	return NewRouter(cfg, handler, logger)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) nutrition.View {
	t.Helper()
	var view nutrition.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubMeals struct {
	err error
}

func (s *stubMeals) Plan(context.Context, int64) (nutrition.View, error) {
	return nutrition.View{}, s.err
}

func (s *stubMeals) AddToMeal(context.Context, int64, string, string, int) (nutrition.View, error) {
	return nutrition.View{}, s.err
}

func (s *stubMeals) RemoveFromMeal(context.Context, int64, string, string) (nutrition.View, error) {
	return nutrition.View{}, s.err
}

func (s *stubMeals) UpdateQuantity(context.Context, int64, string, string, int) (nutrition.View, error) {
	return nutrition.View{}, s.err
}

func (s *stubMeals) ClearMeal(context.Context, int64, string) (nutrition.View, error) {
	return nutrition.View{}, s.err
}

func (s *stubMeals) ClearAllMeals(context.Context, int64) (nutrition.View, error) {
	return nutrition.View{}, s.err
}
