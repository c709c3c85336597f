package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/fiftytwo/internal/adapters/handler/http"
	"github.com/comitanigiacomo/fiftytwo/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/fiftytwo/internal/adapters/repository"
	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/comitanigiacomo/fiftytwo/internal/core/services"
	"github.com/comitanigiacomo/fiftytwo/internal/core/workers"
)

func getTestWorker() *workers.CompletionWorker {
	return workers.NewCompletionWorker(nil, nil)
}

func setupRouter() (*gin.Engine, *repository.MemoryStore) {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	goalSvc := services.NewGoalService(store.Goals(), domain.DefaultTotalWeeks)
	progressSvc := services.NewProgressService(goalSvc, store.Progress(), getTestWorker())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	})

	api := r.Group("/api")
	adapterHTTP.NewGoalHandler(goalSvc).RegisterRoutes(api)
	adapterHTTP.NewProgressHandler(progressSvc).RegisterRoutes(api)
	return r, store
}

func doRequest(r *gin.Engine, method, path, body, userID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createGoal(t *testing.T, r *gin.Engine, userID, body string) domain.Goal {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/goals", body, userID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var g domain.Goal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	return g
}

func TestCreateGoal(t *testing.T) {
	t.Run("Success: 201 Created with classic defaults", func(t *testing.T) {
		router, _ := setupRouter()

		g := createGoal(t, router, "user-1", `{"title": "Bike"}`)

		assert.NotEmpty(t, g.ID)
		assert.Equal(t, "user-1", g.UserID)
		assert.Equal(t, 1378, g.TargetAmount)
		assert.Equal(t, 52, g.TotalWeeks)
		assert.Equal(t, "RUB", g.Currency)
		assert.Equal(t, domain.GoalStatusActive, g.Status)
	})

	t.Run("Success: Custom target and currency", func(t *testing.T) {
		router, _ := setupRouter()

		w := doRequest(router, http.MethodPost, "/api/goals",
			`{"title": "Laptop", "targetAmount": 137800, "currency": "USD", "reminderDay": "friday"}`, "user-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"targetAmount":137800`)
		assert.Contains(t, w.Body.String(), `"currency":"USD"`)
		assert.Contains(t, w.Body.String(), `"reminderDay":"friday"`)
	})

	t.Run("Fail: 401 Unauthorized (Missing user)", func(t *testing.T) {
		router, _ := setupRouter()

		w := doRequest(router, http.MethodPost, "/api/goals", `{"title": "Bike"}`, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: 400 Missing title", func(t *testing.T) {
		router, _ := setupRouter()

		w := doRequest(router, http.MethodPost, "/api/goals", `{"targetAmount": 100}`, "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"title"`)
	})

	t.Run("Fail: 400 Negative target", func(t *testing.T) {
		router, _ := setupRouter()

		w := doRequest(router, http.MethodPost, "/api/goals", `{"title": "Bike", "targetAmount": -5}`, "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"targetAmount"`)
	})

	t.Run("Fail: 400 Explicit zero target", func(t *testing.T) {
		router, store := setupRouter()

		w := doRequest(router, http.MethodPost, "/api/goals", `{"title": "x", "targetAmount": 0}`, "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"targetAmount"`)
		goals, err := store.Goals().ListByUserID(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, goals, "no goal is created with default values")
	})

	t.Run("Fail: 400 Explicit zero weeks", func(t *testing.T) {
		router, _ := setupRouter()

		w := doRequest(router, http.MethodPost, "/api/goals", `{"title": "x", "totalWeeks": 0}`, "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"totalWeeks"`)
	})

	t.Run("Fail: 400 Unsupported currency", func(t *testing.T) {
		router, _ := setupRouter()

		w := doRequest(router, http.MethodPost, "/api/goals", `{"title": "Bike", "currency": "EURO"}`, "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrInvalidCurrency.Error())
	})
}

func TestListGoals(t *testing.T) {
	router, _ := setupRouter()
	createGoal(t, router, "user-1", `{"title": "First"}`)
	createGoal(t, router, "user-1", `{"title": "Second"}`)
	createGoal(t, router, "user-2", `{"title": "Other"}`)

	w := doRequest(router, http.MethodGet, "/api/goals", "", "user-1")

	assert.Equal(t, http.StatusOK, w.Code)
	var list []domain.Goal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
	for _, g := range list {
		assert.Equal(t, "user-1", g.UserID)
	}
}

func TestGetGoal(t *testing.T) {
	router, _ := setupRouter()
	g := createGoal(t, router, "user-1", `{"title": "Bike"}`)

	t.Run("Success: 200 OK", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/goals/"+g.ID, "", "user-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Bike"`)
	})

	t.Run("Fail: 404 Not Found (IDOR Protection)", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/goals/"+g.ID, "", "hacker")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: 404 Unknown id", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/goals/missing", "", "user-1")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("Success: 204 No Content and weeks are gone", func(t *testing.T) {
		router, _ := setupRouter()
		g := createGoal(t, router, "user-1", `{"title": "Bike"}`)

		w := doRequest(router, http.MethodDelete, "/api/goals/"+g.ID, "", "user-1")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doRequest(router, http.MethodGet, "/api/goals/"+g.ID+"/progress", "", "user-1")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: 404 Not Found (IDOR Protection)", func(t *testing.T) {
		router, _ := setupRouter()
		g := createGoal(t, router, "user-1", `{"title": "Bike"}`)

		w := doRequest(router, http.MethodDelete, "/api/goals/"+g.ID, "", "hacker")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(router, http.MethodGet, "/api/goals/"+g.ID, "", "user-1")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
