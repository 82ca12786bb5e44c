package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
)

func mealRouter(mc *MealController, patientID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/meals", func(c *gin.Context) { c.Set("patientID", patientID) }, mc.LogMeal)
	return r
}

func TestLogMealRejectsSentinelDishNames(t *testing.T) {
	var inserts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inserts.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sessions := services.NewSessionStore()
	sessions.Put(&models.PatientProfile{User: models.User{UserID: 7}})
	mc := NewMealController(
		services.NewMealLogService(services.NewTableService(srv.URL), sessions),
		services.NewRealtimeHub(),
	)
	r := mealRouter(mc, 7)

	for _, dish := range []string{"NOT_FOOD", "not_food", "string"} {
		w := httptest.NewRecorder()
		body := fmt.Sprintf(`{"analysis":{"dishName":%q,"nutritionalBreakdown":{"totalCalories":100}}}`, dish)
		req := httptest.NewRequest(http.MethodPost, "/meals", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "dish %q", dish)
	}
	assert.Equal(t, int32(0), inserts.Load(), "sentinel payloads must never reach the nutrition log")
}

func TestLogMealAcceptsRealDish(t *testing.T) {
	var inserts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inserts.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sessions := services.NewSessionStore()
	sessions.Put(&models.PatientProfile{User: models.User{UserID: 7}})
	mc := NewMealController(
		services.NewMealLogService(services.NewTableService(srv.URL), sessions),
		services.NewRealtimeHub(),
	)

	w := httptest.NewRecorder()
	body := `{"analysis":{"dishName":"Caesar Salad","nutritionalBreakdown":{"totalCalories":420}}}`
	req := httptest.NewRequest(http.MethodPost, "/meals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mealRouter(mc, 7).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int32(1), inserts.Load())
}
