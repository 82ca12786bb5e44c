package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/middlewares"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
)

type DashboardController struct {
	meals     *services.MealLogService
	goals     *services.GoalService
	dashboard *services.DashboardService
	sessions  *services.SessionStore
}

func NewDashboardController(meals *services.MealLogService, goals *services.GoalService, dashboard *services.DashboardService, sessions *services.SessionStore) *DashboardController {
	return &DashboardController{meals: meals, goals: goals, dashboard: dashboard, sessions: sessions}
}

// Today returns the daily health-goal view: today's totals, progress
// against the effective goals, and BMI when measurements exist.
func (dc *DashboardController) Today(c *gin.Context) {
	patientID := middlewares.PatientID(c)

	profile, ok := dc.sessions.Profile(patientID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
		return
	}

	history, err := dc.meals.History(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load meal history"})
		return
	}

	goals, err := dc.goals.Get(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load goals"})
		return
	}

	c.JSON(http.StatusOK, dc.dashboard.Build(profile, history, goals.Effective(), time.Now()))
}
