package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/middlewares"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
)

type GoalController struct {
	goals *services.GoalService
	hub   *services.RealtimeHub
}

func NewGoalController(goals *services.GoalService, hub *services.RealtimeHub) *GoalController {
	return &GoalController{goals: goals, hub: hub}
}

// Get returns the patient's stored goals alongside the effective values
// the app should display. A field that was never set comes back null in
// "goals" but carries its default in "effective".
func (gc *GoalController) Get(c *gin.Context) {
	goals, err := gc.goals.Get(middlewares.PatientID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load goals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"goals":     goals,
		"effective": goals.Effective(),
	})
}

// Update replaces the patient's stored goals wholesale and notifies their
// connected clients so the dashboard re-renders its progress bars.
func (gc *GoalController) Update(c *gin.Context) {
	var goals models.Goals
	if err := c.ShouldBindJSON(&goals); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goals payload"})
		return
	}

	patientID := middlewares.PatientID(c)
	if err := gc.goals.Save(patientID, goals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save goals"})
		return
	}

	gc.hub.Broadcast(patientID, gin.H{"kind": "goals.updated"})
	c.JSON(http.StatusOK, gin.H{
		"goals":     goals,
		"effective": goals.Effective(),
	})
}
