package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/middlewares"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/utils"
)

type MealController struct {
	meals *services.MealLogService
	hub   *services.RealtimeHub
}

func NewMealController(meals *services.MealLogService, hub *services.RealtimeHub) *MealController {
	return &MealController{meals: meals, hub: hub}
}

type mealListItem struct {
	LogID    int     `json:"log_id"`
	Title    string  `json:"title"`
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// List returns the patient's meal history as display-ready cards.
func (mc *MealController) List(c *gin.Context) {
	history, err := mc.meals.History(c.Request.Context(), middlewares.PatientID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load meal history"})
		return
	}

	items := make([]mealListItem, 0, len(history))
	for _, meal := range history {
		items = append(items, mealListItem{
			LogID:    meal.LogID,
			Title:    mealTitle(meal.DetectedDish),
			Date:     utils.FormatDisplayDay(meal.LoggedAt),
			Calories: meal.Calories,
			Protein:  meal.Protein,
			Carbs:    meal.Carbs,
			Fat:      meal.Fat,
		})
	}
	c.JSON(http.StatusOK, gin.H{"meals": items})
}

type mealDetail struct {
	LogID       int      `json:"log_id"`
	Title       string   `json:"title"`
	LoggedAt    string   `json:"logged_at"`
	Portions    string   `json:"portions"`
	Ingredients string   `json:"ingredients"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Sodium      float64  `json:"sodium"`
	Sugar       float64  `json:"sugar"`
	Risks       []string `json:"risks"`
	Warnings    []string `json:"warnings"`
	Positives   []string `json:"positives"`
}

// Detail renders one logged meal for the detail screen.
func (mc *MealController) Detail(c *gin.Context) {
	logID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	history, err := mc.meals.History(c.Request.Context(), middlewares.PatientID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load meal history"})
		return
	}

	for _, meal := range history {
		if meal.LogID != logID {
			continue
		}
		c.JSON(http.StatusOK, mealDetail{
			LogID:       meal.LogID,
			Title:       mealTitle(meal.DetectedDish),
			LoggedAt:    utils.FormatDisplayStamp(meal.LoggedAt),
			Portions:    meal.EstimatedPortions,
			Ingredients: strings.ReplaceAll(meal.IdentifiedFoods, ",", ", "),
			Calories:    meal.Calories,
			Protein:     meal.Protein,
			Carbs:       meal.Carbs,
			Fat:         meal.Fat,
			Sodium:      meal.Sodium,
			Sugar:       meal.Sugar,
			Risks:       splitInsights(meal.Risk),
			Warnings:    splitInsights(meal.Warning),
			Positives:   splitInsights(meal.Positive),
		})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
}

type logMealRequest struct {
	Analysis models.FoodAnalysis `json:"analysis" binding:"required"`
}

// LogMeal persists a confirmed analysis to the nutrition log and notifies
// the patient's connected clients. Sentinel dish names are rejected here
// too; the client is not the only caller of this endpoint.
func (mc *MealController) LogMeal(c *gin.Context) {
	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "analysis payload is required"})
		return
	}

	if utils.IsNonFood(req.Analysis.DishName) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "analysis does not describe a food item"})
		return
	}

	patientID := middlewares.PatientID(c)
	if err := mc.meals.Submit(c.Request.Context(), patientID, req.Analysis); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save meal log"})
		return
	}

	mc.hub.Broadcast(patientID, gin.H{"kind": "meal.logged", "dish": req.Analysis.DishName})
	c.JSON(http.StatusCreated, gin.H{"message": "meal logged"})
}

func mealTitle(dish string) string {
	if strings.TrimSpace(dish) == "" {
		return "Logged Meal"
	}
	return dish
}

func splitInsights(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, "\n")
}
