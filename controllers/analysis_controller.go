package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/middlewares"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/utils"
)

type AnalysisController struct {
	vision   *services.VisionService
	sessions *services.SessionStore
}

func NewAnalysisController(vision *services.VisionService, sessions *services.SessionStore) *AnalysisController {
	return &AnalysisController{vision: vision, sessions: sessions}
}

type analyzeRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
	Hint        string `json:"hint"`
}

// Analyze runs the meal photo through the vision model with the session's
// health profile baked into the prompt, then scores the result. A non-food
// image is a client error, not a scored meal.
func (ac *AnalysisController) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is required"})
		return
	}

	patientID := middlewares.PatientID(c)
	profile, ok := ac.sessions.Profile(patientID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
		return
	}

	analysis, err := ac.vision.Analyze(c.Request.Context(), profile, req.ImageBase64, req.Hint)
	if err != nil {
		if errors.Is(err, services.ErrNotFood) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "We could not detect any food in this image. Please try again.",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to analyze image"})
		return
	}

	score := utils.HealthScore(analysis.Insights)
	verdict := utils.FinalVerdict(score, analysis.Insights)

	c.JSON(http.StatusOK, gin.H{
		"analysis":     analysis,
		"health_score": score,
		"verdict":      verdict,
	})
}
