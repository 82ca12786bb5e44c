package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/middlewares"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/utils"
)

type ProfileController struct {
	sessions *services.SessionStore
	goals    *services.GoalService
}

func NewProfileController(sessions *services.SessionStore, goals *services.GoalService) *ProfileController {
	return &ProfileController{sessions: sessions, goals: goals}
}

type bloodTestView struct {
	TestName    string `json:"test_name"`
	ResultValue string `json:"result_value"`
	Unit        string `json:"unit"`
	NormalRange string `json:"normal_range"`
	TestDate    string `json:"test_date"`
}

// Show renders the profile screen: identity, measurements, recent vitals,
// blood tests, allergies, diagnosed conditions, and the current goals.
func (pc *ProfileController) Show(c *gin.Context) {
	patientID := middlewares.PatientID(c)
	profile, ok := pc.sessions.Profile(patientID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
		return
	}

	goals, err := pc.goals.Get(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load goals"})
		return
	}

	tests := make([]bloodTestView, 0, len(profile.RecentBloodTests))
	for _, bt := range profile.RecentBloodTests {
		tests = append(tests, bloodTestView{
			TestName:    bt.TestName,
			ResultValue: bt.ResultValue,
			Unit:        bt.Unit,
			NormalRange: bt.NormalRange,
			TestDate:    utils.FormatDisplayDate(bt.TestDate, "N/A"),
		})
	}

	var bmi *services.BMIReading
	if profile.WeightKg != nil && profile.HeightCm != nil {
		if v, err := utils.CalculateBMI(*profile.HeightCm, *profile.WeightKg); err == nil {
			bmi = &services.BMIReading{Value: v, Category: utils.BMICategory(v)}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":                 profile.User,
		"name":                 profile.Name,
		"date_of_birth":        utils.FormatDisplayDate(profile.DOB, "N/A"),
		"gender":               profile.Gender,
		"weight_kg":            profile.WeightKg,
		"height_cm":            profile.HeightCm,
		"bmi":                  bmi,
		"recent_vitals":        profile.RecentVitals,
		"recent_blood_tests":   tests,
		"allergies":            profile.Allergies,
		"diagnosed_conditions": profile.DiagnosedConditions,
		"goals":                goals.Effective(),
	})
}
