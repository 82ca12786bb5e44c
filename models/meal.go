package models

import "time"

// MealLog is one logged meal from the app_nutrition_log table. Rows are
// created by the backend on submission and read-only afterwards.
type MealLog struct {
	LogID     int       `json:"log_id"`
	PatientID int       `json:"patient_id"`
	LoggedAt  time.Time `json:"logged_at"`

	DetectedDish      string `json:"detected_dish"`
	IdentifiedFoods   string `json:"identified_foods"` // comma-separated ingredient list
	EstimatedPortions string `json:"estimated_portions"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Sodium   float64 `json:"sodium"`
	Sugar    float64 `json:"sugar"`

	Risk     string `json:"risk"`
	Warning  string `json:"warning"`
	Positive string `json:"positive"`
}

// DailySummary holds the nutrient totals of today's meals.
type DailySummary struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
