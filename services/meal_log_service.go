package services

import (
	"context"
	"strings"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/utils"
)

const nutritionLogTable = "app_nutrition_log"

// MealLogService reads and writes the nutrition log, using the session's
// one-shot cache for reads.
type MealLogService struct {
	tables   *TableService
	sessions *SessionStore
}

func NewMealLogService(tables *TableService, sessions *SessionStore) *MealLogService {
	return &MealLogService{tables: tables, sessions: sessions}
}

// Raw nutrition-log row. The backend's column naming is historical:
// identified_foods holds the dish name, ingredients_list the ingredients.
type nutritionLogRow struct {
	LogID             int     `json:"log_id"`
	PatientID         int     `json:"patient_id"`
	LoggedAt          string  `json:"logged_at"`
	IdentifiedFoods   string  `json:"identified_foods"`
	IngredientsList   string  `json:"ingredients_list"`
	EstimatedPortions string  `json:"estimated_portions"`
	Calories          float64 `json:"calories"`
	ProteinG          float64 `json:"protein_g"`
	FatG              float64 `json:"fat_g"`
	CarbohydratesG    float64 `json:"carbohydrates_g"`
	SodiumMg          float64 `json:"sodium_mg"`
	SugarG            float64 `json:"sugar_g"`
	InsightRisk       string  `json:"insight_risk"`
	InsightWarning    string  `json:"insight_warning"`
	InsightPositive   string  `json:"insight_positive"`
}

// History returns the patient's full meal log, served from the session
// cache when present. A fresh fetch re-filters rows by patient id before
// caching; the cache is only ever set whole.
func (s *MealLogService) History(ctx context.Context, patientID int) ([]models.MealLog, error) {
	if cached, ok := s.sessions.MealLog(patientID); ok {
		return cached, nil
	}

	var rows []nutritionLogRow
	if err := s.tables.FetchRows(ctx, nutritionLogTable, patientID, &rows); err != nil {
		return nil, err
	}

	log := make([]models.MealLog, 0, len(rows))
	for _, row := range rows {
		if row.PatientID != patientID {
			continue
		}
		log = append(log, models.MealLog{
			LogID:             row.LogID,
			PatientID:         row.PatientID,
			LoggedAt:          utils.ParseLogTimestamp(row.LoggedAt),
			DetectedDish:      row.IdentifiedFoods,
			IdentifiedFoods:   row.IngredientsList,
			EstimatedPortions: row.EstimatedPortions,
			Calories:          row.Calories,
			Protein:           row.ProteinG,
			Fat:               row.FatG,
			Carbs:             row.CarbohydratesG,
			Sodium:            row.SodiumMg,
			Sugar:             row.SugarG,
			Risk:              row.InsightRisk,
			Warning:           row.InsightWarning,
			Positive:          row.InsightPositive,
		})
	}

	s.sessions.SetMealLog(patientID, log)
	return log, nil
}

// Submit flattens a confirmed analysis into one nutrition-log row and POSTs
// it. On success the session meal cache is invalidated so the next read
// includes the new entry. There is no automatic retry.
func (s *MealLogService) Submit(ctx context.Context, patientID int, analysis models.FoodAnalysis) error {
	if err := s.tables.Insert(ctx, nutritionLogTable, BuildLogPayload(patientID, analysis)); err != nil {
		return err
	}
	s.sessions.InvalidateMealLog(patientID)
	return nil
}

// BuildLogPayload maps an analysis onto the flat nutrition-log columns.
// Ingredients are comma-joined, insight lists newline-joined, and NEUTRAL
// filler entries are excluded from the positives column.
func BuildLogPayload(patientID int, analysis models.FoodAnalysis) map[string]any {
	nuts := analysis.NutritionalBreakdown
	return map[string]any{
		"patient_id":         patientID,
		"image_storage_path": nil,
		"identified_foods":   analysis.DishName,
		"estimated_portions": analysis.PortionSize,
		"ingredients_list":   strings.Join(analysis.Ingredients, ","),
		"calories":           nuts.TotalCalories,
		"protein_g":          nuts.TotalProtein,
		"fat_g":              nuts.TotalFat,
		"carbohydrates_g":    nuts.TotalCarbs,
		"sodium_mg":          nuts.TotalSodium,
		"sugar_g":            nuts.TotalSugar,
		"insight_risk":       strings.Join(analysis.Insights.Risks, "\n"),
		"insight_warning":    strings.Join(analysis.Insights.Warnings, "\n"),
		"insight_positive":   strings.Join(utils.NonNeutralPositives(analysis.Insights.Positives), "\n"),
	}
}
