package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
)

func TestTodaySummaryFiltersByLocalDay(t *testing.T) {
	now := time.Date(2024, 3, 5, 18, 0, 0, 0, time.Local)
	log := []models.MealLog{
		{LoggedAt: time.Date(2024, 3, 5, 8, 0, 0, 0, time.Local), Calories: 300, Protein: 20, Carbs: 30, Fat: 10},
		{LoggedAt: time.Date(2024, 3, 5, 13, 0, 0, 0, time.Local), Calories: 500, Protein: 35, Carbs: 50, Fat: 15},
		{LoggedAt: time.Date(2024, 3, 4, 13, 0, 0, 0, time.Local), Calories: 999, Protein: 99, Carbs: 99, Fat: 99},
	}

	sum := NewDashboardService().TodaySummary(log, now)
	assert.Equal(t, 800.0, sum.Calories)
	assert.Equal(t, 55.0, sum.Protein)
	assert.Equal(t, 80.0, sum.Carbs)
	assert.Equal(t, 25.0, sum.Fat)
}

func TestBuildProgressUnclamped(t *testing.T) {
	now := time.Date(2024, 3, 5, 18, 0, 0, 0, time.Local)
	log := []models.MealLog{
		{LoggedAt: now, Calories: 2500, Protein: 60, Carbs: 125, Fat: 0},
	}
	goals := models.EffectiveGoals{Calories: 2000, Protein: 120, Carbs: 250, Fat: 70}

	d := NewDashboardService().Build(&models.PatientProfile{}, log, goals, now)
	assert.Equal(t, 125.0, d.Calories.Percent) // over 100 stays over 100
	assert.Equal(t, 50.0, d.Protein.Percent)
	assert.Equal(t, 50.0, d.Carbs.Percent)
	assert.Equal(t, 0.0, d.Fat.Percent)
}

func TestBuildZeroGoalYieldsZeroPercent(t *testing.T) {
	now := time.Now()
	log := []models.MealLog{{LoggedAt: now, Calories: 500}}

	d := NewDashboardService().Build(&models.PatientProfile{}, log, models.EffectiveGoals{}, now)
	assert.Equal(t, 500.0, d.Calories.Current)
	assert.Equal(t, 0.0, d.Calories.Percent)
}

func TestBuildBMI(t *testing.T) {
	weight, height := 65.0, 170.0
	now := time.Now()

	t.Run("present when both measurements exist", func(t *testing.T) {
		profile := &models.PatientProfile{WeightKg: &weight, HeightCm: &height}
		d := NewDashboardService().Build(profile, nil, models.EffectiveGoals{}, now)
		require.NotNil(t, d.BMI)
		assert.InDelta(t, 22.49, d.BMI.Value, 0.01)
		assert.Equal(t, "Normal", d.BMI.Category)
	})

	t.Run("absent when a measurement is missing", func(t *testing.T) {
		profile := &models.PatientProfile{WeightKg: &weight}
		d := NewDashboardService().Build(profile, nil, models.EffectiveGoals{}, now)
		assert.Nil(t, d.BMI)
	})

	t.Run("absent for nil profile", func(t *testing.T) {
		d := NewDashboardService().Build(nil, nil, models.EffectiveGoals{}, now)
		assert.Nil(t, d.BMI)
	})
}
