package services

import (
	"time"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/utils"
)

// MetricProgress pairs a consumed value with its goal. Percent is not
// clamped; values over 100 are a display concern.
type MetricProgress struct {
	Current float64 `json:"current"`
	Goal    int     `json:"goal"`
	Percent float64 `json:"percent"`
}

type BMIReading struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// Dashboard is the daily health-goal view: today's nutrient totals, their
// progress against the effective goals, and the BMI band when measurements
// exist.
type Dashboard struct {
	Summary  models.DailySummary `json:"summary"`
	Calories MetricProgress      `json:"calories"`
	Protein  MetricProgress      `json:"protein"`
	Carbs    MetricProgress      `json:"carbs"`
	Fat      MetricProgress      `json:"fat"`
	BMI      *BMIReading         `json:"bmi,omitempty"`
}

type DashboardService struct{}

func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// TodaySummary sums calories/protein/carbs/fat across entries logged on
// the same local calendar day as now.
func (s *DashboardService) TodaySummary(log []models.MealLog, now time.Time) models.DailySummary {
	var sum models.DailySummary
	for _, meal := range log {
		if !utils.SameLocalDay(meal.LoggedAt, now) {
			continue
		}
		sum.Calories += meal.Calories
		sum.Protein += meal.Protein
		sum.Carbs += meal.Carbs
		sum.Fat += meal.Fat
	}
	return sum
}

// Build assembles the dashboard for a profile, meal log and goal set.
func (s *DashboardService) Build(profile *models.PatientProfile, log []models.MealLog, goals models.EffectiveGoals, now time.Time) Dashboard {
	sum := s.TodaySummary(log, now)

	d := Dashboard{
		Summary:  sum,
		Calories: progress(sum.Calories, goals.Calories),
		Protein:  progress(sum.Protein, goals.Protein),
		Carbs:    progress(sum.Carbs, goals.Carbs),
		Fat:      progress(sum.Fat, goals.Fat),
	}

	// BMI is undefined unless both measurements are present.
	if profile != nil && profile.WeightKg != nil && profile.HeightCm != nil {
		if bmi, err := utils.CalculateBMI(*profile.HeightCm, *profile.WeightKg); err == nil {
			d.BMI = &BMIReading{Value: bmi, Category: utils.BMICategory(bmi)}
		}
	}
	return d
}

func progress(current float64, goal int) MetricProgress {
	p := MetricProgress{Current: current, Goal: goal}
	if goal > 0 {
		p.Percent = current / float64(goal) * 100.0
	}
	return p
}
