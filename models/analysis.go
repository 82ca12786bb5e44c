package models

// FoodAnalysis is the fixed JSON shape the analysis API is instructed to
// return. It is transient: never stored as-is, only flattened into a
// nutrition-log payload when the user confirms logging.
type FoodAnalysis struct {
	DishName             string               `json:"dishName"`
	PortionSize          string               `json:"portionSize"`
	Ingredients          []string             `json:"ingredients"`
	NutritionalBreakdown NutritionalBreakdown `json:"nutritionalBreakdown"`
	Insights             PersonalizedInsights `json:"insights"`
}

type NutritionalBreakdown struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalFat      float64 `json:"totalFat"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalSodium   float64 `json:"totalSodium"`
	TotalSugar    float64 `json:"totalSugar"`
}

// PersonalizedInsights groups findings by category. Entries are prefixed
// strings ("HIGH RISK:", "WARNING:", "POSITIVE:", "NEUTRAL:").
type PersonalizedInsights struct {
	Risks     []string `json:"risks"`
	Warnings  []string `json:"warnings"`
	Positives []string `json:"positives"`
}
