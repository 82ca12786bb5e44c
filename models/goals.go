package models

// Default daily targets substituted per-field when a goal is unset.
const (
	DefaultGoalCalories = 2000
	DefaultGoalProtein  = 120
	DefaultGoalCarbs    = 250
	DefaultGoalFat      = 70
)

// Goals holds the four optional daily targets as stored. A nil field means
// "use the default".
type Goals struct {
	Calories *int `json:"calories"`
	Protein  *int `json:"protein"`
	Carbs    *int `json:"carbs"`
	Fat      *int `json:"fat"`
}

// EffectiveGoals is what the dashboard actually measures against, with
// defaults applied field by field.
type EffectiveGoals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Effective resolves the stored goals against the defaults.
func (g Goals) Effective() EffectiveGoals {
	eff := EffectiveGoals{
		Calories: DefaultGoalCalories,
		Protein:  DefaultGoalProtein,
		Carbs:    DefaultGoalCarbs,
		Fat:      DefaultGoalFat,
	}
	if g.Calories != nil {
		eff.Calories = *g.Calories
	}
	if g.Protein != nil {
		eff.Protein = *g.Protein
	}
	if g.Carbs != nil {
		eff.Carbs = *g.Carbs
	}
	if g.Fat != nil {
		eff.Fat = *g.Fat
	}
	return eff
}
