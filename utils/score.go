package utils

import (
	"strings"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
)

// Per-finding score weights.
const (
	ScoreHighRisk = -10
	ScoreWarning  = -3
	ScorePositive = 2
)

// NeutralPrefix marks the filler entry the analysis API must append to the
// positives list when no risks or warnings were found. Neutral entries never
// contribute to the score and are excluded from logged payloads.
const NeutralPrefix = "NEUTRAL:"

// NonFoodSentinel is the dish name the analysis API returns for images with
// no food in them.
const NonFoodSentinel = "NOT_FOOD"

// Verdict is the categorical recommendation shown with an analysis.
type Verdict struct {
	Title     string `json:"title"`
	Reasoning string `json:"reasoning"`
}

// IsNonFood reports whether the dish name signals a classification failure:
// the NOT_FOOD sentinel, or the model echoing the schema's literal "string"
// placeholder back.
func IsNonFood(dishName string) bool {
	return strings.EqualFold(dishName, NonFoodSentinel) ||
		strings.EqualFold(dishName, "string")
}

// NonNeutralPositives filters the neutral filler entries out of a positives
// list.
func NonNeutralPositives(positives []string) []string {
	out := make([]string, 0, len(positives))
	for _, p := range positives {
		if !strings.HasPrefix(p, NeutralPrefix) {
			out = append(out, p)
		}
	}
	return out
}

// HealthScore computes the weighted score over the three finding lists.
// A score of exactly 0 with at least one non-empty list is forced to -1 so
// that "findings that cancel out" is distinguishable from "no findings".
func HealthScore(in models.PersonalizedInsights) int {
	score := 0
	hasFindings := false

	if len(in.Risks) > 0 {
		score += len(in.Risks) * ScoreHighRisk
		hasFindings = true
	}
	if len(in.Warnings) > 0 {
		score += len(in.Warnings) * ScoreWarning
		hasFindings = true
	}
	if len(in.Positives) > 0 {
		score += len(NonNeutralPositives(in.Positives)) * ScorePositive
		hasFindings = true
	}

	if score == 0 && hasFindings {
		return -1
	}
	return score
}

// FinalVerdict maps a score to a recommendation. Any risk at all overrides
// the numeric score.
func FinalVerdict(score int, in models.PersonalizedInsights) Verdict {
	if len(in.Risks) > 0 {
		return Verdict{
			Title:     "Not Recommended",
			Reasoning: "The high risks associated with this meal strongly outweigh any potential benefits.",
		}
	}

	switch {
	case score < 0:
		return Verdict{
			Title:     "Consume in Moderation",
			Reasoning: "This meal has drawbacks that conflict with your health profile. Please consider this a rare treat.",
		}
	case score == 0:
		return Verdict{
			Title:     "Neutral Choice",
			Reasoning: "This meal has no immediate risks for you, but it also does not offer significant health benefits.",
		}
	default:
		return Verdict{
			Title:     "Recommended",
			Reasoning: "This meal is a great choice and aligns well with your health profile and goals!",
		}
	}
}
