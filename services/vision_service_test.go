package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
)

func analysisBackend(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testProfile() *models.PatientProfile {
	return &models.PatientProfile{
		User:                models.User{UserID: 7},
		Name:                "Alice",
		RecentVitals:        models.Vitals{BloodPressure: "120/80", HeartRate: 72},
		Allergies:           []models.Allergy{{Allergen: "Peanuts", Severity: "severe"}},
		DiagnosedConditions: []string{"Hypertension"},
	}
}

func TestAnalyzeDecodesContent(t *testing.T) {
	content := `{"dishName":"Caesar Salad","portionSize":"1 bowl","ingredients":["Lettuce","Chicken"],` +
		`"nutritionalBreakdown":{"totalCalories":420,"totalProtein":30,"totalFat":22,"totalCarbs":18,"totalSodium":800,"totalSugar":4},` +
		`"insights":{"risks":[],"warnings":["WARNING: sodium"],"positives":["POSITIVE: protein"]}}`
	srv := analysisBackend(t, content)
	defer srv.Close()

	svc := NewVisionService(srv.URL, "test-key", "test-model")
	analysis, err := svc.Analyze(context.Background(), testProfile(), "aW1n", "")
	require.NoError(t, err)

	assert.Equal(t, "Caesar Salad", analysis.DishName)
	assert.Equal(t, 420.0, analysis.NutritionalBreakdown.TotalCalories)
	assert.Equal(t, []string{"WARNING: sodium"}, analysis.Insights.Warnings)
}

func TestAnalyzeNonFood(t *testing.T) {
	for _, dish := range []string{"NOT_FOOD", "not_food", "string"} {
		srv := analysisBackend(t, fmt.Sprintf(`{"dishName":%q}`, dish))
		svc := NewVisionService(srv.URL, "test-key", "test-model")

		_, err := svc.Analyze(context.Background(), testProfile(), "aW1n", "")
		assert.ErrorIs(t, err, ErrNotFood, "dish %q", dish)
		srv.Close()
	}
}

func TestAnalyzeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewVisionService(srv.URL, "test-key", "test-model")
	_, err := svc.Analyze(context.Background(), testProfile(), "aW1n", "")
	assert.ErrorContains(t, err, "analysis API error 429")
}

func TestAnalyzeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	svc := NewVisionService(srv.URL, "test-key", "test-model")
	_, err := svc.Analyze(context.Background(), testProfile(), "aW1n", "")
	assert.ErrorContains(t, err, "no choices")
}

func TestBuildSystemPromptEmbedsProfile(t *testing.T) {
	profile := testProfile()
	profile.RecentBloodTests = []models.BloodTest{
		{TestName: "HbA1c", ResultValue: "5.4", Unit: "%", TestDate: "2024-02-20"},
	}

	prompt := buildSystemPrompt(profile)
	assert.Contains(t, prompt, "ALLERGY_LIST: [Peanuts]")
	assert.Contains(t, prompt, "CONDITION_LIST: [Hypertension]")
	assert.Contains(t, prompt, "BP: 120/80, HR: 72 bpm")
	assert.Contains(t, prompt, "- HbA1c: 5.4 % (Test Date: Feb 20, 2024)")
	assert.Contains(t, prompt, `"dishName" to "NOT_FOOD"`)
}

func TestBuildSystemPromptEmptyListsSayNone(t *testing.T) {
	prompt := buildSystemPrompt(&models.PatientProfile{})
	assert.Contains(t, prompt, "ALLERGY_LIST: [none]")
	assert.Contains(t, prompt, "CONDITION_LIST: [none]")
	assert.Contains(t, prompt, "Recent Blood Tests: none")
}

func TestBuildRequestHintFallback(t *testing.T) {
	svc := NewVisionService("http://example", "k", "m")
	req := svc.buildRequest(testProfile(), "aW1n", "")

	require.Len(t, req.Messages, 2)
	parts, ok := req.Messages[1].Content.([]contentPart)
	require.True(t, ok)
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].Text, "No hint provided.")
	assert.Equal(t, "data:image/jpeg;base64,aW1n", parts[1].ImageURL.URL)
	assert.Equal(t, "json_object", req.ResponseFormat.Type)
}
