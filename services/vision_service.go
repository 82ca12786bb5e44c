package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/utils"
)

// ErrNotFood is returned when the analysis API classifies the image as
// containing no food. It is a domain outcome, not a transport failure.
var ErrNotFood = errors.New("no food detected in the image")

// VisionService calls the chat-completions analysis API with a food image
// and the patient's health context, and decodes the fixed JSON result.
type VisionService struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

func NewVisionService(apiURL, apiKey, model string) *VisionService {
	return &VisionService{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// OpenAI-compatible request/response structures.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string, or []contentPart for multimodal
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Analyze sends the base64 JPEG plus the patient's health context and
// returns the decoded analysis. Non-food classifications surface as
// ErrNotFood rather than a scored result.
func (s *VisionService) Analyze(ctx context.Context, profile *models.PatientProfile, imageBase64, hint string) (*models.FoodAnalysis, error) {
	payload := s.buildRequest(profile, imageBase64, hint)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call analysis API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis API error %d: %s", resp.StatusCode, string(respBody))
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("analysis API error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return nil, errors.New("analysis response contained no choices")
	}

	var analysis models.FoodAnalysis
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis content: %w", err)
	}

	if utils.IsNonFood(analysis.DishName) {
		return nil, ErrNotFood
	}
	return &analysis, nil
}

func (s *VisionService) buildRequest(profile *models.PatientProfile, imageBase64, hint string) chatRequest {
	if hint == "" {
		hint = "No hint provided."
	}
	userText := fmt.Sprintf(
		"Please analyze this image and provide the complete JSON breakdown, considering my health profile.\nThe user provided this hint: %q", hint)

	return chatRequest{
		Model:          s.model,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemPrompt(profile)},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: userText},
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64}},
			}},
		},
		MaxTokens: 2000,
	}
}

// buildSystemPrompt embeds the patient's EHR summary plus the output-format
// rules. The wording of the rules is a contract with the model: exact
// allergy matching only, one warning per adverse nutrient, a mandatory
// NEUTRAL filler when nothing else was found.
func buildSystemPrompt(profile *models.PatientProfile) string {
	allergies := make([]string, 0, len(profile.Allergies))
	for _, a := range profile.Allergies {
		allergies = append(allergies, a.Allergen)
	}
	allergyList := strings.Join(allergies, ", ")
	if allergyList == "" {
		allergyList = "none"
	}

	conditionList := strings.Join(profile.DiagnosedConditions, ", ")
	if conditionList == "" {
		conditionList = "none"
	}

	vitals := fmt.Sprintf("BP: %s, HR: %d bpm",
		profile.RecentVitals.BloodPressure, profile.RecentVitals.HeartRate)

	testLines := make([]string, 0, len(profile.RecentBloodTests))
	for _, t := range profile.RecentBloodTests {
		testLines = append(testLines, fmt.Sprintf("- %s: %s %s (Test Date: %s)",
			t.TestName, t.ResultValue, t.Unit, utils.FormatDisplayDate(t.TestDate, "Unknown Date")))
	}
	bloodTests := strings.Join(testLines, "\n")
	if bloodTests == "" {
		bloodTests = "none"
	}

	var sb strings.Builder
	sb.WriteString("You are an expert nutritionist AI for an e-hospital. Your task is to analyze an image of food and provide a detailed breakdown,\n")
	sb.WriteString("cross-referencing the patient's Electronic Health Record (EHR).\n\n")
	sb.WriteString("The user has the following health profile:\n")
	fmt.Fprintf(&sb, "- ALLERGY_LIST: [%s]\n", allergyList)
	fmt.Fprintf(&sb, "- CONDITION_LIST: [%s]\n", conditionList)
	fmt.Fprintf(&sb, "- Latest Vitals: %s\n", vitals)
	fmt.Fprintf(&sb, "- Recent Blood Tests: %s\n\n", bloodTests)
	sb.WriteString("You MUST return the results *only* as a single, minified JSON object.\n")
	sb.WriteString("Do not include any text, headers, or markdown formatting (like ```json) outside of the JSON object.\n\n")
	sb.WriteString("The JSON object must strictly follow this exact format:\n")
	sb.WriteString(`{
  "dishName": "string",
  "portionSize": "string",
  "ingredients": ["string", "string", ...],
  "nutritionalBreakdown": {
    "totalCalories": 0.0,
    "totalProtein": 0.0,
    "totalFat": 0.0,
    "totalCarbs": 0.0,
    "totalSodium": 0.0,
    "totalSugar": 0.0
  },
  "insights": {
    "risks": [],
    "warnings": [],
    "positives": []
  }
}`)
	sb.WriteString("\n\nRULES FOR 'dishName', 'portionSize', AND 'ingredients':\n")
	sb.WriteString("1. \"dishName\": Identify the overall dish. (e.g., \"Caesar Salad\", \"Pumpkin Soup\", \"Almonds\").\n")
	sb.WriteString("2. \"portionSize\": Estimate the total portion. (e.g., \"1 large bowl (approx 400g)\", \"1 cup (approx 250ml)\", \"5 pieces (approx 10g)\").\n")
	sb.WriteString("3. \"ingredients\": List the *primary, actual ingredients* visible or strongly implied by the dish. (e.g., [\"Romaine Lettuce\", \"Grilled Chicken\", \"Croutons\", \"Caesar Dressing\"]).\n")
	sb.WriteString("   - For single-item foods (like \"Almonds\" or \"Apple\"), this array should be empty OR contain *only* the item name: [\"Almonds\"].\n")
	sb.WriteString("4. NON-FOOD IMAGES: If the image does not contain any food items, you MUST set \"dishName\" to \"NOT_FOOD\".\n\n")
	sb.WriteString("RULES FOR \"insights\" FIELDS (READ CAREFULLY):\n\n")
	sb.WriteString("1. \"risks\":\n")
	sb.WriteString("   - **STEP 1:** Look at the `dishName` (e.g., \"Almonds\") and the `ingredients` list (e.g., [\"Almonds\"]).\n")
	fmt.Fprintf(&sb, "   - **STEP 2:** Look at this *exact, complete, and final* ALLERGY_LIST: [%s].\n", allergyList)
	sb.WriteString("   - **STEP 3:** Compare STEP 1 to STEP 2. A risk is *only* triggered if a word from STEP 1 *exactly* matches a word from STEP 2 (case-insensitive).\n")
	sb.WriteString("   - **ABSOLUTE_RULE**: Do NOT infer relationships. If the food is \"Almonds\" and the allergy is \"Peanuts\", they DO NOT MATCH. Do not flag it. If the food is \"Soy Milk\" and the allergy is \"Milk\", they DO NOT MATCH.\n")
	sb.WriteString("   - **STEP 4:** Only if an *exact* match is found, add the risk string. (e.g., Food: \"Wheat Bread\", Allergy List: [\"Wheat\"] -> \"risks\": [\"HIGH RISK: Contains Wheat, which is on your ALLERGY_LIST.\"])\n")
	sb.WriteString("   - If no *exact* matches are found, return \"risks\": []\n\n")
	sb.WriteString("2. \"warnings\":\n")
	sb.WriteString("   - First, look at the `nutritionalBreakdown` (e.g., \"totalSodium\": 800.0).\n")
	fmt.Fprintf(&sb, "   - Second, compare this to the user's CONDITION_LIST: [%s] and \"Recent Blood Tests\".\n", conditionList)
	sb.WriteString("   - Third, add a \"WARNING:\" string for *every* nutritional value that is bad for those conditions.\n")
	sb.WriteString("   - Example: \"warnings\": [\"WARNING: The high sodium (800mg) is a concern for your Stroke condition.\"]\n")
	sb.WriteString("   - If no warnings, return \"warnings\": []\n\n")
	sb.WriteString("3. \"positives\":\n")
	sb.WriteString("   - List *all* significant positive nutritional facts. (e.g., \"POSITIVE: This is an excellent source of protein!\")\n")
	sb.WriteString("   - If AND ONLY IF the \"risks\" array AND the \"warnings\" array are both empty ([]), you MUST add one \"NEUTRAL:\" string to this array.\n")
	sb.WriteString("   - Example (if safe): \"positives\": [\"POSITIVE: Good source of fiber.\", \"NEUTRAL: This food poses no immediate risks or warnings for your health profile.\"]\n")
	sb.WriteString("   - Example (if not safe): \"positives\": [\"POSITIVE: Good source of fiber.\"]\n")
	sb.WriteString("   - If no positives and no risks/warnings, return \"positives\": [\"NEUTRAL: This food poses no immediate risks or warnings for your health profile.\"]")

	return sb.String()
}
