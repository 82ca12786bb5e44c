package models

// PatientProfile is the merged patient record built once per login from five
// independently fetched tables. It is an immutable snapshot: never patched
// field-by-field after construction.
type PatientProfile struct {
	User     User     `json:"user"`
	Name     string   `json:"name"`
	DOB      string   `json:"dob"`
	Gender   string   `json:"gender"`
	WeightKg *float64 `json:"weight_kg"`
	HeightCm *float64 `json:"height_cm"`

	RecentVitals        Vitals      `json:"recent_vitals"`
	RecentBloodTests    []BloodTest `json:"recent_blood_tests"`
	Allergies           []Allergy   `json:"allergies"`
	DiagnosedConditions []string    `json:"diagnosed_conditions"`
}

// Vitals is the single most-recent reading from vitals_history.
type Vitals struct {
	BloodPressure string  `json:"blood_pressure"`
	HeartRate     int     `json:"heart_rate"`
	Temperature   float64 `json:"temperature"`
}

type BloodTest struct {
	TestName    string `json:"test_name"`
	ResultValue string `json:"result_value"`
	Unit        string `json:"unit"`
	NormalRange string `json:"normal_range"`
	TestDate    string `json:"test_date"`
}

type Allergy struct {
	Allergen string `json:"allergen"`
	Severity string `json:"severity"`
}
