package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
)

func profileBackend(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
}

func TestProfileLoad(t *testing.T) {
	srv := profileBackend(t, map[string]string{
		"/patients_registration": `{"data":[
			{"patient_id":9,"name":"other","dob":"1990-01-01","gender":"F"},
			{"patient_id":7,"name":"Alice","dob":"1994-06-15","gender":"F","weight_kg":65,"height_cm":170}]}`,
		"/vitals_history": `{"data":[
			{"patient_id":7,"blood_pressure":"110/70","heart_rate":66,"recorded_on":"2024-03-01 08:00:00"},
			{"patient_id":7,"blood_pressure":"120/80","heart_rate":72,"recorded_on":"2024-03-05 08:00:00"},
			{"patient_id":7,"blood_pressure":"999/99","heart_rate":99,"recorded_on":"garbage"}]}`,
		"/bloodtests": `{"data":[
			{"patient_id":7,"test_name":"HbA1c","result_value":"5.4","unit":"%","normal_range":"4-5.6","test_date":"2024-02-20"},
			{"patient_id":8,"test_name":"LDL","result_value":"99","unit":"mg/dL","normal_range":"<100","test_date":"2024-02-20"}]}`,
		"/allergy_records": `{"data":[{"patient_id":7,"allergen":"Peanuts","severity":"severe"}]}`,
		"/ai_diagnostics":  `{"data":[{"patient_id":7,"disease_type":"Hypertension"},{"patient_id":7,"disease_type":""}]}`,
	})
	defer srv.Close()

	svc := NewProfileService(NewTableService(srv.URL))
	profile, err := svc.Load(context.Background(), models.User{UserID: 7, Email: "a@b.c", Username: "alice"})
	require.NoError(t, err)

	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, "1994-06-15", profile.DOB)
	require.NotNil(t, profile.WeightKg)
	assert.Equal(t, 65.0, *profile.WeightKg)

	// most recent parseable vitals row wins
	assert.Equal(t, "120/80", profile.RecentVitals.BloodPressure)
	assert.Equal(t, 72, profile.RecentVitals.HeartRate)

	// rows for other patients are dropped even though the filter was sent
	require.Len(t, profile.RecentBloodTests, 1)
	assert.Equal(t, "HbA1c", profile.RecentBloodTests[0].TestName)

	require.Len(t, profile.Allergies, 1)
	assert.Equal(t, "Peanuts", profile.Allergies[0].Allergen)

	assert.Equal(t, []string{"Hypertension", "Unknown"}, profile.DiagnosedConditions)
}

func TestProfileLoadNoRegistrationRow(t *testing.T) {
	srv := profileBackend(t, map[string]string{
		"/patients_registration": `{"data":[]}`,
		"/vitals_history":        `{"data":[]}`,
		"/bloodtests":            `{"data":[]}`,
		"/allergy_records":       `{"data":[]}`,
		"/ai_diagnostics":        `{"data":[]}`,
	})
	defer srv.Close()

	svc := NewProfileService(NewTableService(srv.URL))
	profile, err := svc.Load(context.Background(), models.User{UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, "N/A", profile.Name)
	assert.Equal(t, "N/A", profile.DOB)
	assert.Nil(t, profile.WeightKg)
	assert.Equal(t, "N/A", profile.RecentVitals.BloodPressure)
	assert.Empty(t, profile.RecentBloodTests)
}

func TestProfileLoadFailsWhole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bloodtests" {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	svc := NewProfileService(NewTableService(srv.URL))
	_, err := svc.Load(context.Background(), models.User{UserID: 7})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load patient profile")
}
