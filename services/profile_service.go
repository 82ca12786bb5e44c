package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/utils"
)

// ProfileService merges five patient tables into one PatientProfile.
type ProfileService struct {
	tables *TableService
}

func NewProfileService(tables *TableService) *ProfileService {
	return &ProfileService{tables: tables}
}

type registrationRow struct {
	PatientID int      `json:"patient_id"`
	Name      string   `json:"name"`
	DOB       string   `json:"dob"`
	Gender    string   `json:"gender"`
	WeightKg  *float64 `json:"weight_kg"`
	HeightCm  *float64 `json:"height_cm"`
}

type vitalsRow struct {
	PatientID     int     `json:"patient_id"`
	BloodPressure string  `json:"blood_pressure"`
	HeartRate     int     `json:"heart_rate"`
	Temperature   float64 `json:"temperature"`
	RecordedOn    string  `json:"recorded_on"`
}

type bloodTestRow struct {
	PatientID   int    `json:"patient_id"`
	TestName    string `json:"test_name"`
	ResultValue string `json:"result_value"`
	Unit        string `json:"unit"`
	NormalRange string `json:"normal_range"`
	TestDate    string `json:"test_date"`
}

type allergyRow struct {
	PatientID int    `json:"patient_id"`
	Allergen  string `json:"allergen"`
	Severity  string `json:"severity"`
}

type diagnosticRow struct {
	PatientID   int    `json:"patient_id"`
	DiseaseType string `json:"disease_type"`
}

// Load fetches the five record sets concurrently and assembles the profile.
// Any sub-fetch failure fails the whole load; there is no partial profile.
func (s *ProfileService) Load(ctx context.Context, user models.User) (*models.PatientProfile, error) {
	var (
		reg        registrationRow
		vitals     models.Vitals
		tests      []models.BloodTest
		allergies  []models.Allergy
		conditions []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reg, err = s.fetchRegistration(ctx, user.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		vitals, err = s.fetchRecentVitals(ctx, user.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		tests, err = s.fetchBloodTests(ctx, user.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		allergies, err = s.fetchAllergies(ctx, user.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		conditions, err = s.fetchDiagnostics(ctx, user.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load patient profile: %w", err)
	}

	return &models.PatientProfile{
		User:                user,
		Name:                orNA(reg.Name),
		DOB:                 orNA(reg.DOB),
		Gender:              orNA(reg.Gender),
		WeightKg:            reg.WeightKg,
		HeightCm:            reg.HeightCm,
		RecentVitals:        vitals,
		RecentBloodTests:    tests,
		Allergies:           allergies,
		DiagnosedConditions: conditions,
	}, nil
}

// fetchRegistration returns the first row that actually belongs to the
// patient, or zero-value defaults when none does. The backend has been seen
// returning rows for other patients despite the query filter, so every row
// is re-checked here; the same applies to the other fetches below.
func (s *ProfileService) fetchRegistration(ctx context.Context, patientID int) (registrationRow, error) {
	var rows []registrationRow
	if err := s.tables.FetchRows(ctx, "patients_registration", patientID, &rows); err != nil {
		return registrationRow{}, err
	}
	for _, row := range rows {
		if row.PatientID == patientID {
			return row, nil
		}
	}
	return registrationRow{}, nil
}

// fetchRecentVitals keeps only the matching rows and selects the one with
// the maximum parsed recorded_on timestamp. Unparseable timestamps rank as
// zero; ties keep the first row seen.
func (s *ProfileService) fetchRecentVitals(ctx context.Context, patientID int) (models.Vitals, error) {
	var rows []vitalsRow
	if err := s.tables.FetchRows(ctx, "vitals_history", patientID, &rows); err != nil {
		return models.Vitals{}, err
	}

	var (
		best     *vitalsRow
		bestTime time.Time
	)
	for i := range rows {
		row := rows[i]
		if row.PatientID != patientID {
			continue
		}
		at := utils.VitalsRecordedAt(row.RecordedOn)
		if best == nil || at.After(bestTime) {
			best = &rows[i]
			bestTime = at
		}
	}

	if best == nil {
		return models.Vitals{BloodPressure: "N/A"}, nil
	}
	return models.Vitals{
		BloodPressure: orNA(best.BloodPressure),
		HeartRate:     best.HeartRate,
		Temperature:   best.Temperature,
	}, nil
}

func (s *ProfileService) fetchBloodTests(ctx context.Context, patientID int) ([]models.BloodTest, error) {
	var rows []bloodTestRow
	if err := s.tables.FetchRows(ctx, "bloodtests", patientID, &rows); err != nil {
		return nil, err
	}

	tests := make([]models.BloodTest, 0, len(rows))
	for _, row := range rows {
		if row.PatientID != patientID {
			continue
		}
		tests = append(tests, models.BloodTest{
			TestName:    row.TestName,
			ResultValue: row.ResultValue,
			Unit:        row.Unit,
			NormalRange: row.NormalRange,
			TestDate:    row.TestDate,
		})
	}
	return tests, nil
}

func (s *ProfileService) fetchAllergies(ctx context.Context, patientID int) ([]models.Allergy, error) {
	var rows []allergyRow
	if err := s.tables.FetchRows(ctx, "allergy_records", patientID, &rows); err != nil {
		return nil, err
	}

	allergies := make([]models.Allergy, 0, len(rows))
	for _, row := range rows {
		if row.PatientID != patientID {
			continue
		}
		allergies = append(allergies, models.Allergy{
			Allergen: row.Allergen,
			Severity: row.Severity,
		})
	}
	return allergies, nil
}

func (s *ProfileService) fetchDiagnostics(ctx context.Context, patientID int) ([]string, error) {
	var rows []diagnosticRow
	if err := s.tables.FetchRows(ctx, "ai_diagnostics", patientID, &rows); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.PatientID != patientID {
			continue
		}
		if row.DiseaseType == "" {
			row.DiseaseType = "Unknown"
		}
		conditions = append(conditions, row.DiseaseType)
	}
	return conditions, nil
}

func orNA(s string) string {
	if s == "" || s == "null" {
		return "N/A"
	}
	return s
}
