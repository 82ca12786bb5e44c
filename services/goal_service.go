package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
)

// GoalService persists the per-patient daily targets in a local JSON file,
// one entry per patient id. Fields left unset are stored as null and
// resolved to defaults only at read time, so clearing one goal never
// disturbs another.
type GoalService struct {
	mu   sync.Mutex
	path string
}

func NewGoalService(path string) *GoalService {
	return &GoalService{path: path}
}

// Get reads the stored goals for one patient. A missing file or an absent
// entry means nothing was configured yet; every field falls back to its
// default via Goals.Effective.
func (s *GoalService) Get(patientID int) (models.Goals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return models.Goals{}, err
	}
	return all[strconv.Itoa(patientID)], nil
}

// Save replaces one patient's stored goals wholesale, leaving every other
// patient's entry untouched.
func (s *GoalService) Save(patientID int, goals models.Goals) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}
	all[strconv.Itoa(patientID)] = goals

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal goals: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write goals file: %w", err)
	}
	return nil
}

// readAll loads the whole patient-keyed map. Callers must hold the mutex.
func (s *GoalService) readAll() (map[string]models.Goals, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]models.Goals{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read goals file: %w", err)
	}

	var all map[string]models.Goals
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse goals file: %w", err)
	}
	if all == nil {
		all = map[string]models.Goals{}
	}
	return all, nil
}
