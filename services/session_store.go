package services

import (
	"sync"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
)

// SessionStore owns per-patient session state: the profile snapshot built at
// login and the one-shot meal-log cache. Sessions are created on login and
// removed on logout; the meal cache is either fully present or absent, never
// partially refreshed.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int]*session
}

type session struct {
	profile *models.PatientProfile
	mealLog []models.MealLog // nil means "not cached"
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int]*session)}
}

// Put installs a fresh session for the profile's patient, replacing any
// previous one (and with it any stale meal cache).
func (st *SessionStore) Put(profile *models.PatientProfile) {
	st.mu.Lock()
	st.sessions[profile.User.UserID] = &session{profile: profile}
	st.mu.Unlock()
}

// Profile returns the session profile, or false when no session exists.
func (st *SessionStore) Profile(patientID int) (*models.PatientProfile, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[patientID]
	if !ok {
		return nil, false
	}
	return s.profile, true
}

// Clear drops the session entirely (logout).
func (st *SessionStore) Clear(patientID int) {
	st.mu.Lock()
	delete(st.sessions, patientID)
	st.mu.Unlock()
}

// MealLog returns the cached meal log, or false when nothing is cached.
func (st *SessionStore) MealLog(patientID int) ([]models.MealLog, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[patientID]
	if !ok || s.mealLog == nil {
		return nil, false
	}
	return s.mealLog, true
}

// SetMealLog caches a freshly fetched meal log for the session.
func (st *SessionStore) SetMealLog(patientID int, log []models.MealLog) {
	st.mu.Lock()
	if s, ok := st.sessions[patientID]; ok {
		if log == nil {
			log = []models.MealLog{}
		}
		s.mealLog = log
	}
	st.mu.Unlock()
}

// InvalidateMealLog clears the cache so the next read re-fetches; called
// after a new meal is logged.
func (st *SessionStore) InvalidateMealLog(patientID int) {
	st.mu.Lock()
	if s, ok := st.sessions[patientID]; ok {
		s.mealLog = nil
	}
	st.mu.Unlock()
}
