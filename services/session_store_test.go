package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
)

func TestSessionLifecycle(t *testing.T) {
	st := NewSessionStore()

	_, ok := st.Profile(7)
	assert.False(t, ok)

	st.Put(&models.PatientProfile{User: models.User{UserID: 7}, Name: "Alice"})
	profile, ok := st.Profile(7)
	require.True(t, ok)
	assert.Equal(t, "Alice", profile.Name)

	st.Clear(7)
	_, ok = st.Profile(7)
	assert.False(t, ok)
}

func TestMealLogCache(t *testing.T) {
	st := NewSessionStore()
	st.Put(&models.PatientProfile{User: models.User{UserID: 7}})

	_, ok := st.MealLog(7)
	assert.False(t, ok, "nothing cached yet")

	// a cached empty log is still a cache hit
	st.SetMealLog(7, nil)
	log, ok := st.MealLog(7)
	require.True(t, ok)
	assert.Empty(t, log)

	st.SetMealLog(7, []models.MealLog{{LogID: 1}})
	log, ok = st.MealLog(7)
	require.True(t, ok)
	assert.Len(t, log, 1)

	st.InvalidateMealLog(7)
	_, ok = st.MealLog(7)
	assert.False(t, ok)
}

func TestPutReplacesStaleCache(t *testing.T) {
	st := NewSessionStore()
	st.Put(&models.PatientProfile{User: models.User{UserID: 7}})
	st.SetMealLog(7, []models.MealLog{{LogID: 1}})

	// re-login rebuilds the session; the old meal cache must not survive
	st.Put(&models.PatientProfile{User: models.User{UserID: 7}})
	_, ok := st.MealLog(7)
	assert.False(t, ok)
}

func TestSetMealLogWithoutSessionIsNoop(t *testing.T) {
	st := NewSessionStore()
	st.SetMealLog(7, []models.MealLog{{LogID: 1}})
	_, ok := st.MealLog(7)
	assert.False(t, ok)
}
