package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/utils"
)

// AuthMiddleware validates the Bearer session token and requires a live
// server-side session for the patient it names. A valid token without a
// session (server restart, explicit logout) is treated as expired.
func AuthMiddleware(secret string, sessions *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		patientID, err := utils.ParseSessionToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		if _, ok := sessions.Profile(patientID); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
			return
		}

		c.Set("patientID", patientID)
		c.Next()
	}
}

// PatientID pulls the authenticated patient id set by AuthMiddleware.
func PatientID(c *gin.Context) int {
	return c.GetInt("patientID")
}
