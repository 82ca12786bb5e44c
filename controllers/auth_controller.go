package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/middlewares"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/utils"
)

type AuthController struct {
	auth     *services.AuthService
	profiles *services.ProfileService
	sessions *services.SessionStore
	secret   string
}

func NewAuthController(auth *services.AuthService, profiles *services.ProfileService, sessions *services.SessionStore, secret string) *AuthController {
	return &AuthController{auth: auth, profiles: profiles, sessions: sessions, secret: secret}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials, then aggregates the full patient profile
// before issuing a token. If the profile cannot be loaded the login fails
// as a whole; no session is created from a partial profile.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := ac.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to verify credentials"})
		return
	}

	profile, err := ac.profiles.Load(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "login successful, but failed to load patient data"})
		return
	}

	token, err := utils.GenerateSessionToken(user.UserID, ac.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session token"})
		return
	}

	ac.sessions.Put(profile)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"name":  profile.Name,
	})
}

// Logout drops the server-side session; the token becomes useless even
// before it expires.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.sessions.Clear(middlewares.PatientID(c))
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
