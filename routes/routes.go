package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/controllers"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/middlewares"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
)

// Controllers bundles the route handlers for router setup.
type Controllers struct {
	Auth      *controllers.AuthController
	Analysis  *controllers.AnalysisController
	Meals     *controllers.MealController
	Dashboard *controllers.DashboardController
	Profile   *controllers.ProfileController
	Goals     *controllers.GoalController
	Realtime  *controllers.RealtimeController
}

// SetupRouter wires all endpoints. Everything under /api requires a valid
// session token.
func SetupRouter(ctrl Controllers, jwtSecret string, sessions *services.SessionStore) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", ctrl.Auth.Login)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(jwtSecret, sessions))
	{
		api.POST("/auth/logout", ctrl.Auth.Logout)

		api.GET("/profile", ctrl.Profile.Show)
		api.GET("/dashboard/today", ctrl.Dashboard.Today)

		api.GET("/goals", ctrl.Goals.Get)
		api.PUT("/goals", ctrl.Goals.Update)

		api.POST("/analysis", ctrl.Analysis.Analyze)

		api.GET("/meals", ctrl.Meals.List)
		api.GET("/meals/:id", ctrl.Meals.Detail)
		api.POST("/meals", ctrl.Meals.LogMeal)

		api.GET("/ws", ctrl.Realtime.Connect)
	}

	return r
}
