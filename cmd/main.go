package main

import (
	"log"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/config"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/controllers"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/routes"
	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sessions := services.NewSessionStore()
	tables := services.NewTableService(cfg.TableAPIBaseURL)
	hub := services.NewRealtimeHub()

	authService := services.NewAuthService(tables)
	profileService := services.NewProfileService(tables)
	visionService := services.NewVisionService(cfg.AnalysisAPIURL, cfg.AnalysisAPIKey, cfg.AnalysisModel)
	mealService := services.NewMealLogService(tables, sessions)
	goalService := services.NewGoalService(cfg.GoalsFile)
	dashboardService := services.NewDashboardService()

	ctrl := routes.Controllers{
		Auth:      controllers.NewAuthController(authService, profileService, sessions, cfg.JWTSecret),
		Analysis:  controllers.NewAnalysisController(visionService, sessions),
		Meals:     controllers.NewMealController(mealService, hub),
		Dashboard: controllers.NewDashboardController(mealService, goalService, dashboardService, sessions),
		Profile:   controllers.NewProfileController(sessions, goalService),
		Goals:     controllers.NewGoalController(goalService, hub),
		Realtime:  controllers.NewRealtimeController(hub),
	}

	r := routes.SetupRouter(ctrl, cfg.JWTSecret, sessions)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
