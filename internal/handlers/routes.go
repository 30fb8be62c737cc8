package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/config"
	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Auth          *auth.AuthHandler
	Achievements  *AchievementHandler
	Meals         *MealHandler
	Workouts      *WorkoutHandler
	Statistics    *StatisticsHandler
	Calories      *CalorieHandler
	Profiles      *ProfileHandler
	Follows       *FollowHandler
	Notifications *NotificationHandler
	Food          *FoodHandler
}

func bearer(o *huma.Operation) {
	o.Security = []map[string][]string{{"bearerAuth": {}}}
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

func tagged(tag string) func(o *huma.Operation) {
	return func(o *huma.Operation) {
		o.Tags = []string{tag}
	}
}

func RegisterRoutes(r *chi.Mux, cfg *config.Config, h Handlers) huma.API {
	log := logging.WithComponent("http")

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(middleware.Recoverer)
	if cfg.EnableCORS {
		r.Use(cors(cfg.FrontendURL))
	}
	r.Use(h.Auth.IdentifyMiddleware)
	if cfg.RateLimitRPS > 0 {
		r.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log).Handler)
	}

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("FitTrack API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, humaConfig)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	if cfg.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	// Auth
	authTag := tagged("Auth")
	huma.Post(api, "/api/auth/register", h.Auth.HandleRegister, authTag, created)
	huma.Post(api, "/api/auth/login", h.Auth.HandleLogin, authTag)
	huma.Post(api, "/api/auth/refresh-token", h.Auth.HandleRefresh, authTag)
	huma.Post(api, "/api/auth/logout", h.Auth.HandleLogout, authTag, bearer)
	huma.Get(api, "/api/auth/me", h.Auth.HandleMe, authTag, bearer)

	// Achievements
	achTag := tagged("Achievements")
	huma.Get(api, "/api/achievements", h.Achievements.HandleListAchievements, achTag)
	huma.Get(api, "/api/achievements/my", h.Achievements.HandleGetUserAchievements, achTag, bearer)
	huma.Post(api, "/api/achievements/check", h.Achievements.HandleCheckAchievements, achTag, bearer)

	// Meals
	mealTag := tagged("Meals")
	huma.Post(api, "/api/meals", h.Meals.HandleCreate, mealTag, bearer, created)
	huma.Get(api, "/api/meals", h.Meals.HandleList, mealTag, bearer)
	huma.Get(api, "/api/meals/{id}", h.Meals.HandleGet, mealTag, bearer)
	huma.Put(api, "/api/meals/{id}", h.Meals.HandleUpdate, mealTag, bearer)
	huma.Delete(api, "/api/meals/{id}", h.Meals.HandleDelete, mealTag, bearer)

	// Workouts
	workoutTag := tagged("Workouts")
	huma.Post(api, "/api/workouts", h.Workouts.HandleCreate, workoutTag, bearer, created)
	huma.Get(api, "/api/workouts", h.Workouts.HandleList, workoutTag, bearer)
	huma.Get(api, "/api/workouts/{id}", h.Workouts.HandleGet, workoutTag, bearer)
	huma.Put(api, "/api/workouts/{id}", h.Workouts.HandleUpdate, workoutTag, bearer)
	huma.Delete(api, "/api/workouts/{id}", h.Workouts.HandleDelete, workoutTag, bearer)

	// Statistics and calories
	statsTag := tagged("Statistics")
	huma.Get(api, "/api/statistics/daily", h.Statistics.HandleDaily, statsTag, bearer)
	huma.Get(api, "/api/statistics/weekly", h.Statistics.HandleWeekly, statsTag, bearer)
	huma.Get(api, "/api/statistics/monthly", h.Statistics.HandleMonthly, statsTag, bearer)
	huma.Post(api, "/api/calories/calculate", h.Calories.HandleCalculate, tagged("Calories"), bearer)

	// Profiles
	profileTag := tagged("Profiles")
	huma.Post(api, "/api/profile", h.Profiles.HandleCreate, profileTag, bearer, created)
	huma.Put(api, "/api/profile", h.Profiles.HandleUpdate, profileTag, bearer)
	huma.Get(api, "/api/profile/me", h.Profiles.HandleGetMine, profileTag, bearer)
	huma.Get(api, "/api/profile/public", h.Profiles.HandleListPublic, profileTag)
	huma.Get(api, "/api/profile/search", h.Profiles.HandleSearch, profileTag)

	// Follows
	followTag := tagged("Follows")
	huma.Post(api, "/api/follow/{followingId}", h.Follows.HandleFollow, followTag, bearer, created)
	huma.Delete(api, "/api/follow/{followingId}", h.Follows.HandleUnfollow, followTag, bearer)
	huma.Get(api, "/api/follow/followers", h.Follows.HandleFollowers, followTag, bearer)
	huma.Get(api, "/api/follow/following", h.Follows.HandleFollowing, followTag, bearer)
	huma.Get(api, "/api/follow/check/{followingId}", h.Follows.HandleCheck, followTag, bearer)

	// Notifications
	huma.Put(api, "/api/notifications/preferences", h.Notifications.HandleUpdatePreferences, tagged("Notifications"), bearer)

	// External food
	foodTag := tagged("External food")
	huma.Get(api, "/api/external-food/recipes/search", h.Food.HandleSearchRecipes, foodTag, bearer)
	huma.Get(api, "/api/external-food/recipes/random", h.Food.HandleRandomRecipes, foodTag, bearer)
	huma.Get(api, "/api/external-food/recipes/{id}", h.Food.HandleRecipe, foodTag, bearer)
	huma.Get(api, "/api/external-food/ingredients/search", h.Food.HandleSearchIngredients, foodTag, bearer)
	huma.Get(api, "/api/external-food/ingredients/{id}", h.Food.HandleIngredient, foodTag, bearer)

	return api
}
