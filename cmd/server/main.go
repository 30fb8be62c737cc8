package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/fittrack-api/internal/achievement"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/config"
	"github.com/gdg-garage/fittrack-api/internal/database"
	"github.com/gdg-garage/fittrack-api/internal/food"
	"github.com/gdg-garage/fittrack-api/internal/handlers"
	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/notifier"
	"github.com/gdg-garage/fittrack-api/internal/social"
	"github.com/gdg-garage/fittrack-api/internal/statistics"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "FitTrack API - nutrition and fitness tracking backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the achievement catalog into the database and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		svc := newAchievementService(db)
		if err := svc.Seed(cmd.Context()); err != nil {
			return err
		}
		logging.Logger.Info().Msg("Achievement catalog is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		JSONOutput: cfg.LogJSON,
	})

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newAchievementService(db *gorm.DB) *achievement.Service {
	return achievement.NewService(database.NewAchievementStore(db), achievement.DefaultDefinitions, achievement.DefaultRules)
}

// newNotifier returns a Discord notifier when a bot token is configured.
// Direct messages go through the REST API, so no gateway session is opened.
func newNotifier(cfg *config.Config) notifier.Notifier {
	log := logging.WithComponent("notifier")
	if cfg.DiscordBotToken == "" {
		log.Info().Msg("DISCORD_BOT_TOKEN not set, notifications are logged only")
		return notifier.LogNotifier{Log: log}
	}

	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		log.Error().Err(err).Msg("Discord notifier not initialized")
		return notifier.LogNotifier{Log: log}
	}
	return notifier.NewDiscordNotifier(session)
}

func serve(ctx context.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	log := logging.WithComponent("server")

	achievements := newAchievementService(db)
	if err := achievements.Init(ctx); err != nil {
		// Evaluation binds lazily, so the API can still start.
		log.Error().Err(err).Msg("Failed to initialize achievements")
	}

	stats := statistics.NewService(db)
	socialSvc := social.NewService(db)

	scheduler := notifier.NewScheduler(db, stats, newNotifier(cfg))
	if cfg.EnableReminders {
		if err := scheduler.ScheduleAll(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to schedule notifications")
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	authHandler := auth.NewAuthHandler(cfg, db)
	foodClient := &food.Client{APIKey: cfg.SpoonacularAPIKey, BaseURL: cfg.SpoonacularURL}

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, handlers.Handlers{
		Auth:          authHandler,
		Achievements:  handlers.NewAchievementHandler(achievements, authHandler),
		Meals:         handlers.NewMealHandler(db, authHandler),
		Workouts:      handlers.NewWorkoutHandler(db, authHandler),
		Statistics:    handlers.NewStatisticsHandler(stats, authHandler),
		Calories:      handlers.NewCalorieHandler(authHandler),
		Profiles:      handlers.NewProfileHandler(socialSvc, authHandler),
		Follows:       handlers.NewFollowHandler(socialSvc, authHandler),
		Notifications: handlers.NewNotificationHandler(scheduler, authHandler),
		Food:          handlers.NewFoodHandler(foodClient, authHandler),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
