package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type WorkoutHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewWorkoutHandler(db *gorm.DB, authHandler *auth.AuthHandler) *WorkoutHandler {
	return &WorkoutHandler{db: db, authHandler: authHandler, log: logging.WithComponent("workouts")}
}

func workoutOwner(w *models.Workout) string { return w.UserID }

type CreateWorkoutRequest struct {
	auth.AuthInput
	Body struct {
		Type     string    `json:"type" minLength:"1" doc:"Kind of workout, e.g. Running" required:"true"`
		Duration int       `json:"duration" minimum:"1" doc:"Duration in minutes" required:"true"`
		Calories float64   `json:"calories" minimum:"0" doc:"Calories burned" required:"true"`
		Date     time.Time `json:"date" required:"true"`
	}
}

type WorkoutResponse struct {
	Body models.Workout
}

func (h *WorkoutHandler) HandleCreate(ctx context.Context, input *CreateWorkoutRequest) (*WorkoutResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Body.Type) == "" {
		return nil, huma.Error400BadRequest("Workout type is required")
	}

	workout := models.Workout{
		UserID:   userID,
		Type:     strings.TrimSpace(input.Body.Type),
		Duration: input.Body.Duration,
		Calories: input.Body.Calories,
		Date:     input.Body.Date.UTC(),
	}
	if err := h.db.WithContext(ctx).Create(&workout).Error; err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create workout")
		return nil, huma.Error500InternalServerError("Failed to create workout")
	}

	return &WorkoutResponse{Body: workout}, nil
}

type ListWorkoutsRequest struct {
	auth.AuthInput
}

type ListWorkoutsResponse struct {
	Body []models.Workout
}

func (h *WorkoutHandler) HandleList(ctx context.Context, input *ListWorkoutsRequest) (*ListWorkoutsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	workouts := []models.Workout{}
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Find(&workouts).Error; err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list workouts")
		return nil, huma.Error500InternalServerError("Failed to list workouts")
	}

	return &ListWorkoutsResponse{Body: workouts}, nil
}

type WorkoutIDRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *WorkoutHandler) HandleGet(ctx context.Context, input *WorkoutIDRequest) (*WorkoutResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	workout, err := findOwned(ctx, h.db, h.log, input.ID, userID, workoutOwner, "Workout")
	if err != nil {
		return nil, err
	}
	return &WorkoutResponse{Body: *workout}, nil
}

type UpdateWorkoutRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		Type     *string    `json:"type,omitempty" minLength:"1"`
		Duration *int       `json:"duration,omitempty" minimum:"1"`
		Calories *float64   `json:"calories,omitempty" minimum:"0"`
		Date     *time.Time `json:"date,omitempty"`
	}
}

func (h *WorkoutHandler) HandleUpdate(ctx context.Context, input *UpdateWorkoutRequest) (*WorkoutResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	workout, err := findOwned(ctx, h.db, h.log, input.ID, userID, workoutOwner, "Workout")
	if err != nil {
		return nil, err
	}

	b := input.Body
	if b.Type != nil {
		workout.Type = strings.TrimSpace(*b.Type)
	}
	if b.Duration != nil {
		workout.Duration = *b.Duration
	}
	if b.Calories != nil {
		workout.Calories = *b.Calories
	}
	if b.Date != nil {
		workout.Date = b.Date.UTC()
	}

	if err := h.db.WithContext(ctx).Save(workout).Error; err != nil {
		h.log.Error().Err(err).Str("workout_id", workout.ID).Msg("Failed to update workout")
		return nil, huma.Error500InternalServerError("Failed to update workout")
	}
	return &WorkoutResponse{Body: *workout}, nil
}

func (h *WorkoutHandler) HandleDelete(ctx context.Context, input *WorkoutIDRequest) (*auth.MessageResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	workout, err := findOwned(ctx, h.db, h.log, input.ID, userID, workoutOwner, "Workout")
	if err != nil {
		return nil, err
	}
	if err := h.db.WithContext(ctx).Delete(workout).Error; err != nil {
		h.log.Error().Err(err).Str("workout_id", workout.ID).Msg("Failed to delete workout")
		return nil, huma.Error500InternalServerError("Failed to delete workout")
	}

	res := &auth.MessageResponse{}
	res.Body.Message = "Workout deleted"
	return res, nil
}
