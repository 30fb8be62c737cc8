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

type MealHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewMealHandler(db *gorm.DB, authHandler *auth.AuthHandler) *MealHandler {
	return &MealHandler{db: db, authHandler: authHandler, log: logging.WithComponent("meals")}
}

func mealOwner(m *models.Meal) string { return m.UserID }

type CreateMealRequest struct {
	auth.AuthInput
	Body struct {
		Name     string    `json:"name" minLength:"1" required:"true"`
		Calories float64   `json:"calories" minimum:"0" required:"true"`
		Protein  float64   `json:"protein" minimum:"0" required:"true"`
		Carbs    float64   `json:"carbs" minimum:"0" required:"true"`
		Fat      float64   `json:"fat" minimum:"0" required:"true"`
		Date     time.Time `json:"date" doc:"When the meal was eaten" required:"true"`
	}
}

type MealResponse struct {
	Body models.Meal
}

func (h *MealHandler) HandleCreate(ctx context.Context, input *CreateMealRequest) (*MealResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Body.Name) == "" {
		return nil, huma.Error400BadRequest("Meal name is required")
	}

	meal := models.Meal{
		UserID:   userID,
		Name:     strings.TrimSpace(input.Body.Name),
		Calories: input.Body.Calories,
		Protein:  input.Body.Protein,
		Carbs:    input.Body.Carbs,
		Fat:      input.Body.Fat,
		Date:     input.Body.Date.UTC(),
	}
	if err := h.db.WithContext(ctx).Create(&meal).Error; err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create meal")
		return nil, huma.Error500InternalServerError("Failed to create meal")
	}

	return &MealResponse{Body: meal}, nil
}

type ListMealsRequest struct {
	auth.AuthInput
}

type ListMealsResponse struct {
	Body []models.Meal
}

func (h *MealHandler) HandleList(ctx context.Context, input *ListMealsRequest) (*ListMealsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	meals := []models.Meal{}
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Find(&meals).Error; err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list meals")
		return nil, huma.Error500InternalServerError("Failed to list meals")
	}

	return &ListMealsResponse{Body: meals}, nil
}

type MealIDRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *MealHandler) HandleGet(ctx context.Context, input *MealIDRequest) (*MealResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	meal, err := findOwned(ctx, h.db, h.log, input.ID, userID, mealOwner, "Meal")
	if err != nil {
		return nil, err
	}
	return &MealResponse{Body: *meal}, nil
}

type UpdateMealRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		Name     *string    `json:"name,omitempty" minLength:"1"`
		Calories *float64   `json:"calories,omitempty" minimum:"0"`
		Protein  *float64   `json:"protein,omitempty" minimum:"0"`
		Carbs    *float64   `json:"carbs,omitempty" minimum:"0"`
		Fat      *float64   `json:"fat,omitempty" minimum:"0"`
		Date     *time.Time `json:"date,omitempty"`
	}
}

func (h *MealHandler) HandleUpdate(ctx context.Context, input *UpdateMealRequest) (*MealResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	meal, err := findOwned(ctx, h.db, h.log, input.ID, userID, mealOwner, "Meal")
	if err != nil {
		return nil, err
	}

	b := input.Body
	if b.Name != nil {
		meal.Name = strings.TrimSpace(*b.Name)
	}
	if b.Calories != nil {
		meal.Calories = *b.Calories
	}
	if b.Protein != nil {
		meal.Protein = *b.Protein
	}
	if b.Carbs != nil {
		meal.Carbs = *b.Carbs
	}
	if b.Fat != nil {
		meal.Fat = *b.Fat
	}
	if b.Date != nil {
		meal.Date = b.Date.UTC()
	}

	if err := h.db.WithContext(ctx).Save(meal).Error; err != nil {
		h.log.Error().Err(err).Str("meal_id", meal.ID).Msg("Failed to update meal")
		return nil, huma.Error500InternalServerError("Failed to update meal")
	}
	return &MealResponse{Body: *meal}, nil
}

func (h *MealHandler) HandleDelete(ctx context.Context, input *MealIDRequest) (*auth.MessageResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	meal, err := findOwned(ctx, h.db, h.log, input.ID, userID, mealOwner, "Meal")
	if err != nil {
		return nil, err
	}
	if err := h.db.WithContext(ctx).Delete(meal).Error; err != nil {
		h.log.Error().Err(err).Str("meal_id", meal.ID).Msg("Failed to delete meal")
		return nil, huma.Error500InternalServerError("Failed to delete meal")
	}

	res := &auth.MessageResponse{}
	res.Body.Message = "Meal deleted"
	return res, nil
}
