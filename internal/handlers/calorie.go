package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/calorie"
)

type CalorieHandler struct {
	authHandler *auth.AuthHandler
}

func NewCalorieHandler(authHandler *auth.AuthHandler) *CalorieHandler {
	return &CalorieHandler{authHandler: authHandler}
}

type CalculateCaloriesRequest struct {
	auth.AuthInput
	Body struct {
		Weight   float64 `json:"weight" exclusiveMinimum:"0" doc:"Weight in kg" required:"true"`
		Height   float64 `json:"height" exclusiveMinimum:"0" doc:"Height in cm" required:"true"`
		Age      int     `json:"age" minimum:"1" required:"true"`
		Gender   string  `json:"gender" minLength:"1" required:"true"`
		Activity string  `json:"activity" minLength:"1" doc:"sedentary, light, moderate, active or veryactive" required:"true"`
	}
}

type CalculateCaloriesResponse struct {
	Body calorie.Result
}

func (h *CalorieHandler) HandleCalculate(ctx context.Context, input *CalculateCaloriesRequest) (*CalculateCaloriesResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}

	b := input.Body
	if b.Weight <= 0 || b.Height <= 0 || b.Age <= 0 || b.Gender == "" || b.Activity == "" {
		return nil, huma.Error400BadRequest("All fields are required")
	}
	return &CalculateCaloriesResponse{
		Body: calorie.Calculate(b.Weight, b.Height, b.Age, b.Gender, b.Activity),
	}, nil
}
