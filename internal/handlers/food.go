package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/food"
	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/rs/zerolog"
)

// FoodSource is the recipe and ingredient catalog behind /api/external-food.
type FoodSource interface {
	SearchRecipes(ctx context.Context, s food.RecipeSearch) (json.RawMessage, error)
	RecipeByID(ctx context.Context, id int) (json.RawMessage, error)
	RandomRecipes(ctx context.Context, number int, tags string) (json.RawMessage, error)
	SearchIngredients(ctx context.Context, query string, number int) (json.RawMessage, error)
	IngredientByID(ctx context.Context, id int) (json.RawMessage, error)
}

type FoodHandler struct {
	source      FoodSource
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewFoodHandler(source FoodSource, authHandler *auth.AuthHandler) *FoodHandler {
	return &FoodHandler{source: source, authHandler: authHandler, log: logging.WithComponent("food")}
}

type RawJSONResponse struct {
	Body json.RawMessage
}

type SearchRecipesRequest struct {
	auth.AuthInput
	Query        string `query:"query" doc:"Free-text recipe search"`
	Number       int    `query:"number" minimum:"0" maximum:"100"`
	Offset       int    `query:"offset" minimum:"0"`
	Type         string `query:"type" doc:"Dish type, e.g. main course"`
	Cuisine      string `query:"cuisine"`
	Diet         string `query:"diet"`
	Intolerances string `query:"intolerances"`
}

func (h *FoodHandler) HandleSearchRecipes(ctx context.Context, input *SearchRecipesRequest) (*RawJSONResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}
	if input.Query == "" {
		return nil, huma.Error400BadRequest("query is required")
	}

	return h.respond(h.source.SearchRecipes(ctx, food.RecipeSearch{
		Query:        input.Query,
		Number:       input.Number,
		Offset:       input.Offset,
		Type:         input.Type,
		Cuisine:      input.Cuisine,
		Diet:         input.Diet,
		Intolerances: input.Intolerances,
	}))
}

type FoodIDRequest struct {
	auth.AuthInput
	ID int `path:"id" minimum:"1"`
}

func (h *FoodHandler) HandleRecipe(ctx context.Context, input *FoodIDRequest) (*RawJSONResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}
	return h.respond(h.source.RecipeByID(ctx, input.ID))
}

type RandomRecipesRequest struct {
	auth.AuthInput
	Number int    `query:"number" minimum:"0" maximum:"100"`
	Tags   string `query:"tags" doc:"Comma-separated tags, e.g. vegetarian,dessert"`
}

func (h *FoodHandler) HandleRandomRecipes(ctx context.Context, input *RandomRecipesRequest) (*RawJSONResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}
	return h.respond(h.source.RandomRecipes(ctx, input.Number, input.Tags))
}

type SearchIngredientsRequest struct {
	auth.AuthInput
	Query  string `query:"query"`
	Number int    `query:"number" minimum:"0" maximum:"100"`
}

func (h *FoodHandler) HandleSearchIngredients(ctx context.Context, input *SearchIngredientsRequest) (*RawJSONResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}
	if input.Query == "" {
		return nil, huma.Error400BadRequest("query is required")
	}
	return h.respond(h.source.SearchIngredients(ctx, input.Query, input.Number))
}

func (h *FoodHandler) HandleIngredient(ctx context.Context, input *FoodIDRequest) (*RawJSONResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}
	return h.respond(h.source.IngredientByID(ctx, input.ID))
}

func (h *FoodHandler) respond(body json.RawMessage, err error) (*RawJSONResponse, error) {
	if err == nil {
		return &RawJSONResponse{Body: body}, nil
	}

	var apiErr *food.APIError
	switch {
	case errors.Is(err, food.ErrMissingAPIKey):
		return nil, huma.Error503ServiceUnavailable("External food service is not configured")
	case errors.As(err, &apiErr):
		h.log.Warn().Int("status", apiErr.Status).Str("message", apiErr.Message).Msg("Spoonacular request failed")
		msg := apiErr.Message
		if msg == "" {
			msg = "External food service request failed"
		}
		return nil, huma.Error502BadGateway(msg)
	default:
		h.log.Error().Err(err).Msg("Spoonacular request failed")
		return nil, huma.Error502BadGateway("External food service request failed")
	}
}
