package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/gdg-garage/fittrack-api/internal/social"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	social      *social.Service
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewProfileHandler(svc *social.Service, authHandler *auth.AuthHandler) *ProfileHandler {
	return &ProfileHandler{social: svc, authHandler: authHandler, log: logging.WithComponent("profiles")}
}

type ProfileBody struct {
	Username *string `json:"username,omitempty" minLength:"1" maxLength:"50"`
	Bio      *string `json:"bio,omitempty" maxLength:"500"`
	Avatar   *string `json:"avatar,omitempty" doc:"Avatar image URL"`
	IsPublic *bool   `json:"isPublic,omitempty"`
}

func (b ProfileBody) input() social.ProfileInput {
	return social.ProfileInput{Username: b.Username, Bio: b.Bio, Avatar: b.Avatar, IsPublic: b.IsPublic}
}

type ProfileRequest struct {
	auth.AuthInput
	Body ProfileBody
}

type ProfileMessageResponse struct {
	Body struct {
		Message string          `json:"message"`
		Profile *models.Profile `json:"profile"`
	}
}

func (h *ProfileHandler) HandleCreate(ctx context.Context, input *ProfileRequest) (*ProfileMessageResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	profile, err := h.social.CreateProfile(ctx, userID, input.Body.input())
	switch {
	case errors.Is(err, social.ErrUsernameRequired):
		return nil, huma.Error400BadRequest("Username is required")
	case errors.Is(err, social.ErrProfileExists):
		return nil, huma.Error409Conflict("Profile already exists")
	case err != nil:
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create profile")
		return nil, huma.Error500InternalServerError("Failed to create profile")
	}

	res := &ProfileMessageResponse{}
	res.Body.Message = "Profile created successfully"
	res.Body.Profile = profile
	return res, nil
}

func (h *ProfileHandler) HandleUpdate(ctx context.Context, input *ProfileRequest) (*ProfileMessageResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	profile, err := h.social.UpdateProfile(ctx, userID, input.Body.input())
	switch {
	case errors.Is(err, social.ErrUsernameRequired):
		return nil, huma.Error400BadRequest("Username cannot be empty")
	case errors.Is(err, social.ErrProfileNotFound):
		return nil, huma.Error404NotFound("Profile not found")
	case err != nil:
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		return nil, huma.Error500InternalServerError("Failed to update profile")
	}

	res := &ProfileMessageResponse{}
	res.Body.Message = "Profile updated successfully"
	res.Body.Profile = profile
	return res, nil
}

type MyProfileRequest struct {
	auth.AuthInput
}

type MyProfileResponse struct {
	Body *models.Profile
}

func (h *ProfileHandler) HandleGetMine(ctx context.Context, input *MyProfileRequest) (*MyProfileResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	profile, err := h.social.GetProfile(ctx, userID)
	if errors.Is(err, social.ErrProfileNotFound) {
		return nil, huma.Error404NotFound("Profile not found")
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to get profile")
		return nil, huma.Error500InternalServerError("Failed to get profile")
	}
	return &MyProfileResponse{Body: profile}, nil
}

type PageQuery struct {
	Page  int `query:"page" minimum:"1" default:"1"`
	Limit int `query:"limit" minimum:"1" maximum:"100" default:"10"`
}

func (q PageQuery) pagination() social.Pagination {
	return social.Pagination{Page: q.Page, Limit: q.Limit}
}

type PublicProfilesRequest struct {
	PageQuery
}

type SearchProfilesRequest struct {
	PageQuery
	Query string `query:"query" doc:"Case-insensitive text matched against username and bio"`
}

type ProfilesResponse struct {
	Body social.Page[models.Profile]
}

// HandleListPublic is open to anonymous visitors.
func (h *ProfileHandler) HandleListPublic(ctx context.Context, input *PublicProfilesRequest) (*ProfilesResponse, error) {
	page, err := h.social.PublicProfiles(ctx, input.pagination())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list public profiles")
		return nil, huma.Error500InternalServerError("Failed to list profiles")
	}
	return &ProfilesResponse{Body: page}, nil
}

func (h *ProfileHandler) HandleSearch(ctx context.Context, input *SearchProfilesRequest) (*ProfilesResponse, error) {
	if input.Query == "" {
		return nil, huma.Error400BadRequest("query is required")
	}

	page, err := h.social.SearchProfiles(ctx, input.Query, input.pagination())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to search profiles")
		return nil, huma.Error500InternalServerError("Failed to search profiles")
	}
	return &ProfilesResponse{Body: page}, nil
}
