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

type FollowHandler struct {
	social      *social.Service
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewFollowHandler(svc *social.Service, authHandler *auth.AuthHandler) *FollowHandler {
	return &FollowHandler{social: svc, authHandler: authHandler, log: logging.WithComponent("follows")}
}

type FollowTargetRequest struct {
	auth.AuthInput
	FollowingID string `path:"followingId" doc:"ID of the user to follow"`
}

type FollowResponse struct {
	Body struct {
		Message string         `json:"message"`
		Follow  *models.Follow `json:"follow"`
	}
}

func (h *FollowHandler) HandleFollow(ctx context.Context, input *FollowTargetRequest) (*FollowResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	follow, err := h.social.Follow(ctx, userID, input.FollowingID)
	switch {
	case errors.Is(err, social.ErrSelfFollow):
		return nil, huma.Error400BadRequest("Cannot follow yourself")
	case errors.Is(err, social.ErrUserNotFound):
		return nil, huma.Error404NotFound("User not found")
	case errors.Is(err, social.ErrPrivateProfile):
		return nil, huma.Error403Forbidden("Cannot follow private profile")
	case errors.Is(err, social.ErrAlreadyFollowing):
		return nil, huma.Error409Conflict("Already following this user")
	case err != nil:
		h.log.Error().Err(err).Str("user_id", userID).Str("following_id", input.FollowingID).Msg("Failed to follow user")
		return nil, huma.Error500InternalServerError("Failed to follow user")
	}

	res := &FollowResponse{}
	res.Body.Message = "Successfully followed user"
	res.Body.Follow = follow
	return res, nil
}

func (h *FollowHandler) HandleUnfollow(ctx context.Context, input *FollowTargetRequest) (*auth.MessageResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	err = h.social.Unfollow(ctx, userID, input.FollowingID)
	if errors.Is(err, social.ErrNotFollowing) {
		return nil, huma.Error404NotFound("Not following this user")
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Str("following_id", input.FollowingID).Msg("Failed to unfollow user")
		return nil, huma.Error500InternalServerError("Failed to unfollow user")
	}

	res := &auth.MessageResponse{}
	res.Body.Message = "Successfully unfollowed user"
	return res, nil
}

type FollowListRequest struct {
	auth.AuthInput
	PageQuery
}

type FollowListResponse struct {
	Body social.Page[models.Follow]
}

func (h *FollowHandler) HandleFollowers(ctx context.Context, input *FollowListRequest) (*FollowListResponse, error) {
	return h.list(ctx, input, h.social.Followers)
}

func (h *FollowHandler) HandleFollowing(ctx context.Context, input *FollowListRequest) (*FollowListResponse, error) {
	return h.list(ctx, input, h.social.Following)
}

func (h *FollowHandler) list(
	ctx context.Context,
	input *FollowListRequest,
	fn func(context.Context, string, social.Pagination) (social.Page[models.Follow], error),
) (*FollowListResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	page, err := fn(ctx, userID, input.pagination())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list follows")
		return nil, huma.Error500InternalServerError("Failed to list follows")
	}
	return &FollowListResponse{Body: page}, nil
}

type FollowStatusResponse struct {
	Body struct {
		IsFollowing bool `json:"isFollowing"`
	}
}

func (h *FollowHandler) HandleCheck(ctx context.Context, input *FollowTargetRequest) (*FollowStatusResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	following, err := h.social.IsFollowing(ctx, userID, input.FollowingID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to check follow status")
		return nil, huma.Error500InternalServerError("Failed to check follow status")
	}

	res := &FollowStatusResponse{}
	res.Body.IsFollowing = following
	return res, nil
}
