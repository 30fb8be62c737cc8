package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/statistics"
	"github.com/rs/zerolog"
)

type StatisticsHandler struct {
	stats       *statistics.Service
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewStatisticsHandler(stats *statistics.Service, authHandler *auth.AuthHandler) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, authHandler: authHandler, log: logging.WithComponent("statistics")}
}

// parseDate accepts a calendar date (2024-03-10) or an RFC 3339 timestamp.
// Calendar dates are taken as UTC midnight.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

type DailyStatisticsRequest struct {
	auth.AuthInput
	Date string `query:"date" doc:"Day to summarize (YYYY-MM-DD or RFC 3339)"`
}

type WeeklyStatisticsRequest struct {
	auth.AuthInput
	StartDate string `query:"startDate" doc:"First day of the range (YYYY-MM-DD or RFC 3339)"`
}

type StatisticsResponse struct {
	Body statistics.Summary
}

func (h *StatisticsHandler) HandleDaily(ctx context.Context, input *DailyStatisticsRequest) (*StatisticsResponse, error) {
	return h.summarize(ctx, input.Authorization, input.Date, "date", h.stats.Daily)
}

func (h *StatisticsHandler) HandleWeekly(ctx context.Context, input *WeeklyStatisticsRequest) (*StatisticsResponse, error) {
	return h.summarize(ctx, input.Authorization, input.StartDate, "startDate", h.stats.Weekly)
}

func (h *StatisticsHandler) HandleMonthly(ctx context.Context, input *WeeklyStatisticsRequest) (*StatisticsResponse, error) {
	return h.summarize(ctx, input.Authorization, input.StartDate, "startDate", h.stats.Monthly)
}

func (h *StatisticsHandler) summarize(
	ctx context.Context,
	authorization, rawDate, param string,
	fn func(context.Context, string, time.Time) (statistics.Summary, error),
) (*StatisticsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, authorization)
	if err != nil {
		return nil, err
	}
	if rawDate == "" {
		return nil, huma.Error400BadRequest(param + " is required")
	}
	date, ok := parseDate(rawDate)
	if !ok {
		return nil, huma.Error400BadRequest("Invalid " + param)
	}

	summary, err := fn(ctx, userID, date)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to compute statistics")
		return nil, huma.Error500InternalServerError("Failed to compute statistics")
	}
	return &StatisticsResponse{Body: summary}, nil
}
