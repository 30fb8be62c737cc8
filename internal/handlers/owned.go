package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// findOwned loads the record with the given id and checks that it belongs to
// userID. Missing records are 404, records of another user are 403.
func findOwned[T any](ctx context.Context, db *gorm.DB, log zerolog.Logger, id, userID string, owner func(*T) string, what string) (*T, error) {
	var record T
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound(what + " not found")
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to load " + what)
		return nil, huma.Error500InternalServerError("Failed to load " + what)
	}
	if owner(&record) != userID {
		return nil, huma.Error403Forbidden("Access denied")
	}
	return &record, nil
}
