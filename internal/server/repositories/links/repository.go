// Package links persists stored bookmarks.
package links

import (
	"context"

	"linkarchive/internal/server/models"
)

type Repository interface {
	// Insert stores a URL for the user. Re-inserting a stored URL yields
	// *common.DuplicateURLError.
	Insert(ctx context.Context, userID uint32, url string) error

	// ListByUser returns all of the user's links, oldest first.
	ListByUser(ctx context.Context, userID uint32) ([]models.Link, error)
}
