// Package users persists user records: credentials for locally managed
// accounts and cached identities for accounts owned by a delegated
// authentication authority.
package users

import (
	"context"

	"linkarchive/internal/server/models"
)

type Repository interface {
	// Create inserts a user with an already-encoded password hash.
	// A taken name yields *common.DuplicateNameError.
	Create(ctx context.Context, name, passwordHash string) (*models.User, error)

	// GetByID returns the user or common.ErrNotFound.
	GetByID(ctx context.Context, id uint32) (*models.User, error)

	// GetByName returns the user or common.ErrNotFound.
	GetByName(ctx context.Context, name string) (*models.User, error)

	// UpsertByName returns the user with the given name, inserting a
	// credential-less row first if the name has never been seen.
	UpsertByName(ctx context.Context, name string) (*models.User, error)
}
