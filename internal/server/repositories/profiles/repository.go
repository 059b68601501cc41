package profiles

import (
	"context"

	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

// Repository is the persistence contract for profile rows.
type Repository interface {
	// Put inserts the profile or fully replaces the row with the same id.
	Put(ctx context.Context, profile *models.Profile) error

	// Get returns the profile by exact id, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Profile, error)

	// IncrementScan atomically bumps scan_count for the row and returns the
	// new value, or common.ErrorNotFound if the row does not exist.
	IncrementScan(ctx context.Context, id string) (int64, error)

	// Search returns profiles whose id, name or email contains term,
	// case-insensitively, most recent first.
	Search(ctx context.Context, term string) ([]*models.Profile, error)

	// ListAll returns all profiles ordered by created_at descending.
	ListAll(ctx context.Context) ([]*models.Profile, error)
}
