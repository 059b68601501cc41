// Package directory holds the authoritative state of the contact exchange:
// profiles keyed by id plus the aggregate counters. It is the only component
// owning durable state; everything above it orchestrates.
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/qrcontact/internal/common"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

// Store is the directory contract. All per-key mutations are atomic with
// respect to concurrent callers on the same key.
type Store interface {
	// Put inserts or fully replaces the profile at profile.ID.
	Put(ctx context.Context, profile *models.Profile) error

	// Get returns the profile by exact id, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Profile, error)

	// IncrementScan bumps the profile's scan count and the global scan
	// counter in one atomic step. Returns common.ErrorNotFound if the
	// profile does not exist at call time.
	IncrementScan(ctx context.Context, id string) error

	// Search matches term case-insensitively as a substring of id, name or
	// email. An empty term is an input error, not an empty result.
	Search(ctx context.Context, term string) ([]*models.Profile, error)

	// ListAll returns every profile, most recently created first.
	ListAll(ctx context.Context) ([]*models.Profile, error)

	// IncrementDisclosuresSent bumps the disclosure counter. Called only
	// after a disclosure has actually been handed to the delivery port.
	IncrementDisclosuresSent(ctx context.Context) error

	// Stats returns a consistent snapshot of the aggregate counters.
	Stats(ctx context.Context) (*models.Stats, error)
}

func validateSearchTerm(term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", fmt.Errorf("%w: search term is required", common.ErrorValidation)
	}
	return term, nil
}
