package counters

import (
	"context"

	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

// Repository maintains the single aggregate-counters row. total_users is not
// stored: it is always derived from the profiles table inside Snapshot, so
// it can never drift from the actual row count.
type Repository interface {
	// AddScan atomically bumps total_scans by one.
	AddScan(ctx context.Context) error

	// AddDisclosure atomically bumps total_disclosures_sent by one.
	AddDisclosure(ctx context.Context) error

	// Snapshot returns a consistent view of all three counters.
	Snapshot(ctx context.Context) (*models.Stats, error)
}
