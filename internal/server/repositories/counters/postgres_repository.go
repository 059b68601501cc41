package counters

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/qrcontact/internal/dbx"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AddScan(ctx context.Context) error {

	query := `UPDATE counters SET total_scans = total_scans + 1 WHERE id = 1`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AddDisclosure(ctx context.Context) error {

	query := `UPDATE counters SET total_disclosures_sent = total_disclosures_sent + 1 WHERE id = 1`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Snapshot(ctx context.Context) (*models.Stats, error) {

	// Single statement: the user count and the counters row are read in the
	// same snapshot, so the triple is never torn.
	query :=
		`SELECT (SELECT COUNT(*) FROM profiles), total_scans, total_disclosures_sent
		 FROM counters WHERE id = 1`

	s := &models.Stats{}
	err := r.db.QueryRowContext(ctx, query).Scan(&s.TotalUsers, &s.TotalScans, &s.TotalDisclosuresSent)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}
