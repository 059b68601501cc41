package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/qrcontact/internal/dbx"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
	"github.com/dmitrijs2005/qrcontact/internal/server/repositories/repomanager"
)

// PostgresStore is the production directory store. Per-profile atomicity
// comes from row-level UPDATEs; the scan-count bump and the global counter
// bump are tied together in one transaction.
type PostgresStore struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &PostgresStore{db: db, rm: rm}, nil
}

// NewPostgresStoreWithDB wires an existing handle, skipping migrations.
// Used by tests.
func NewPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, rm: repomanager.NewPostgresRepositoryManager()}
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Put(ctx context.Context, profile *models.Profile) error {
	return s.rm.Profiles(s.db).Put(ctx, profile)
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.Profile, error) {
	return s.rm.Profiles(s.db).Get(ctx, id)
}

func (s *PostgresStore) IncrementScan(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.rm.Profiles(tx).IncrementScan(ctx, id); err != nil {
			return err
		}
		return s.rm.Counters(tx).AddScan(ctx)
	})
}

func (s *PostgresStore) Search(ctx context.Context, term string) ([]*models.Profile, error) {
	term, err := validateSearchTerm(term)
	if err != nil {
		return nil, err
	}
	return s.rm.Profiles(s.db).Search(ctx, term)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.Profile, error) {
	return s.rm.Profiles(s.db).ListAll(ctx)
}

func (s *PostgresStore) IncrementDisclosuresSent(ctx context.Context) error {
	return s.rm.Counters(s.db).AddDisclosure(ctx)
}

func (s *PostgresStore) Stats(ctx context.Context) (*models.Stats, error) {
	return s.rm.Counters(s.db).Snapshot(ctx)
}
