package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/qrcontact/internal/common"
	"github.com/dmitrijs2005/qrcontact/internal/dbx"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const profileColumns = `id, token, name, email, phone, company, title, website, created_at, scan_count`

func (r *PostgresRepository) Put(ctx context.Context, p *models.Profile) error {

	query :=
		`INSERT INTO profiles (id, token, name, email, phone, company, title, website, created_at, scan_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
		   token = EXCLUDED.token,
		   name = EXCLUDED.name,
		   email = EXCLUDED.email,
		   phone = EXCLUDED.phone,
		   company = EXCLUDED.company,
		   title = EXCLUDED.title,
		   website = EXCLUDED.website,
		   created_at = EXCLUDED.created_at,
		   scan_count = EXCLUDED.scan_count
		 `

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Token, p.Name, p.Email, p.Phone, p.Company, p.Title, p.Website, p.CreatedAt, p.ScanCount)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Profile, error) {

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Token, &p.Name, &p.Email, &p.Phone, &p.Company, &p.Title, &p.Website, &p.CreatedAt, &p.ScanCount)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) IncrementScan(ctx context.Context, id string) (int64, error) {

	query :=
		`UPDATE profiles SET scan_count = scan_count + 1
		 WHERE id = $1
		 RETURNING scan_count`

	var count int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&count)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

// escapeLike neutralizes LIKE metacharacters so a search term is always
// treated as a literal substring.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, `%`, `\%`)
	term = strings.ReplaceAll(term, `_`, `\_`)
	return term
}

func (r *PostgresRepository) Search(ctx context.Context, term string) ([]*models.Profile, error) {

	query :=
		`SELECT ` + profileColumns + ` FROM profiles
		 WHERE id ILIKE $1 OR name ILIKE $1 OR email ILIKE $1
		 ORDER BY created_at DESC`

	pattern := "%" + escapeLike(term) + "%"

	rows, err := r.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Profile, error) {

	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func scanProfiles(rows *sql.Rows) ([]*models.Profile, error) {
	result := []*models.Profile{}
	for rows.Next() {
		p := &models.Profile{}
		if err := rows.Scan(
			&p.ID, &p.Token, &p.Name, &p.Email, &p.Phone, &p.Company, &p.Title, &p.Website, &p.CreatedAt, &p.ScanCount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
