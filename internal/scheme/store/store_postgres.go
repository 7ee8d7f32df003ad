package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"govassist/internal/scheme/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
)

// Postgres persists schemes in PostgreSQL. Criteria and benefits live in
// JSONB columns and round-trip through the store untouched.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed scheme store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const schemeColumns = `id, code, name, description, criteria, benefits,
	validity_start_date, validity_end_date, created_at, updated_at`

func (s *Postgres) Get(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+schemeColumns+` FROM schemes WHERE id = $1`, schemeID.String())
	scheme, err := scanScheme(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get scheme: %w", err)
	}
	return scheme, nil
}

func (s *Postgres) ListAll(ctx context.Context, filter ListFilter) ([]models.Scheme, error) {
	query, args := buildListQuery(filter, "")
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()
	return collectSchemes(rows)
}

func (s *Postgres) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Scheme, int, error) {
	countQuery, countArgs := buildCountQuery(filter)
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count schemes: %w", err)
	}

	query, args := buildListQuery(filter, fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list schemes page: %w", err)
	}
	defer rows.Close()

	schemes, err := collectSchemes(rows)
	if err != nil {
		return nil, 0, err
	}
	return schemes, total, nil
}

func (s *Postgres) Create(ctx context.Context, scheme *models.Scheme) error {
	query := `
		INSERT INTO schemes (` + schemeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		scheme.ID.String(),
		scheme.Code,
		scheme.Name,
		scheme.Description,
		[]byte(scheme.Criteria),
		[]byte(scheme.Benefits),
		scheme.ValidityStartDate,
		scheme.ValidityEndDate,
		scheme.CreatedAt,
		scheme.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "23505") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert scheme: %w", err)
	}
	return nil
}

func (s *Postgres) CountByCode(ctx context.Context, code string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schemes WHERE code = $1`, code).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count schemes by code: %w", err)
	}
	return count, nil
}

func buildListQuery(filter ListFilter, suffix string) (string, []any) {
	query := `SELECT ` + schemeColumns + ` FROM schemes`
	var args []any
	if filter.ValidAt != nil {
		query += ` WHERE validity_start_date <= $1
			AND (validity_end_date IS NULL OR validity_end_date >= $1)`
		args = append(args, *filter.ValidAt)
	}
	query += ` ORDER BY validity_start_date, name` + suffix
	return query, args
}

func buildCountQuery(filter ListFilter) (string, []any) {
	query := `SELECT COUNT(*) FROM schemes`
	var args []any
	if filter.ValidAt != nil {
		query += ` WHERE validity_start_date <= $1
			AND (validity_end_date IS NULL OR validity_end_date >= $1)`
		args = append(args, *filter.ValidAt)
	}
	return query, args
}

func collectSchemes(rows *sql.Rows) ([]models.Scheme, error) {
	var schemes []models.Scheme
	for rows.Next() {
		scheme, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheme: %w", err)
		}
		schemes = append(schemes, *scheme)
	}
	return schemes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScheme(row rowScanner) (*models.Scheme, error) {
	var scheme models.Scheme
	var schemeID string
	var criteria, benefits []byte
	var endDate sql.NullTime

	err := row.Scan(
		&schemeID,
		&scheme.Code,
		&scheme.Name,
		&scheme.Description,
		&criteria,
		&benefits,
		&scheme.ValidityStartDate,
		&endDate,
		&scheme.CreatedAt,
		&scheme.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := id.ParseSchemeID(schemeID)
	if err != nil {
		return nil, err
	}
	scheme.ID = parsed
	scheme.Criteria = criteria
	scheme.Benefits = benefits
	if endDate.Valid {
		scheme.ValidityEndDate = &endDate.Time
	}
	return &scheme, nil
}
