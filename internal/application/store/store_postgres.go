package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"govassist/internal/application/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
	"govassist/pkg/platform/tx"
)

// Postgres persists applications in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed application store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

const applicationColumns = `id, applicant_id, scheme_id, status, eligibility_verdict,
	eligibility_reason, awarded_benefits, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, application *models.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.q(ctx).ExecContext(ctx, query,
		application.ID.String(),
		application.ApplicantID.String(),
		application.SchemeID.String(),
		application.Status.String(),
		application.EligibilityVerdict,
		application.EligibilityReason,
		[]byte(application.AwardedBenefits),
		application.CreatedAt,
		application.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, applicationID.String())

	application, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return application, nil
}

func (s *Postgres) List(ctx context.Context, opts ListOptions, page pagination.Params) ([]models.Application, int, error) {
	q := s.q(ctx)

	where := ""
	var args []any
	if len(opts.Statuses) > 0 {
		statuses := make([]string, len(opts.Statuses))
		for i, status := range opts.Statuses {
			statuses[i] = status.String()
		}
		where = ` WHERE status = ANY($1)`
		args = append(args, pq.Array(statuses))
	}

	var total int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	query := `SELECT ` + applicationColumns + ` FROM applications` + where +
		` ORDER BY ` + orderClause(opts) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan application: %w", err)
		}
		applications = append(applications, *application)
	}
	return applications, total, rows.Err()
}

func (s *Postgres) HasPending(ctx context.Context, applicantID id.ApplicantID, schemeID id.SchemeID) (bool, error) {
	var exists bool
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE applicant_id = $1 AND scheme_id = $2 AND status = $3
		)
	`, applicantID.String(), schemeID.String(), id.ApplicationPending.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pending application: %w", err)
	}
	return exists, nil
}

func (s *Postgres) UpdateStatus(ctx context.Context, application *models.Application) error {
	result, err := s.q(ctx).ExecContext(ctx, `
		UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1
	`, application.ID.String(), application.Status.String(), application.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// orderClause builds the ORDER BY column and direction from the allowlisted
// sort constants. Values never come from user input unvalidated.
func orderClause(opts ListOptions) string {
	column := "created_at"
	if opts.SortBy == SortByStatus {
		column = "status"
	}
	direction := "DESC"
	if opts.SortOrder == SortOrderAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var a models.Application
	var applicationID, applicantID, schemeID, status string
	var awarded []byte

	err := row.Scan(
		&applicationID,
		&applicantID,
		&schemeID,
		&status,
		&a.EligibilityVerdict,
		&a.EligibilityReason,
		&awarded,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedID, err := id.ParseApplicationID(applicationID)
	if err != nil {
		return nil, err
	}
	parsedApplicant, err := id.ParseApplicantID(applicantID)
	if err != nil {
		return nil, err
	}
	parsedScheme, err := id.ParseSchemeID(schemeID)
	if err != nil {
		return nil, err
	}
	a.ID = parsedID
	a.ApplicantID = parsedApplicant
	a.SchemeID = parsedScheme
	a.Status = id.ApplicationStatus(status)
	a.AwardedBenefits = awarded
	return &a, nil
}
