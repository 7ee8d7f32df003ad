package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"govassist/internal/applicant/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
	"govassist/pkg/platform/tx"
)

// Postgres persists applicants in PostgreSQL. Household members live in their
// own table with ON DELETE CASCADE so the aggregate's lifetime rule is
// enforced by the schema, not by application code.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed applicant store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// querier abstracts *sql.DB and *sql.Tx so store methods can join an ambient
// transaction carried in the context.
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

const applicantColumns = `id, name, employment_status, sex, date_of_birth, marital_status,
	employment_status_change_date, marriage_date, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, applicant *models.Applicant) error {
	q := s.q(ctx)
	query := `
		INSERT INTO applicants (` + applicantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.ExecContext(ctx, query,
		applicant.ID.String(),
		applicant.Name,
		applicant.EmploymentStatus.String(),
		applicant.Sex.String(),
		applicant.DateOfBirth,
		applicant.MaritalStatus.String(),
		applicant.EmploymentStatusChangeDate,
		applicant.MarriageDate,
		applicant.CreatedAt,
		applicant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert applicant: %w", err)
	}
	return s.insertHousehold(ctx, q, applicant)
}

func (s *Postgres) Get(ctx context.Context, applicantID id.ApplicantID) (*models.Applicant, error) {
	q := s.q(ctx)
	row := q.QueryRowContext(ctx,
		`SELECT `+applicantColumns+` FROM applicants WHERE id = $1`, applicantID.String())

	applicant, err := scanApplicant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get applicant: %w", err)
	}

	if err := s.loadHouseholds(ctx, q, []*models.Applicant{applicant}); err != nil {
		return nil, err
	}
	return applicant, nil
}

func (s *Postgres) Update(ctx context.Context, applicant *models.Applicant) error {
	q := s.q(ctx)
	query := `
		UPDATE applicants SET
			name = $2,
			employment_status = $3,
			sex = $4,
			date_of_birth = $5,
			marital_status = $6,
			employment_status_change_date = $7,
			marriage_date = $8,
			updated_at = $9
		WHERE id = $1
	`
	result, err := q.ExecContext(ctx, query,
		applicant.ID.String(),
		applicant.Name,
		applicant.EmploymentStatus.String(),
		applicant.Sex.String(),
		applicant.DateOfBirth,
		applicant.MaritalStatus.String(),
		applicant.EmploymentStatusChangeDate,
		applicant.MarriageDate,
		applicant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update applicant rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}

	// Replace the household member set wholesale; member identity is not
	// stable across updates.
	if _, err := q.ExecContext(ctx,
		`DELETE FROM household_members WHERE applicant_id = $1`, applicant.ID.String()); err != nil {
		return fmt.Errorf("clear household members: %w", err)
	}
	return s.insertHousehold(ctx, q, applicant)
}

func (s *Postgres) Delete(ctx context.Context, applicantID id.ApplicantID) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM applicants WHERE id = $1`, applicantID.String())
	if err != nil {
		return fmt.Errorf("delete applicant: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete applicant rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) List(ctx context.Context, page pagination.Params) ([]models.Applicant, int, error) {
	q := s.q(ctx)

	var total int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM applicants`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applicants: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+applicantColumns+` FROM applicants ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []*models.Applicant
	for rows.Next() {
		applicant, err := scanApplicant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan applicant: %w", err)
		}
		applicants = append(applicants, applicant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate applicants: %w", err)
	}

	if err := s.loadHouseholds(ctx, q, applicants); err != nil {
		return nil, 0, err
	}

	out := make([]models.Applicant, len(applicants))
	for i, a := range applicants {
		out[i] = *a
	}
	return out, total, nil
}

func (s *Postgres) insertHousehold(ctx context.Context, q querier, applicant *models.Applicant) error {
	for seq, m := range applicant.HouseholdMembers {
		_, err := q.ExecContext(ctx, `
			INSERT INTO household_members (id, applicant_id, seq, name, relation, date_of_birth, employment_status, sex)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			m.ID.String(),
			applicant.ID.String(),
			seq,
			m.Name,
			m.Relation,
			m.DateOfBirth,
			m.EmploymentStatus.String(),
			m.Sex.String(),
		)
		if err != nil {
			return fmt.Errorf("insert household member: %w", err)
		}
	}
	return nil
}

// loadHouseholds attaches household members to the given applicants, ordered
// by their insertion sequence.
func (s *Postgres) loadHouseholds(ctx context.Context, q querier, applicants []*models.Applicant) error {
	if len(applicants) == 0 {
		return nil
	}

	byID := make(map[string]*models.Applicant, len(applicants))
	ids := make([]string, 0, len(applicants))
	for _, a := range applicants {
		byID[a.ID.String()] = a
		ids = append(ids, a.ID.String())
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, applicant_id, name, relation, date_of_birth, employment_status, sex
		FROM household_members
		WHERE applicant_id = ANY($1::uuid[])
		ORDER BY seq
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load household members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.HouseholdMember
		var memberID, applicantID, employmentStatus, sex string
		if err := rows.Scan(&memberID, &applicantID, &m.Name, &m.Relation, &m.DateOfBirth, &employmentStatus, &sex); err != nil {
			return fmt.Errorf("scan household member: %w", err)
		}
		parsedMember, err := id.ParseMemberID(memberID)
		if err != nil {
			return fmt.Errorf("parse member id: %w", err)
		}
		parsedApplicant, err := id.ParseApplicantID(applicantID)
		if err != nil {
			return fmt.Errorf("parse member applicant id: %w", err)
		}
		m.ID = parsedMember
		m.ApplicantID = parsedApplicant
		m.EmploymentStatus = id.EmploymentStatus(employmentStatus)
		m.Sex = id.Sex(sex)

		if owner, ok := byID[applicantID]; ok {
			owner.HouseholdMembers = append(owner.HouseholdMembers, m)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplicant(row rowScanner) (*models.Applicant, error) {
	var a models.Applicant
	var applicantID, employmentStatus, sex, maritalStatus string
	var changeDate, marriageDate sql.NullTime

	err := row.Scan(
		&applicantID,
		&a.Name,
		&employmentStatus,
		&sex,
		&a.DateOfBirth,
		&maritalStatus,
		&changeDate,
		&marriageDate,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := id.ParseApplicantID(applicantID)
	if err != nil {
		return nil, err
	}
	a.ID = parsed
	a.EmploymentStatus = id.EmploymentStatus(employmentStatus)
	a.Sex = id.Sex(sex)
	a.MaritalStatus = id.MaritalStatus(maritalStatus)
	if changeDate.Valid {
		a.EmploymentStatusChangeDate = &changeDate.Time
	}
	if marriageDate.Valid {
		a.MarriageDate = &marriageDate.Time
	}
	return &a, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
