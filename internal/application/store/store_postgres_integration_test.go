//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	applicantModels "govassist/internal/applicant/models"
	applicantStore "govassist/internal/applicant/store"
	"govassist/internal/application/models"
	"govassist/internal/application/store"
	schemeModels "govassist/internal/scheme/models"
	schemeStore "govassist/internal/scheme/store"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
	"govassist/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres

	applicantID id.ApplicantID
	schemeID    id.SchemeID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "applications", "household_members", "applicants", "schemes")
	s.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)

	applicant := &applicantModels.Applicant{
		ID:               id.NewApplicantID(),
		Name:             "Tan Mei Ling",
		EmploymentStatus: id.Employed,
		Sex:              id.Female,
		DateOfBirth:      now.AddDate(-35, 0, 0),
		MaritalStatus:    id.Single,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.Require().NoError(applicantStore.NewPostgres(s.postgres.DB).Create(ctx, applicant))
	s.applicantID = applicant.ID

	scheme := &schemeModels.Scheme{
		ID:                id.NewSchemeID(),
		Code:              schemeModels.CodeSeniorCitizen,
		Name:              "Senior Citizen Assistance Scheme",
		Description:       "Support for senior citizens",
		Criteria:          []byte(`{}`),
		Benefits:          []byte(`{}`),
		ValidityStartDate: now.AddDate(-1, 0, 0),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.Require().NoError(schemeStore.NewPostgres(s.postgres.DB).Create(ctx, scheme))
	s.schemeID = scheme.ID
}

func (s *PostgresStoreSuite) newApplication(status id.ApplicationStatus, createdAt time.Time) *models.Application {
	return &models.Application{
		ID:                 id.NewApplicationID(),
		ApplicantID:        s.applicantID,
		SchemeID:           s.schemeID,
		Status:             status,
		EligibilityVerdict: true,
		EligibilityReason:  "Eligible for Senior Citizen Assistance Scheme.",
		AwardedBenefits:    []byte(`[]`),
		CreatedAt:          createdAt,
		UpdatedAt:          createdAt,
	}
}

func (s *PostgresStoreSuite) TestCreateAndGet() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	application := s.newApplication(id.ApplicationPending, now)
	application.AwardedBenefits = []byte(`[{"benefit_name":"cpf_top_up"}]`)
	s.Require().NoError(s.store.Create(ctx, application))

	got, err := s.store.Get(ctx, application.ID)
	s.Require().NoError(err)
	s.Equal(application.ApplicantID, got.ApplicantID)
	s.Equal(application.SchemeID, got.SchemeID)
	s.Equal(id.ApplicationPending, got.Status)
	s.True(got.EligibilityVerdict)
	s.JSONEq(`[{"benefit_name":"cpf_top_up"}]`, string(got.AwardedBenefits))
}

func (s *PostgresStoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), id.NewApplicationID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestHasPending() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	pending, err := s.store.HasPending(ctx, s.applicantID, s.schemeID)
	s.Require().NoError(err)
	s.False(pending)

	s.Require().NoError(s.store.Create(ctx, s.newApplication(id.ApplicationPending, now)))

	pending, err = s.store.HasPending(ctx, s.applicantID, s.schemeID)
	s.Require().NoError(err)
	s.True(pending)
}

func (s *PostgresStoreSuite) TestHasPendingIgnoresReviewed() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Create(ctx, s.newApplication(id.ApplicationApproved, now)))

	pending, err := s.store.HasPending(ctx, s.applicantID, s.schemeID)
	s.Require().NoError(err)
	s.False(pending)
}

func (s *PostgresStoreSuite) TestListFilterAndSort() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Create(ctx, s.newApplication(id.ApplicationPending, base)))
	s.Require().NoError(s.store.Create(ctx, s.newApplication(id.ApplicationApproved, base.Add(time.Second))))
	s.Require().NoError(s.store.Create(ctx, s.newApplication(id.ApplicationRejected, base.Add(2*time.Second))))

	page := pagination.Params{Page: 1, PerPage: 10}

	all, total, err := s.store.List(ctx, store.ListOptions{
		SortBy:    store.SortByCreatedAt,
		SortOrder: store.SortOrderAsc,
	}, page)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(all, 3)
	s.Equal(id.ApplicationPending, all[0].Status)
	s.Equal(id.ApplicationRejected, all[2].Status)

	pendingOnly, total, err := s.store.List(ctx, store.ListOptions{
		Statuses:  []id.ApplicationStatus{id.ApplicationPending},
		SortBy:    store.SortByCreatedAt,
		SortOrder: store.SortOrderDesc,
	}, page)
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Require().Len(pendingOnly, 1)
	s.Equal(id.ApplicationPending, pendingOnly[0].Status)

	byStatus, _, err := s.store.List(ctx, store.ListOptions{
		SortBy:    store.SortByStatus,
		SortOrder: store.SortOrderAsc,
	}, page)
	s.Require().NoError(err)
	s.Require().Len(byStatus, 3)
	s.Equal(id.ApplicationApproved, byStatus[0].Status)
}

func (s *PostgresStoreSuite) TestUpdateStatus() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	application := s.newApplication(id.ApplicationPending, now)
	s.Require().NoError(s.store.Create(ctx, application))

	application.Status = id.ApplicationApproved
	application.UpdatedAt = now.Add(time.Minute)
	s.Require().NoError(s.store.UpdateStatus(ctx, application))

	got, err := s.store.Get(ctx, application.ID)
	s.Require().NoError(err)
	s.Equal(id.ApplicationApproved, got.Status)
}

func (s *PostgresStoreSuite) TestUpdateStatusMissing() {
	application := s.newApplication(id.ApplicationApproved, time.Now().UTC())
	err := s.store.UpdateStatus(context.Background(), application)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
