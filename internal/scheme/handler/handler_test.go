package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applicantModels "govassist/internal/applicant/models"
	applicantService "govassist/internal/applicant/service"
	applicantStore "govassist/internal/applicant/store"
	"govassist/internal/audit"
	"govassist/internal/eligibility"
	"govassist/internal/scheme/models"
	"govassist/internal/scheme/service"
	"govassist/internal/scheme/store"
	id "govassist/pkg/domain"
)

type schemeFixture struct {
	router    http.Handler
	applicant *applicantModels.Applicant
}

func newSchemeFixture(t *testing.T) *schemeFixture {
	t.Helper()
	now := time.Now().UTC()

	applicants := applicantStore.NewMemory()
	schemes := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := audit.NewOutboxPublisher(audit.NewMemoryOutbox())
	manager := eligibility.NewSchemesManager(
		eligibility.NewChecker(eligibility.NewFactory(nil)), schemes, nil, nil, logger)

	f := &schemeFixture{
		applicant: &applicantModels.Applicant{
			ID:               id.NewApplicantID(),
			Name:             "Lim Ah Seng",
			Sex:              id.Male,
			DateOfBirth:      now.AddDate(-70, 0, 0),
			EmploymentStatus: id.Unemployed,
			MaritalStatus:    id.Married,
		},
	}
	require.NoError(t, applicants.Create(context.Background(), f.applicant))

	for _, seed := range store.CanonicalSchemes(now) {
		scheme := seed
		require.NoError(t, schemes.Create(context.Background(), &scheme))
	}

	r := chi.NewRouter()
	catalog := service.New(schemes, logger)
	resolver := applicantService.New(applicants, publisher, logger)
	New(catalog, resolver, manager, logger).Register(r)
	f.router = r
	return f
}

func (f *schemeFixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestListSchemes(t *testing.T) {
	f := newSchemeFixture(t)

	rec := f.get(t, "/schemes")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data  []schemeResponse `json:"data"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.NotEmpty(t, envelope.Data)
	assert.Equal(t, len(envelope.Data), envelope.Total)

	codes := make(map[string]bool, len(envelope.Data))
	for _, scheme := range envelope.Data {
		codes[scheme.Code] = true
		assert.NotEmpty(t, scheme.ID)
		assert.NotEmpty(t, scheme.Name)
		assert.NotEmpty(t, scheme.Criteria)
		assert.NotEmpty(t, scheme.ValidityStartDate)
	}
	assert.True(t, codes[models.CodeSeniorCitizen])
	assert.True(t, codes[models.CodeRetrenchment])
}

func TestListSchemesValidOnly(t *testing.T) {
	f := newSchemeFixture(t)

	all := f.get(t, "/schemes")
	require.Equal(t, http.StatusOK, all.Code)
	valid := f.get(t, "/schemes?fetch_valid_schemes=true")
	require.Equal(t, http.StatusOK, valid.Code)

	var allEnvelope, validEnvelope struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(all.Body).Decode(&allEnvelope))
	require.NoError(t, json.NewDecoder(valid.Body).Decode(&validEnvelope))
	assert.LessOrEqual(t, validEnvelope.Total, allEnvelope.Total)
	assert.Positive(t, validEnvelope.Total)
}

func TestEligibleSchemes(t *testing.T) {
	f := newSchemeFixture(t)

	rec := f.get(t, "/schemes/eligible?applicant="+f.applicant.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []eligibility.Result `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.NotEmpty(t, envelope.Data)

	// A 70-year-old unemployed applicant qualifies for the senior scheme.
	// Schemes he does not qualify for never reach the response: no recorded
	// retrenchment date, and the single mothers scheme rejects him outright.
	var senior *eligibility.Result
	for i := range envelope.Data {
		if envelope.Data[i].SchemeCode == models.CodeSeniorCitizen {
			senior = &envelope.Data[i]
		}
		assert.True(t, envelope.Data[i].IsEligible)
		assert.NotEqual(t, models.CodeRetrenchment, envelope.Data[i].SchemeCode)
		assert.NotEqual(t, models.CodeSingleWorkingMother, envelope.Data[i].SchemeCode)
	}
	require.NotNil(t, senior)
	assert.NotEmpty(t, senior.EligibleBenefits)
}

func TestEligibleSchemesMissingParam(t *testing.T) {
	f := newSchemeFixture(t)

	rec := f.get(t, "/schemes/eligible")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.get(t, "/schemes/eligible?applicant=not-a-uuid")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEligibleSchemesUnknownApplicant(t *testing.T) {
	f := newSchemeFixture(t)

	rec := f.get(t, "/schemes/eligible?applicant="+uuid.NewString())
	require.Equal(t, http.StatusNotFound, rec.Code)
}
