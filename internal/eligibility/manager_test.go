package eligibility

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"govassist/internal/audit"
	"govassist/internal/eligibility/mocks"
	schemeModels "govassist/internal/scheme/models"
	schemeStore "govassist/internal/scheme/store"
	id "govassist/pkg/domain"
)

func newTestManager(t *testing.T) (*SchemesManager, *mocks.MockSchemeStore, *audit.MemoryOutbox) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSchemeStore(ctrl)
	outbox := audit.NewMemoryOutbox()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager := NewSchemesManager(NewChecker(NewFactory(nil)), store, nil,
		audit.NewOutboxPublisher(outbox), logger)
	return manager, store, outbox
}

func TestManager_CheckEligibilityCarriesSchemeMetadataOnBothVerdicts(t *testing.T) {
	manager, _, _ := newTestManager(t)
	scheme := schemeByCode(schemeModels.CodeSeniorCitizen)

	for _, tt := range []struct {
		name         string
		age          int
		wantEligible bool
	}{
		{"eligible", 70, true},
		{"ineligible", 30, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			result, err := manager.CheckEligibility(testContext(), scheme, newApplicant(tt.age))
			require.NoError(t, err)

			assert.Equal(t, tt.wantEligible, result.IsEligible)
			assert.Equal(t, scheme.ID, result.SchemeID)
			assert.Equal(t, scheme.Code, result.SchemeCode)
			assert.Equal(t, scheme.Name, result.SchemeName)
			assert.Equal(t, scheme.Description, result.SchemeDescription)
			assert.Equal(t, scheme.ValidityStartDate, result.SchemeStartDate)
			assert.Equal(t, evaluationTime, result.EvaluatedAt)
			if tt.wantEligible {
				assert.NotEmpty(t, result.EligibleBenefits)
			} else {
				assert.Empty(t, result.EligibleBenefits)
			}
		})
	}
}

func TestManager_CheckEligibilityEmitsAuditEvent(t *testing.T) {
	manager, _, outbox := newTestManager(t)
	applicant := newApplicant(70)

	_, err := manager.CheckEligibility(testContext(), schemeByCode(schemeModels.CodeSeniorCitizen), applicant)
	require.NoError(t, err)

	events := outbox.All()
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionEligibilityEvaluated, events[0].Action)
	assert.Equal(t, applicant.ID.String(), events[0].Subject)
	assert.Equal(t, "eligible", events[0].Decision)
}

func TestManager_CheckSchemesEligibilityReturnsEveryVerdictInCatalogOrder(t *testing.T) {
	manager, store, _ := newTestManager(t)

	// A 70-year-old employed single mother with a young child: eligible for
	// senior citizen and single working mothers, but not reskilling.
	applicant := newApplicant(70)
	applicant.Sex = id.Female
	applicant.MaritalStatus = id.Widowed
	applicant.EmploymentStatus = id.Employed
	applicant.HouseholdMembers = append(applicant.HouseholdMembers, child("Late Blessing", 15))

	catalog := []schemeModels.Scheme{
		*schemeByCode(schemeModels.CodeSeniorCitizen),
		*schemeByCode(schemeModels.CodeReskilling),
		*schemeByCode(schemeModels.CodeSingleWorkingMother),
	}
	store.EXPECT().ListAll(gomock.Any(), gomock.Any()).Return(catalog, nil)

	results, err := manager.CheckSchemesEligibility(testContext(), schemeStore.ListFilter{}, false, applicant)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, schemeModels.CodeSeniorCitizen, results[0].SchemeCode)
	assert.Equal(t, schemeModels.CodeReskilling, results[1].SchemeCode)
	assert.Equal(t, schemeModels.CodeSingleWorkingMother, results[2].SchemeCode)

	assert.True(t, results[0].IsEligible)
	assert.False(t, results[1].IsEligible)
	assert.True(t, results[2].IsEligible)

	// Ineligible entries still carry the full verdict, not a hole.
	assert.NotEmpty(t, results[1].Reason)
	assert.Empty(t, results[1].EligibleBenefits)
	assert.Equal(t, catalog[1].Name, results[1].SchemeName)
}

func TestManager_CheckSchemesEligibilityValidOnlyFiltersCandidates(t *testing.T) {
	manager, store, _ := newTestManager(t)

	store.EXPECT().ListAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter schemeStore.ListFilter) ([]schemeModels.Scheme, error) {
			require.NotNil(t, filter.ValidAt)
			assert.True(t, filter.ValidAt.Equal(evaluationTime))
			return nil, nil
		})

	results, err := manager.CheckSchemesEligibility(testContext(), schemeStore.ListFilter{}, true, newApplicant(30))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestManager_CheckSchemesEligibilityPropagatesStoreFailure(t *testing.T) {
	manager, store, _ := newTestManager(t)

	store.EXPECT().ListAll(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	_, err := manager.CheckSchemesEligibility(testContext(), schemeStore.ListFilter{}, true, newApplicant(30))
	assert.Error(t, err)
}
