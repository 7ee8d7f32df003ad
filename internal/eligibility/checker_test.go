package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schemeModels "govassist/internal/scheme/models"
)

func TestChecker_EligibleGetsBenefits(t *testing.T) {
	checker := NewChecker(NewFactory(nil))

	eligible, reason, awards, err := checker.Evaluate(testContext(),
		schemeByCode(schemeModels.CodeSeniorCitizen), newApplicant(70))
	require.NoError(t, err)
	assert.True(t, eligible)
	assert.Equal(t, seniorEligible, reason)
	assert.NotEmpty(t, awards)
}

func TestChecker_IneligibleGetsZeroAwards(t *testing.T) {
	checker := NewChecker(NewFactory(nil))

	// The senior benefits routine would happily produce awards for this
	// applicant; the checker must never call it.
	eligible, reason, awards, err := checker.Evaluate(testContext(),
		schemeByCode(schemeModels.CodeSeniorCitizen), newApplicant(30))
	require.NoError(t, err)
	assert.False(t, eligible)
	assert.Equal(t, seniorNotEligible, reason)
	assert.Empty(t, awards)
}
