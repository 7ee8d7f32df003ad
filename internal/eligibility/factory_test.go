package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	schemeModels "govassist/internal/scheme/models"
)

func TestFactory_DispatchesOnCode(t *testing.T) {
	factory := NewFactory(nil)

	tests := []struct {
		code string
		want any
	}{
		{schemeModels.CodeSeniorCitizen, &SeniorCitizenStrategy{}},
		{schemeModels.CodeReskilling, &ReskillingStrategy{}},
		{schemeModels.CodeRetrenchment, &RetrenchmentStrategy{}},
		{schemeModels.CodeSingleWorkingMother, &SingleMotherStrategy{}},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			strategy := factory.StrategyFor(schemeByCode(tt.code))
			assert.IsType(t, tt.want, strategy)
		})
	}
}

func TestFactory_RenameDoesNotChangeDispatch(t *testing.T) {
	factory := NewFactory(nil)

	scheme := schemeByCode(schemeModels.CodeSeniorCitizen)
	scheme.Name = "Golden Years Support Programme"

	strategy := factory.StrategyFor(scheme)
	assert.IsType(t, &SeniorCitizenStrategy{}, strategy)
}

func TestFactory_UnknownCodeGetsFallback(t *testing.T) {
	factory := NewFactory(nil)

	scheme := schemeByCode(schemeModels.CodeSeniorCitizen)
	scheme.Code = "housing_grant"

	strategy := factory.StrategyFor(scheme)
	assert.IsType(t, FallbackStrategy{}, strategy)

	eligible, reason := strategy.CheckEligibility(testContext(), newApplicant(70))
	assert.False(t, eligible)
	assert.Equal(t, fallbackReason, reason)

	awards, err := strategy.Benefits(testContext(), newApplicant(70))
	assert.NoError(t, err)
	assert.Empty(t, awards)
}
