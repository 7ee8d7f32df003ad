package eligibility

import (
	schemeModels "govassist/internal/scheme/models"
	"govassist/internal/sysconfig"
)

// Factory maps schemes to strategies. Dispatch keys on the scheme's stable
// code, so renaming a scheme for display never changes which strategy runs.
// The factory is total: unknown codes get the fallback strategy, never an
// error.
type Factory struct {
	config sysconfig.Provider
}

// NewFactory constructs a factory. The configuration provider is handed to
// strategies whose rules live outside the scheme row.
func NewFactory(config sysconfig.Provider) *Factory {
	return &Factory{config: config}
}

// StrategyFor returns the strategy for the scheme, parsed from its stored
// documents.
func (f *Factory) StrategyFor(scheme *schemeModels.Scheme) Strategy {
	switch scheme.Code {
	case schemeModels.CodeSeniorCitizen:
		return NewSeniorCitizen(scheme)
	case schemeModels.CodeReskilling:
		return NewReskilling(scheme)
	case schemeModels.CodeRetrenchment:
		return NewRetrenchment(scheme, f.config)
	case schemeModels.CodeSingleWorkingMother:
		return NewSingleMother(scheme)
	default:
		return FallbackStrategy{}
	}
}
