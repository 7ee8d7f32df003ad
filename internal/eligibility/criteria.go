package eligibility

import (
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	schemeModels "govassist/internal/scheme/models"
)

// Scheme documents are operator-edited JSON, so decoding is fail-soft: a
// malformed document or field falls back to the compiled default for that
// field instead of failing the evaluation. Unknown fields are ignored.

// decodeCriteria decodes a criteria document into the family's typed struct.
// The struct's pointer fields stay nil for absent fields; a malformed
// document leaves the whole struct zero.
func decodeCriteria[T any](doc schemeModels.Document) T {
	var out T
	if len(doc) == 0 {
		return out
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		var zero T
		return zero
	}
	return out
}

// benefitDoc is one entry of a scheme's benefits document.
type benefitDoc struct {
	Amount         decimal.Decimal `json:"disbursment_amount"`
	Frequency      string          `json:"disbursment_frequency"`
	DurationMonths *int            `json:"disbursment_duration_months"`
	Description    string          `json:"description"`
}

// benefitDocs maps benefit name to its stored definition.
type benefitDocs map[string]benefitDoc

func decodeBenefits(doc schemeModels.Document) benefitDocs {
	if len(doc) == 0 {
		return nil
	}
	var out benefitDocs
	if err := json.Unmarshal(doc, &out); err != nil {
		return nil
	}
	return out
}

// award builds a BenefitAward for the named benefit, starting from the
// compiled default definition and overriding with whatever fields the stored
// document carries.
func (d benefitDocs) award(name, beneficiary string, def benefitDoc) BenefitAward {
	if stored, ok := d[name]; ok {
		if !stored.Amount.IsZero() {
			def.Amount = stored.Amount
		}
		if stored.Frequency != "" {
			def.Frequency = stored.Frequency
		}
		if stored.DurationMonths != nil {
			def.DurationMonths = stored.DurationMonths
		}
		if stored.Description != "" {
			def.Description = stored.Description
		}
	}

	award := BenefitAward{
		BenefitName: name,
		Description: def.Description,
		Beneficiary: beneficiary,
		Amount:      def.Amount,
		Frequency:   def.Frequency,
	}
	if def.DurationMonths != nil {
		award.DurationMonths = *def.DurationMonths
	}
	return award
}

func months(n int) *int { return &n }
