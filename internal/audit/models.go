// Package audit records domain events through a transactional outbox and
// relays them to Kafka. Services emit events in the same transaction as the
// write that caused them; the relay worker moves them to the topic
// at-least-once.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies audit events by their primary purpose. It drives
// retention and downstream routing, not behavior inside this service.
type Category string

const (
	// CategoryCompliance covers events with regulatory significance:
	// application verdicts, applicant data changes, configuration changes.
	CategoryCompliance Category = "compliance"

	// CategorySecurity covers events feeding security monitoring:
	// failed logins, lockouts, token revocations.
	CategorySecurity Category = "security"

	// CategoryOperations covers routine events kept for debugging.
	CategoryOperations Category = "operations"
)

// Action names the domain event being recorded.
type Action string

const (
	ActionApplicantCreated     Action = "applicant_created"
	ActionApplicantUpdated     Action = "applicant_updated"
	ActionApplicantDeleted     Action = "applicant_deleted"
	ActionApplicationSubmitted Action = "application_submitted"
	ActionApplicationReviewed  Action = "application_reviewed"
	ActionEligibilityEvaluated Action = "eligibility_evaluated"
	ActionLoginSucceeded       Action = "login_succeeded"
	ActionLoginFailed          Action = "login_failed"
	ActionAccountLocked        Action = "account_locked"
	ActionTokenRevoked         Action = "token_revoked"
	ActionConfigurationUpdated Action = "configuration_updated"
)

var actionCategories = map[Action]Category{
	ActionApplicantCreated:     CategoryCompliance,
	ActionApplicantUpdated:     CategoryCompliance,
	ActionApplicantDeleted:     CategoryCompliance,
	ActionApplicationSubmitted: CategoryCompliance,
	ActionApplicationReviewed:  CategoryCompliance,
	ActionConfigurationUpdated: CategoryCompliance,

	ActionLoginFailed:   CategorySecurity,
	ActionAccountLocked: CategorySecurity,
	ActionTokenRevoked:  CategorySecurity,

	ActionLoginSucceeded:       CategoryOperations,
	ActionEligibilityEvaluated: CategoryOperations,
}

// Category returns the category for this action. Unknown actions default to
// operations, the least privileged retention class.
func (a Action) Category() Category {
	if c, ok := actionCategories[a]; ok {
		return c
	}
	return CategoryOperations
}

// Event is one audit record. Keep it transport-agnostic; the outbox store
// and the Kafka relay both serialize it.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Category  Category  `json:"category"`
	Action    Action    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	IP        string    `json:"ip,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
