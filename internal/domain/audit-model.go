package domain

import "time"

// AuditLog is an append-only trail of submissions and review decisions.
// IDs are ULIDs so entries sort by creation time.
type AuditLog struct {
	ID       string  `gorm:"type:varchar(26);primaryKey" json:"id"`
	ActorID  string  `gorm:"type:uuid;not null;index" json:"actor_id"` // admin/citizen user id
	Action   string  `gorm:"type:varchar(100);not null" json:"action"`
	Entity   string  `gorm:"type:varchar(100);not null" json:"entity"`
	EntityID string  `gorm:"type:uuid;not null;index" json:"entity_id"`
	Note     *string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Audit actions recorded by the services.
const (
	AuditActionSubmitted    = "application.submitted"
	AuditActionResubmitted  = "application.resubmitted"
	AuditActionReviewOpened = "application.review_opened"
	AuditActionApproved     = "application.approved"
	AuditActionRejected     = "application.rejected"
	AuditActionCorrections  = "application.corrections_requested"
)
