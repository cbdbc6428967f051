package dto

// ApplicationEvent is published to Kafka for the notification service.
// Key is the application id so one application's events stay ordered.
type ApplicationEvent struct {
	Event         string `json:"event"` // application.submitted | application.approved | ...
	Kind          string `json:"kind"`  // birth | death
	ApplicationID string `json:"application_id"`
	RecordID      string `json:"record_id"`
	UserID        string `json:"user_id"`
	Email         string `json:"email,omitempty"`
	CertificateNo string `json:"certificate_no,omitempty"`
	Remarks       string `json:"remarks,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
