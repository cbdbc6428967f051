package dto

import "github.com/SajiloSewa/registry_service/internal/domain"

type DecisionRequest struct {
	Action  domain.Decision `json:"action" validate:"required,oneof=approve reject corrections"`
	Remarks string          `json:"remarks"`
}

type CertificateResponse struct {
	CertificateNo string            `json:"certificate_no"`
	Kind          domain.RecordKind `json:"kind"`
	ApplicationID string            `json:"application_id"`
	Subject       string            `json:"subject"`
	IssuedAt      string            `json:"issued_at"`
	VerifyURL     string            `json:"verify_url"`
}

type VerificationResponse struct {
	CertificateNo string            `json:"certificate_no"`
	Valid         bool              `json:"valid"`
	Kind          domain.RecordKind `json:"kind,omitempty"`
	ApplicationID string            `json:"application_id,omitempty"`
	Subject       string            `json:"subject,omitempty"`
	IssuedAt      string            `json:"issued_at,omitempty"`
}
