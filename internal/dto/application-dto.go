package dto

import (
	"time"

	"github.com/SajiloSewa/registry_service/internal/domain"
)

type BirthApplicationRequest struct {
	ChildFirstName  string  `json:"child_first_name" validate:"required"`
	ChildMiddleName *string `json:"child_middle_name,omitempty"`
	ChildLastName   string  `json:"child_last_name" validate:"required"`
	DateOfBirth     string  `json:"date_of_birth" validate:"required"`
	PlaceOfBirth    string  `json:"place_of_birth" validate:"required"`
	Gender          string  `json:"gender" validate:"required,oneof=male female other"`

	FatherFirstName  string  `json:"father_first_name" validate:"required"`
	FatherMiddleName *string `json:"father_middle_name,omitempty"`
	FatherLastName   string  `json:"father_last_name" validate:"required"`
	MotherFirstName  string  `json:"mother_first_name" validate:"required"`
	MotherMiddleName *string `json:"mother_middle_name,omitempty"`
	MotherLastName   string  `json:"mother_last_name" validate:"required"`

	District     string `json:"district" validate:"required"`
	Municipality string `json:"municipality" validate:"required"`
	WardNo       string `json:"ward_no"`
	Address      string `json:"address"`

	HospitalName string `json:"hospital_name"`
}

type DeathApplicationRequest struct {
	DeceasedFirstName  string  `json:"deceased_first_name" validate:"required"`
	DeceasedMiddleName *string `json:"deceased_middle_name,omitempty"`
	DeceasedLastName   string  `json:"deceased_last_name" validate:"required"`
	DateOfDeath        string  `json:"date_of_death" validate:"required"`
	PlaceOfDeath       string  `json:"place_of_death" validate:"required"`
	Gender             string  `json:"gender" validate:"required,oneof=male female other"`
	CauseOfDeath       string  `json:"cause_of_death" validate:"required"`

	District     string `json:"district" validate:"required"`
	Municipality string `json:"municipality" validate:"required"`
	WardNo       string `json:"ward_no"`
	Address      string `json:"address"`

	InformantName     string `json:"informant_name" validate:"required"`
	InformantRelation string `json:"informant_relation" validate:"required"`
	InformantPhone    string `json:"informant_phone"`
}

// ApplicationSummary is the shared row shape for dashboards listing both
// record kinds together.
type ApplicationSummary struct {
	ID            string                   `json:"id"`
	Kind          domain.RecordKind        `json:"kind"`
	ApplicationID string                   `json:"application_id"`
	UserID        string                   `json:"user_id"`
	Status        domain.ApplicationStatus `json:"status"`
	Subject       string                   `json:"subject"` // child or deceased full name
	CertificateNo *string                  `json:"certificate_no,omitempty"`
	SubmittedAt   *time.Time               `json:"submitted_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

type DocumentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}
