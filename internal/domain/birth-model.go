package domain

import "time"

// BirthRecord is a citizen application for a birth certificate. Records are
// created in submitted status by the citizen form; the draft status exists in
// the lifecycle but is never produced by this service.
type BirthRecord struct {
	ID            string            `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID string            `gorm:"uniqueIndex;not null" json:"application_id"`
	UserID        string            `gorm:"type:uuid;not null;index" json:"user_id"`
	Status        ApplicationStatus `gorm:"type:varchar(20);not null;default:submitted" json:"status"`
	CertificateNo *string           `gorm:"uniqueIndex" json:"certificate_no,omitempty"`

	// Child
	ChildFirstName  string  `gorm:"not null" json:"child_first_name"`
	ChildMiddleName *string `json:"child_middle_name,omitempty"`
	ChildLastName   string  `gorm:"not null" json:"child_last_name"`
	DateOfBirth     string  `gorm:"not null" json:"date_of_birth"`
	PlaceOfBirth    string  `gorm:"not null" json:"place_of_birth"`
	Gender          string  `gorm:"type:varchar(10);not null" json:"gender"`

	// Parents
	FatherFirstName  string  `gorm:"not null" json:"father_first_name"`
	FatherMiddleName *string `json:"father_middle_name,omitempty"`
	FatherLastName   string  `gorm:"not null" json:"father_last_name"`
	MotherFirstName  string  `gorm:"not null" json:"mother_first_name"`
	MotherMiddleName *string `json:"mother_middle_name,omitempty"`
	MotherLastName   string  `gorm:"not null" json:"mother_last_name"`

	// Address
	District     string `gorm:"not null" json:"district"`
	Municipality string `gorm:"not null" json:"municipality"`
	WardNo       string `json:"ward_no"`
	Address      string `json:"address"`

	HospitalName string `json:"hospital_name"`

	Documents []Document `gorm:"polymorphic:Record;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"documents,omitempty"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`

	Remarks    *string `gorm:"type:text" json:"remarks,omitempty"`
	ReviewedBy *string `gorm:"type:uuid" json:"reviewed_by,omitempty"` // admin user id

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *BirthRecord) Kind() RecordKind { return KindBirth }
