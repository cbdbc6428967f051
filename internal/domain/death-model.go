package domain

import "time"

// DeathRecord is a citizen application for a death certificate, filed by an
// informant on behalf of the deceased.
type DeathRecord struct {
	ID            string            `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID string            `gorm:"uniqueIndex;not null" json:"application_id"`
	UserID        string            `gorm:"type:uuid;not null;index" json:"user_id"`
	Status        ApplicationStatus `gorm:"type:varchar(20);not null;default:submitted" json:"status"`
	CertificateNo *string           `gorm:"uniqueIndex" json:"certificate_no,omitempty"`

	// Deceased
	DeceasedFirstName  string  `gorm:"not null" json:"deceased_first_name"`
	DeceasedMiddleName *string `json:"deceased_middle_name,omitempty"`
	DeceasedLastName   string  `gorm:"not null" json:"deceased_last_name"`
	DateOfDeath        string  `gorm:"not null" json:"date_of_death"`
	PlaceOfDeath       string  `gorm:"not null" json:"place_of_death"`
	Gender             string  `gorm:"type:varchar(10);not null" json:"gender"`
	CauseOfDeath       string  `gorm:"not null" json:"cause_of_death"`

	// Address
	District     string `gorm:"not null" json:"district"`
	Municipality string `gorm:"not null" json:"municipality"`
	WardNo       string `json:"ward_no"`
	Address      string `json:"address"`

	// Informant
	InformantName     string `gorm:"not null" json:"informant_name"`
	InformantRelation string `gorm:"not null" json:"informant_relation"`
	InformantPhone    string `json:"informant_phone"`

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

func (r *DeathRecord) Kind() RecordKind { return KindDeath }
