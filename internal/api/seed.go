package api

import (
	"log"
	"time"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/helper"
	"github.com/SajiloSewa/registry_service/pkg/ids"
	"gorm.io/gorm"
)

// seedData inserts a demo admin, a demo citizen and a handful of sample
// applications when the store is empty. Runs under the migration advisory
// lock so only one instance seeds.
func seedData(db *gorm.DB, auth helper.Auth) {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		log.Printf("seed: count users error: %v", err)
		return
	}
	if count > 0 {
		return
	}

	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		log.Printf("seed: hash error: %v", err)
		return
	}
	citizenHash, err := auth.HashPassword("citizen123")
	if err != nil {
		log.Printf("seed: hash error: %v", err)
		return
	}

	admin := &domain.User{
		ID:           ids.New(),
		Email:        "admin@gov.np",
		PasswordHash: adminHash,
		FullName:     "Ram Bahadur Thapa",
		Phone:        "9841234567",
		Role:         domain.RoleAdmin,
	}
	citizen := &domain.User{
		ID:           ids.New(),
		Email:        "citizen@example.com",
		PasswordHash: citizenHash,
		FullName:     "Sita Sharma",
		Phone:        "9812345678",
		Role:         domain.RoleCitizen,
	}

	if err := db.Create([]*domain.User{admin, citizen}).Error; err != nil {
		log.Printf("seed: create users error: %v", err)
		return
	}

	now := time.Now()
	certNo := "BC-2024-001234"

	approved := &domain.BirthRecord{
		ID:            ids.New(),
		ApplicationID: "BR-2024-0001",
		UserID:        citizen.ID,
		Status:        domain.StatusApproved,
		CertificateNo: &certNo,

		ChildFirstName:  "Aarav",
		ChildLastName:   "Sharma",
		DateOfBirth:     "2024-01-10",
		PlaceOfBirth:    "Kathmandu",
		Gender:          "male",
		FatherFirstName: "Rajan",
		FatherLastName:  "Sharma",
		MotherFirstName: "Sita",
		MotherLastName:  "Sharma",
		District:        "Kathmandu",
		Municipality:    "Kathmandu Metropolitan City",
		WardNo:          "10",
		Address:         "Baneshwor",
		HospitalName:    "Teaching Hospital",

		SubmittedAt: &now,
		ReviewedAt:  &now,
		ApprovedAt:  &now,
		ReviewedBy:  &admin.ID,
	}

	pending := &domain.BirthRecord{
		ID:            ids.New(),
		ApplicationID: "BR-2024-0002",
		UserID:        citizen.ID,
		Status:        domain.StatusUnderReview,

		ChildFirstName:  "Priya",
		ChildLastName:   "Sharma",
		DateOfBirth:     "2024-02-05",
		PlaceOfBirth:    "Lalitpur",
		Gender:          "female",
		FatherFirstName: "Rajan",
		FatherLastName:  "Sharma",
		MotherFirstName: "Sita",
		MotherLastName:  "Sharma",
		District:        "Lalitpur",
		Municipality:    "Lalitpur Metropolitan City",
		WardNo:          "5",
		Address:         "Pulchowk",
		HospitalName:    "Patan Hospital",

		SubmittedAt: &now,
	}

	death := &domain.DeathRecord{
		ID:            ids.New(),
		ApplicationID: "DR-2024-0001",
		UserID:        citizen.ID,
		Status:        domain.StatusSubmitted,

		DeceasedFirstName: "Hari",
		DeceasedLastName:  "Prasad",
		DateOfDeath:       "2024-02-01",
		PlaceOfDeath:      "Kathmandu",
		Gender:            "male",
		CauseOfDeath:      "Natural causes",
		District:          "Kathmandu",
		Municipality:      "Kathmandu Metropolitan City",
		WardNo:            "15",
		Address:           "Koteshwor",
		InformantName:     "Krishna Prasad",
		InformantRelation: "Son",
		InformantPhone:    "9841111111",

		SubmittedAt: &now,
	}

	if err := db.Create([]*domain.BirthRecord{approved, pending}).Error; err != nil {
		log.Printf("seed: create birth records error: %v", err)
	}
	if err := db.Create(death).Error; err != nil {
		log.Printf("seed: create death record error: %v", err)
	}

	log.Println("seeded demo users and sample applications")
}
