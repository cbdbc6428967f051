package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"gorm.io/gorm"
)

type DeathRepository interface {
	Create(rec *domain.DeathRecord) error
	FindByID(id string) (*domain.DeathRecord, error)
	FindByCertificateNo(certNo string) (*domain.DeathRecord, error)
	ListByUser(userID string) ([]domain.DeathRecord, error)
	ListByStatus(status domain.ApplicationStatus, limit, offset int) ([]domain.DeathRecord, error)
	CountByYear(year int) (int64, error)
	CertificateNoExists(certNo string) (bool, error)
	Updates(id string, patch map[string]any) (*domain.DeathRecord, error)
	ApplyDecision(id string, patch map[string]any, from []domain.ApplicationStatus) error
}

type deathRepository struct {
	db *gorm.DB
}

func NewDeathRepository(db *gorm.DB) DeathRepository {
	return &deathRepository{db: db}
}

func (r *deathRepository) Create(rec *domain.DeathRecord) error {
	return r.db.Create(rec).Error
}

func (r *deathRepository) FindByID(id string) (*domain.DeathRecord, error) {
	var rec domain.DeathRecord
	err := r.db.
		Preload("Documents").
		First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *deathRepository) FindByCertificateNo(certNo string) (*domain.DeathRecord, error) {
	var rec domain.DeathRecord
	err := r.db.First(&rec, "certificate_no = ?", certNo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *deathRepository) ListByUser(userID string) ([]domain.DeathRecord, error) {
	var recs []domain.DeathRecord
	err := r.db.
		Preload("Documents").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *deathRepository) ListByStatus(status domain.ApplicationStatus, limit, offset int) ([]domain.DeathRecord, error) {
	var recs []domain.DeathRecord
	err := r.db.
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *deathRepository) CountByYear(year int) (int64, error) {
	var count int64
	prefix := fmt.Sprintf("%s-%d-%%", domain.KindDeath.ApplicationPrefix(), year)
	err := r.db.Model(&domain.DeathRecord{}).
		Where("application_id LIKE ?", prefix).
		Count(&count).Error
	return count, err
}

func (r *deathRepository) CertificateNoExists(certNo string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.DeathRecord{}).
		Where("certificate_no = ?", certNo).
		Count(&count).Error
	return count > 0, err
}

func (r *deathRepository) Updates(id string, patch map[string]any) (*domain.DeathRecord, error) {
	patch["updated_at"] = time.Now()

	res := r.db.Model(&domain.DeathRecord{}).
		Where("id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(id)
}

// ApplyDecision merges a review patch only while the record still sits in one
// of the `from` statuses. See BirthRepository.ApplyDecision.
func (r *deathRepository) ApplyDecision(id string, patch map[string]any, from []domain.ApplicationStatus) error {
	patch["updated_at"] = time.Now()

	res := r.db.Model(&domain.DeathRecord{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current domain.DeathRecord
		if err := r.db.Select("status").First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if current.Status.Terminal() {
			return domain.ErrAlreadyDecided
		}
		return domain.ErrInvalidTransition
	}
	return nil
}
