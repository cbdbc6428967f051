package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"gorm.io/gorm"
)

type BirthRepository interface {
	Create(rec *domain.BirthRecord) error
	FindByID(id string) (*domain.BirthRecord, error)
	FindByCertificateNo(certNo string) (*domain.BirthRecord, error)
	ListByUser(userID string) ([]domain.BirthRecord, error)
	ListByStatus(status domain.ApplicationStatus, limit, offset int) ([]domain.BirthRecord, error)
	CountByYear(year int) (int64, error)
	CertificateNoExists(certNo string) (bool, error)
	Updates(id string, patch map[string]any) (*domain.BirthRecord, error)
	ApplyDecision(id string, patch map[string]any, from []domain.ApplicationStatus) error
}

type birthRepository struct {
	db *gorm.DB
}

func NewBirthRepository(db *gorm.DB) BirthRepository {
	return &birthRepository{db: db}
}

func (r *birthRepository) Create(rec *domain.BirthRecord) error {
	return r.db.Create(rec).Error
}

func (r *birthRepository) FindByID(id string) (*domain.BirthRecord, error) {
	var rec domain.BirthRecord
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

func (r *birthRepository) FindByCertificateNo(certNo string) (*domain.BirthRecord, error) {
	var rec domain.BirthRecord
	err := r.db.First(&rec, "certificate_no = ?", certNo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *birthRepository) ListByUser(userID string) ([]domain.BirthRecord, error) {
	var recs []domain.BirthRecord
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

func (r *birthRepository) ListByStatus(status domain.ApplicationStatus, limit, offset int) ([]domain.BirthRecord, error) {
	var recs []domain.BirthRecord
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

func (r *birthRepository) CountByYear(year int) (int64, error) {
	var count int64
	prefix := fmt.Sprintf("%s-%d-%%", domain.KindBirth.ApplicationPrefix(), year)
	err := r.db.Model(&domain.BirthRecord{}).
		Where("application_id LIKE ?", prefix).
		Count(&count).Error
	return count, err
}

func (r *birthRepository) CertificateNoExists(certNo string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.BirthRecord{}).
		Where("certificate_no = ?", certNo).
		Count(&count).Error
	return count > 0, err
}

func (r *birthRepository) Updates(id string, patch map[string]any) (*domain.BirthRecord, error) {
	patch["updated_at"] = time.Now()

	res := r.db.Model(&domain.BirthRecord{}).
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
// of the `from` statuses, so a second decision on a decided record fails
// instead of silently overwriting the first.
func (r *birthRepository) ApplyDecision(id string, patch map[string]any, from []domain.ApplicationStatus) error {
	patch["updated_at"] = time.Now()

	res := r.db.Model(&domain.BirthRecord{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current domain.BirthRecord
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
