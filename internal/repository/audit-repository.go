package repository

import (
	"github.com/SajiloSewa/registry_service/internal/domain"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Append(entry *domain.AuditLog) error
	ListByEntity(entityID string) ([]domain.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (a *auditRepository) Append(entry *domain.AuditLog) error {
	return a.db.Create(entry).Error
}

func (a *auditRepository) ListByEntity(entityID string) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog
	// ULID primary keys sort by creation time
	err := a.db.
		Where("entity_id = ?", entityID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
