package repository

import (
	"github.com/SajiloSewa/registry_service/internal/domain"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	AddDocuments(recordID string, kind domain.RecordKind, docs []domain.Document) error
	ListByRecord(recordID string) ([]domain.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// recordType maps a kind to the polymorphic owner value gorm expects when
// preloading Documents from the record side.
func recordType(kind domain.RecordKind) string {
	if kind == domain.KindDeath {
		return "death_records"
	}
	return "birth_records"
}

func (d *documentRepository) AddDocuments(recordID string, kind domain.RecordKind, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	for i := range docs {
		docs[i].RecordID = recordID
		docs[i].RecordType = recordType(kind)
	}

	return d.db.Create(&docs).Error
}

func (d *documentRepository) ListByRecord(recordID string) ([]domain.Document, error) {
	var docs []domain.Document
	err := d.db.
		Where("record_id = ?", recordID).
		Order("uploaded_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
