package verification

import (
	"errors"

	"gorm.io/gorm"

	"github.com/miromero13/certeth/src/model"
)

type Repository interface {
	Create(record *model.VerificationRecord) error
	GetById(id string) (*model.VerificationRecord, error)
	ListByCertificate(certificateId uint) ([]model.VerificationRecord, error)
	ListByVerifier(verifier string) ([]model.VerificationRecord, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(record *model.VerificationRecord) error {
	return r.db.Create(record).Error
}

func (r *gormRepository) GetById(id string) (*model.VerificationRecord, error) {
	var record model.VerificationRecord
	err := r.db.Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *gormRepository) ListByCertificate(certificateId uint) ([]model.VerificationRecord, error) {
	var records []model.VerificationRecord
	err := r.db.Where("certificate_id = ?", certificateId).Order("timestamp").Find(&records).Error
	return records, err
}

func (r *gormRepository) ListByVerifier(verifier string) ([]model.VerificationRecord, error) {
	var records []model.VerificationRecord
	err := r.db.Where("verifier = ?", verifier).Order("timestamp").Find(&records).Error
	return records, err
}
