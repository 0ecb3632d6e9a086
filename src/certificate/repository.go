package certificate

import (
	"errors"

	"gorm.io/gorm"

	"github.com/miromero13/certeth/src/model"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(cert *model.Certificate) error
	GetById(id uint) (*model.Certificate, error)
	ListByIssuer(issuer string) ([]model.Certificate, error)
	ListByRecipient(recipient string) ([]model.Certificate, error)
	Count() (int64, error)
	MarkRevoked(id uint) error

	// Transaction runs fn inside a single database transaction. The certificate
	// row and its attestation commit or roll back together.
	Transaction(fn func(tx *gorm.DB) error) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) Create(cert *model.Certificate) error {
	return r.db.Create(cert).Error
}

func (r *gormRepository) GetById(id uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.First(&cert, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *gormRepository) ListByIssuer(issuer string) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.db.Where("issuer_address = ?", issuer).Order("id").Find(&certs).Error
	return certs, err
}

func (r *gormRepository) ListByRecipient(recipient string) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.db.Where("recipient_address = ?", recipient).Order("id").Find(&certs).Error
	return certs, err
}

func (r *gormRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Certificate{}).Count(&count).Error
	return count, err
}

func (r *gormRepository) MarkRevoked(id uint) error {
	return r.db.Model(&model.Certificate{}).
		Where("id = ? AND is_valid = ?", id, true).
		Update("is_valid", false).Error
}

func (r *gormRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}
