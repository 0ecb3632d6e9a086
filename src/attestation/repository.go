package attestation

import (
	"errors"

	"gorm.io/gorm"

	"github.com/miromero13/certeth/src/model"
)

type Repository interface {
	// WithTx rebinds the repository to a transaction so registry writes can
	// commit atomically with certificate writes.
	WithTx(tx *gorm.DB) Repository

	Create(att *model.Attestation) error
	GetByUid(uid string) (*model.Attestation, error)
	SetRevocationTime(uid string, revokedAt int64) error
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

func (r *gormRepository) Create(att *model.Attestation) error {
	return r.db.Create(att).Error
}

func (r *gormRepository) GetByUid(uid string) (*model.Attestation, error) {
	var att model.Attestation
	err := r.db.Where("uid = ?", uid).First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *gormRepository) SetRevocationTime(uid string, revokedAt int64) error {
	return r.db.Model(&model.Attestation{}).
		Where("uid = ? AND revocation_time = 0", uid).
		Update("revocation_time", revokedAt).Error
}
