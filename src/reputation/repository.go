package reputation

import (
	"errors"

	"gorm.io/gorm"

	"github.com/miromero13/certeth/src/model"
)

type Repository interface {
	GetByIssuer(issuer string) (*model.IssuerReputation, error)
	Save(rep *model.IssuerReputation) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetByIssuer(issuer string) (*model.IssuerReputation, error) {
	var rep model.IssuerReputation
	err := r.db.Where("issuer = ?", issuer).First(&rep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *gormRepository) Save(rep *model.IssuerReputation) error {
	return r.db.Save(rep).Error
}
