package institution

import (
	"errors"

	"gorm.io/gorm"

	"github.com/miromero13/certeth/src/model"
)

type Repository interface {
	Create(inst *model.Institution) error
	GetByName(name string) (*model.Institution, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(inst *model.Institution) error {
	return r.db.Create(inst).Error
}

func (r *gormRepository) GetByName(name string) (*model.Institution, error) {
	var inst model.Institution
	err := r.db.Where("name = ?", name).First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}
