package audit

import (
	"gorm.io/gorm"

	"github.com/miromero13/certeth/src/model"
)

type Repository interface {
	CreateLogEntry(entry model.AuditLogEntry) error
	GetLogEntries(limit, offset int) ([]model.AuditLogEntry, error)
	GetLogEntriesByService(service string, limit, offset int) ([]model.AuditLogEntry, error)
	GetLogEntriesByLevel(level string, limit, offset int) ([]model.AuditLogEntry, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateLogEntry(entry model.AuditLogEntry) error {
	return r.db.Create(&entry).Error
}

func (r *gormRepository) GetLogEntries(limit, offset int) ([]model.AuditLogEntry, error) {
	var entries []model.AuditLogEntry
	err := r.db.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}

func (r *gormRepository) GetLogEntriesByService(service string, limit, offset int) ([]model.AuditLogEntry, error) {
	var entries []model.AuditLogEntry
	err := r.db.Where("service = ?", service).Order("timestamp DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}

func (r *gormRepository) GetLogEntriesByLevel(level string, limit, offset int) ([]model.AuditLogEntry, error) {
	var entries []model.AuditLogEntry
	err := r.db.Where("level = ?", level).Order("timestamp DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}
