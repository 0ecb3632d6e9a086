package model

import "time"

// AuditLogEntry is a structured log line persisted by the log sink worker.
type AuditLogEntry struct {
	Id        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Level     string    `gorm:"type:varchar(10);not null;index" json:"level"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Service   string    `gorm:"type:varchar(50);not null;index" json:"service"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditLogEntry) TableName() string {
	return "audit_log_entries"
}
