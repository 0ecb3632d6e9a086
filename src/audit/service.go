// Package audit persists structured log lines and verification outcomes
// shipped over the broker, queryable through the admin endpoints.
package audit

import (
	"fmt"
	"time"

	logger_message "github.com/miromero13/certeth/pkg/utilities/logger"
	"github.com/miromero13/certeth/src/model"
)

const serviceName = "certeth-api"

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

func (s *Service) ProcessLogMessage(logMessage logger_message.LoggerMessage) error {
	return s.Repo.CreateLogEntry(model.AuditLogEntry{
		Level:     logMessage.Level,
		Message:   logMessage.Message,
		Timestamp: time.Unix(logMessage.Timestamp.T, 0).UTC(),
		Service:   serviceName,
	})
}

// ProcessOutcome records a verification outcome as an audit line, keeping the
// trail readable from one place.
func (s *Service) ProcessOutcome(outcome model.VerificationOutcome) error {
	level := "info"
	if !outcome.IsValid {
		level = "warn"
	}
	return s.Repo.CreateLogEntry(model.AuditLogEntry{
		Level:     level,
		Message:   outcomeMessage(outcome),
		Timestamp: time.Unix(outcome.Timestamp, 0).UTC(),
		Service:   "verification",
	})
}

func outcomeMessage(outcome model.VerificationOutcome) string {
	verdict := "verified"
	if !outcome.IsValid {
		verdict = "rejected"
	}
	return fmt.Sprintf("certificate %d %s at level %s (verification %s)",
		outcome.CertificateId, verdict, outcome.Level, outcome.VerificationId)
}

func (s *Service) GetLogEntries(limit, offset int) ([]model.AuditLogEntry, error) {
	return s.Repo.GetLogEntries(limit, offset)
}

func (s *Service) GetLogEntriesByService(service string, limit, offset int) ([]model.AuditLogEntry, error) {
	return s.Repo.GetLogEntriesByService(service, limit, offset)
}

func (s *Service) GetLogEntriesByLevel(level string, limit, offset int) ([]model.AuditLogEntry, error) {
	return s.Repo.GetLogEntriesByLevel(level, limit, offset)
}
