package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger_message "github.com/miromero13/certeth/pkg/utilities/logger"
	"github.com/miromero13/certeth/pkg/utilities/timeutil"
	"github.com/miromero13/certeth/src/database"
	"github.com/miromero13/certeth/src/model"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := database.NewTestDatabase()
	require.NoError(t, err)

	return NewService(NewRepository(db))
}

func TestProcessLogMessage(t *testing.T) {
	svc := newTestService(t)

	err := svc.ProcessLogMessage(logger_message.LoggerMessage{
		Level:     "info",
		Message:   "issued certificate 1",
		Timestamp: timeutil.NowUTC(),
	})
	require.NoError(t, err)

	entries, err := svc.GetLogEntries(10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "issued certificate 1", entries[0].Message)
	assert.Equal(t, "certeth-api", entries[0].Service)
}

func TestProcessOutcome(t *testing.T) {
	svc := newTestService(t)

	err := svc.ProcessOutcome(model.VerificationOutcome{
		VerificationId: "abc-123",
		CertificateId:  7,
		Level:          "Standard",
		IsValid:        false,
		Timestamp:      time.Now().Unix(),
	})
	require.NoError(t, err)

	entries, err := svc.GetLogEntriesByService("verification", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0].Level)
	assert.Contains(t, entries[0].Message, "rejected")
	assert.Contains(t, entries[0].Message, "abc-123")
}

func TestFilterByLevel(t *testing.T) {
	svc := newTestService(t)

	for _, level := range []string{"info", "warn", "info"} {
		err := svc.ProcessLogMessage(logger_message.LoggerMessage{
			Level:     level,
			Message:   "line",
			Timestamp: timeutil.NowUTC(),
		})
		require.NoError(t, err)
	}

	warns, err := svc.GetLogEntriesByLevel("warn", 10, 0)
	require.NoError(t, err)
	assert.Len(t, warns, 1)
}
