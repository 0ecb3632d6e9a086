package reputation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := database.NewTestDatabase()
	require.NoError(t, err)

	return NewService(NewRepository(db))
}

func TestUnknownIssuerStartsAtMidpoint(t *testing.T) {
	svc := newTestService(t)

	rep, err := svc.Get("0xIssuer")
	require.NoError(t, err)
	assert.Equal(t, ScoreStart, rep.Score)
	assert.Zero(t, rep.TotalValid)
	assert.Zero(t, rep.TotalInvalid)
}

func TestRecordAdjustsScore(t *testing.T) {
	svc := newTestService(t)

	rep, err := svc.Record("0xIssuer", true)
	require.NoError(t, err)
	assert.Equal(t, ScoreStart+Step, rep.Score)
	assert.Equal(t, 1, rep.TotalValid)

	rep, err = svc.Record("0xIssuer", false)
	require.NoError(t, err)
	assert.Equal(t, ScoreStart, rep.Score)
	assert.Equal(t, 1, rep.TotalInvalid)
}

func TestScoreClampsAtBounds(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < (ScoreMax-ScoreStart)/Step+5; i++ {
		_, err := svc.Record("0xGood", true)
		require.NoError(t, err)
	}
	rep, err := svc.Get("0xGood")
	require.NoError(t, err)
	assert.Equal(t, ScoreMax, rep.Score)

	for i := 0; i < ScoreMax/Step+5; i++ {
		_, err := svc.Record("0xBad", false)
		require.NoError(t, err)
	}
	rep, err = svc.Get("0xBad")
	require.NoError(t, err)
	assert.Equal(t, ScoreMin, rep.Score)
}

func TestIssuerAddressIsCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Record("0xISSUER", true)
	require.NoError(t, err)

	rep, err := svc.Get("0xissuer")
	require.NoError(t, err)
	assert.Equal(t, ScoreStart+Step, rep.Score)
}

func TestTrustWeight(t *testing.T) {
	svc := newTestService(t)

	weight, err := svc.TrustWeight("0xIssuer")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, weight, 1e-9)
}

func TestEmptyIssuerRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get("  ")
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))

	_, err = svc.Record("", true)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))
}
