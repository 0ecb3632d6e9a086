package institution

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

func TestResolveRegistersOnFirstSight(t *testing.T) {
	svc := newTestService(t)

	id, err := svc.Resolve("MIT")
	require.NoError(t, err)
	assert.Positive(t, id)

	again, err := svc.Resolve("MIT")
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestResolveTrimsWhitespace(t *testing.T) {
	svc := newTestService(t)

	id, err := svc.Resolve("  MIT  ")
	require.NoError(t, err)

	again, err := svc.Resolve("MIT")
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestResolveRejectsEmptyName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Resolve("   ")
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))
}

func TestDeriveIdIsStableAndCaseInsensitive(t *testing.T) {
	assert.Equal(t, DeriveId("MIT"), DeriveId("mit"))
	assert.NotEqual(t, DeriveId("MIT"), DeriveId("ETH Zurich"))
	assert.Positive(t, DeriveId("MIT"))
}
