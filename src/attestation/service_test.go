package attestation

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

func TestAttestAndGet(t *testing.T) {
	svc := newTestService(t)

	uid, err := svc.Attest(nil, "0xrecipient", CertificateSchemaId, "0xc0ffee", "aabbccddeeff00112233445566778899")
	require.NoError(t, err)
	assert.NotEmpty(t, uid)

	att, err := svc.Get(uid)
	require.NoError(t, err)
	assert.Equal(t, SystemAttester, att.Attester)
	assert.Equal(t, "0xrecipient", att.Recipient)
	assert.Equal(t, "0xc0ffee", att.Commitment)
	assert.False(t, att.Revoked())

	valid, err := svc.IsValid(uid)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestAttestDuplicateFailsClosed(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Attest(nil, "0xrecipient", CertificateSchemaId, "0xc0ffee", "aabbccddeeff00112233445566778899")
	require.NoError(t, err)

	_, err = svc.Attest(nil, "0xrecipient", CertificateSchemaId, "0xc0ffee", "aabbccddeeff00112233445566778899")
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrDuplicateAttestation))
}

func TestRevokeIsTerminal(t *testing.T) {
	svc := newTestService(t)

	uid, err := svc.Attest(nil, "0xrecipient", CertificateSchemaId, "0xc0ffee", "aabbccddeeff00112233445566778899")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(nil, uid))

	valid, err := svc.IsValid(uid)
	require.NoError(t, err)
	assert.False(t, valid)

	att, err := svc.Get(uid)
	require.NoError(t, err)
	firstRevocation := att.RevocationTime
	assert.NotZero(t, firstRevocation)

	err = svc.Revoke(nil, uid)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrAlreadyRevoked))

	att, err = svc.Get(uid)
	require.NoError(t, err)
	assert.Equal(t, firstRevocation, att.RevocationTime)
}

func TestRevokeUnknownUid(t *testing.T) {
	svc := newTestService(t)

	err := svc.Revoke(nil, "0xdeadbeef")
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrNotFound))
}

func TestDeriveUidDistinguishesInputs(t *testing.T) {
	base := DeriveUid(SystemAttester, "0xr", CertificateSchemaId, "0xc", "n1")

	assert.NotEqual(t, base, DeriveUid(SystemAttester, "0xr2", CertificateSchemaId, "0xc", "n1"))
	assert.NotEqual(t, base, DeriveUid(SystemAttester, "0xr", CertificateSchemaId, "0xc2", "n1"))
	assert.NotEqual(t, base, DeriveUid(SystemAttester, "0xr", CertificateSchemaId, "0xc", "n2"))
	assert.Equal(t, base, DeriveUid(SystemAttester, "0xr", CertificateSchemaId, "0xc", "n1"))
}
