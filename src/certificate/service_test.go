package certificate

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/attestation"
	"github.com/miromero13/certeth/src/database"
	"github.com/miromero13/certeth/src/institution"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := database.NewTestDatabase()
	require.NoError(t, err)

	return NewService(
		NewRepository(db),
		institution.NewService(institution.NewRepository(db)),
		attestation.NewService(attestation.NewRepository(db)),
	)
}

func sampleRequest() IssueRequest {
	return IssueRequest{
		RecipientName:    "Ada Lovelace",
		InstitutionName:  "MIT",
		CourseName:       "Distributed Systems",
		Description:      "Graduate course",
		RecipientAddress: "0xRecipient01",
		IssuerAddress:    "0xIssuer01",
		CompletionDate:   time.Now().Add(-24 * time.Hour).Unix(),
		Grade:            87,
	}
}

func TestIssuePersistsCertificateAndAttestation(t *testing.T) {
	svc := newTestService(t)

	cert, err := svc.Issue(sampleRequest())
	require.NoError(t, err)

	assert.NotZero(t, cert.Id)
	assert.NotEmpty(t, cert.Commitment)
	assert.NotEmpty(t, cert.Nonce)
	assert.NotEmpty(t, cert.AttestationUid)
	assert.NotZero(t, cert.InstitutionId)
	assert.True(t, cert.IsValid)

	valid, err := svc.Attestations.IsValid(cert.AttestationUid)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestIssueRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)

	cases := map[string]func(*IssueRequest){
		"empty recipient name":   func(r *IssueRequest) { r.RecipientName = "  " },
		"empty institution":      func(r *IssueRequest) { r.InstitutionName = "" },
		"empty course":           func(r *IssueRequest) { r.CourseName = "" },
		"empty recipient addr":   func(r *IssueRequest) { r.RecipientAddress = "" },
		"empty issuer addr":      func(r *IssueRequest) { r.IssuerAddress = "" },
		"grade above scale":      func(r *IssueRequest) { r.Grade = 101 },
		"negative grade":         func(r *IssueRequest) { r.Grade = -1 },
		"future completion date": func(r *IssueRequest) { r.CompletionDate = time.Now().Add(time.Hour).Unix() },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := sampleRequest()
			mutate(&req)

			_, err := svc.Issue(req)
			assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))
		})
	}
}

func TestIssueIdenticalRequestsGetDistinctCommitments(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Issue(sampleRequest())
	require.NoError(t, err)
	second, err := svc.Issue(sampleRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
	assert.NotEqual(t, first.Nonce, second.Nonce)
	assert.NotEqual(t, first.Commitment, second.Commitment)
	assert.NotEqual(t, first.AttestationUid, second.AttestationUid)
}

func TestConcurrentIssuanceYieldsUniqueIds(t *testing.T) {
	svc := newTestService(t)

	const workers = 10

	var wg sync.WaitGroup
	ids := make(chan uint, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := sampleRequest()
			req.RecipientAddress = fmt.Sprintf("0xRecipient%02d", i)
			cert, err := svc.Issue(req)
			if assert.NoError(t, err) {
				ids <- cert.Id
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[uint]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate certificate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestRevokeByIssuerCascades(t *testing.T) {
	svc := newTestService(t)

	cert, err := svc.Issue(sampleRequest())
	require.NoError(t, err)

	revoked, err := svc.Revoke(cert.Id, cert.IssuerAddress)
	require.NoError(t, err)
	assert.False(t, revoked.IsValid)

	stored, err := svc.Get(cert.Id)
	require.NoError(t, err)
	assert.False(t, stored.IsValid)

	valid, err := svc.Attestations.IsValid(cert.AttestationUid)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestRevokeByRecipientAllowed(t *testing.T) {
	svc := newTestService(t)

	cert, err := svc.Issue(sampleRequest())
	require.NoError(t, err)

	// Address comparison ignores checksum casing.
	_, err = svc.Revoke(cert.Id, "0XRECIPIENT01")
	require.NoError(t, err)
}

func TestRevokeByStrangerForbidden(t *testing.T) {
	svc := newTestService(t)

	cert, err := svc.Issue(sampleRequest())
	require.NoError(t, err)

	_, err = svc.Revoke(cert.Id, "0xSomeoneElse")
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrUnauthorized))

	stored, err := svc.Get(cert.Id)
	require.NoError(t, err)
	assert.True(t, stored.IsValid)
}

func TestRevokeTwiceFails(t *testing.T) {
	svc := newTestService(t)

	cert, err := svc.Issue(sampleRequest())
	require.NoError(t, err)

	_, err = svc.Revoke(cert.Id, cert.IssuerAddress)
	require.NoError(t, err)

	_, err = svc.Revoke(cert.Id, cert.IssuerAddress)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrAlreadyRevoked))
}

func TestGetUnknownCertificate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(9999)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrNotFound))
}

func TestListAndCount(t *testing.T) {
	svc := newTestService(t)

	reqA := sampleRequest()
	reqB := sampleRequest()
	reqB.RecipientAddress = "0xRecipient02"
	reqC := sampleRequest()
	reqC.IssuerAddress = "0xIssuer02"

	for _, req := range []IssueRequest{reqA, reqB, reqC} {
		_, err := svc.Issue(req)
		require.NoError(t, err)
	}

	byIssuer, err := svc.ListByIssuer("0xIssuer01")
	require.NoError(t, err)
	assert.Len(t, byIssuer, 2)

	byRecipient, err := svc.ListByRecipient("0xRecipient01")
	require.NoError(t, err)
	assert.Len(t, byRecipient, 2)

	count, err := svc.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestVerifyDirect(t *testing.T) {
	svc := newTestService(t)

	cert, err := svc.Issue(sampleRequest())
	require.NoError(t, err)

	match, err := svc.VerifyDirect(cert.Id, 87, cert.Nonce)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = svc.VerifyDirect(cert.Id, 88, cert.Nonce)
	require.NoError(t, err)
	assert.False(t, match)

	_, err = svc.Revoke(cert.Id, cert.IssuerAddress)
	require.NoError(t, err)

	match, err = svc.VerifyDirect(cert.Id, 87, cert.Nonce)
	require.NoError(t, err)
	assert.False(t, match)
}
