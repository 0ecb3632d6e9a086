package zkproof

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/attestation"
	"github.com/miromero13/certeth/src/certificate"
	"github.com/miromero13/certeth/src/database"
	"github.com/miromero13/certeth/src/institution"
	"github.com/miromero13/certeth/src/model"
)

// Circuit compile and trusted setup are expensive; every test shares one system.
var testSystem = NewSystem()

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := database.NewTestDatabase()
	require.NoError(t, err)

	certs := certificate.NewService(
		certificate.NewRepository(db),
		institution.NewService(institution.NewRepository(db)),
		attestation.NewService(attestation.NewRepository(db)),
	)
	return NewService(testSystem, certs)
}

func issueCertificate(t *testing.T, svc *Service, grade int) *model.Certificate {
	t.Helper()

	cert, err := svc.Certificates.Issue(certificate.IssueRequest{
		RecipientName:    "Ada Lovelace",
		InstitutionName:  "MIT",
		CourseName:       "Cryptography",
		RecipientAddress: "0xRecipient01",
		IssuerAddress:    "0xIssuer01",
		CompletionDate:   time.Now().Add(-48 * time.Hour).Unix(),
		Grade:            grade,
	})
	require.NoError(t, err)
	return cert
}

func TestGenerateAndVerifyAboveThreshold(t *testing.T) {
	svc := newTestService(t)
	cert := issueCertificate(t, svc, 85)

	proof, err := svc.Generate(GenerateRequest{
		CertificateId: cert.Id,
		Threshold:     70,
		CallerAddress: cert.RecipientAddress,
	})
	require.NoError(t, err)

	assert.True(t, proof.Statement.GradeAboveThreshold)
	assert.Equal(t, cert.Commitment, proof.Statement.Commitment)
	assert.EqualValues(t, 70, proof.Statement.Threshold)

	require.NoError(t, testSystem.Verify(proof.Proof, proof.Statement))
}

func TestGenerateBelowThresholdProvesTheNegative(t *testing.T) {
	svc := newTestService(t)
	cert := issueCertificate(t, svc, 65)

	proof, err := svc.Generate(GenerateRequest{
		CertificateId: cert.Id,
		Threshold:     80,
		CallerAddress: cert.RecipientAddress,
	})
	require.NoError(t, err)

	// The proof is valid but the public statement says the grade is below.
	assert.False(t, proof.Statement.GradeAboveThreshold)
	require.NoError(t, testSystem.Verify(proof.Proof, proof.Statement))
}

func TestTamperedClaimBitFailsVerification(t *testing.T) {
	svc := newTestService(t)
	cert := issueCertificate(t, svc, 65)

	proof, err := svc.Generate(GenerateRequest{
		CertificateId: cert.Id,
		Threshold:     80,
		CallerAddress: cert.RecipientAddress,
	})
	require.NoError(t, err)

	// Flip the public claim: grade 65 presented as above 80.
	tampered := proof.Statement
	tampered.GradeAboveThreshold = true

	err = testSystem.Verify(proof.Proof, tampered)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrInvalidProof))
}

func TestTamperedThresholdFailsVerification(t *testing.T) {
	svc := newTestService(t)
	cert := issueCertificate(t, svc, 85)

	proof, err := svc.Generate(GenerateRequest{
		CertificateId: cert.Id,
		Threshold:     70,
		CallerAddress: cert.RecipientAddress,
	})
	require.NoError(t, err)

	tampered := proof.Statement
	tampered.Threshold = 95

	err = testSystem.Verify(proof.Proof, tampered)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrInvalidProof))
}

func TestGenerateAuthorization(t *testing.T) {
	svc := newTestService(t)
	cert := issueCertificate(t, svc, 85)

	_, err := svc.Generate(GenerateRequest{
		CertificateId: cert.Id,
		Threshold:     70,
		CallerAddress: cert.IssuerAddress,
	})
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrUnauthorized))

	_, err = svc.Generate(GenerateRequest{
		CertificateId: cert.Id,
		Threshold:     70,
		CallerAddress: "",
	})
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrUnauthorized))
}

func TestGenerateRejectsRevokedCertificate(t *testing.T) {
	svc := newTestService(t)
	cert := issueCertificate(t, svc, 85)

	_, err := svc.Certificates.Revoke(cert.Id, cert.IssuerAddress)
	require.NoError(t, err)

	_, err = svc.Generate(GenerateRequest{
		CertificateId: cert.Id,
		Threshold:     70,
		CallerAddress: cert.RecipientAddress,
	})
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrAlreadyRevoked))
}

func TestGenerateRejectsBadThreshold(t *testing.T) {
	svc := newTestService(t)
	cert := issueCertificate(t, svc, 85)

	for _, threshold := range []int{-1, 101} {
		_, err := svc.Generate(GenerateRequest{
			CertificateId: cert.Id,
			Threshold:     threshold,
			CallerAddress: cert.RecipientAddress,
		})
		assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))
	}
}

func TestProofEnvelopeRoundTrip(t *testing.T) {
	svc := newTestService(t)
	cert := issueCertificate(t, svc, 85)

	proof, err := svc.Generate(GenerateRequest{
		CertificateId: cert.Id,
		Threshold:     70,
		CallerAddress: cert.RecipientAddress,
	})
	require.NoError(t, err)

	blob, err := proof.SerializeBorsh()
	require.NoError(t, err)

	restored, err := DeserializeBorsh(blob)
	require.NoError(t, err)
	assert.Equal(t, proof.Statement, restored.Statement)

	require.NoError(t, testSystem.Verify(restored.Proof, restored.Statement))
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	_, err := DeserializeBorsh(nil)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrMalformedProof))

	_, err = DeserializeBorsh([]byte{0x01, 0x02, 0x03})
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrMalformedProof))
}
