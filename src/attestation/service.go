// Package attestation is the append-only registry anchoring certificate
// commitments. Records are never deleted; revocation stamps a terminal
// timestamp.
package attestation

import (
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
	"gorm.io/gorm"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/model"
)

// SystemAttester is the attester of record for every anchored claim: the
// registry attests on behalf of issuers, a deliberate indirection that keeps
// anchored claims independent of issuer key rotation.
const SystemAttester = "certeth:attestation-registry"

// CertificateSchemaId identifies the certificate commitment schema.
var CertificateSchemaId = deriveSchemaId("certeth.certificate.v1")

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

// Attest anchors a commitment for a recipient inside the given transaction
// and returns the content-derived uid.
func (s *Service) Attest(tx *gorm.DB, recipient, schemaId, commitment, nonce string) (string, error) {
	if strings.TrimSpace(recipient) == "" || strings.TrimSpace(commitment) == "" {
		return "", reasoncodes.New(reasoncodes.ErrValidation, "attestation requires recipient and commitment")
	}

	uid := DeriveUid(SystemAttester, recipient, schemaId, commitment, nonce)

	repo := s.Repo
	if tx != nil {
		repo = repo.WithTx(tx)
	}

	existing, err := repo.GetByUid(uid)
	if err != nil {
		return "", err
	}
	if existing != nil {
		// Content-derived uids collide only if the exact same certificate is
		// anchored twice; fail closed rather than overwrite.
		return "", reasoncodes.New(reasoncodes.ErrDuplicateAttestation, "attestation %s already exists", uid)
	}

	att := &model.Attestation{
		Uid:        uid,
		Attester:   SystemAttester,
		Recipient:  recipient,
		SchemaId:   schemaId,
		Commitment: commitment,
		IssuedAt:   time.Now().Unix(),
	}
	if err := repo.Create(att); err != nil {
		return "", err
	}

	return uid, nil
}

// Revoke stamps the terminal revocation time. Revoking twice is an error, not
// a no-op, so callers notice divergent state.
func (s *Service) Revoke(tx *gorm.DB, uid string) error {
	repo := s.Repo
	if tx != nil {
		repo = repo.WithTx(tx)
	}

	att, err := repo.GetByUid(uid)
	if err != nil {
		return err
	}
	if att == nil {
		return reasoncodes.New(reasoncodes.ErrNotFound, "attestation %s not found", uid)
	}
	if att.Revoked() {
		return reasoncodes.New(reasoncodes.ErrAlreadyRevoked, "attestation %s already revoked", uid)
	}

	return repo.SetRevocationTime(uid, time.Now().Unix())
}

func (s *Service) Get(uid string) (*model.Attestation, error) {
	att, err := s.Repo.GetByUid(uid)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, reasoncodes.New(reasoncodes.ErrNotFound, "attestation %s not found", uid)
	}
	return att, nil
}

// IsValid reports whether the attestation exists and has not been revoked.
func (s *Service) IsValid(uid string) (bool, error) {
	att, err := s.Repo.GetByUid(uid)
	if err != nil {
		return false, err
	}
	return att != nil && !att.Revoked(), nil
}

// DeriveUid computes keccak256 over the attestation's identifying fields. The
// nonce folds per-certificate randomness in, so equal commitments for the same
// recipient still get distinct uids.
func DeriveUid(attester, recipient, schemaId, commitment, nonce string) string {
	h := sha3.NewLegacyKeccak256()
	for _, part := range []string{attester, recipient, schemaId, commitment, nonce} {
		h.Write([]byte(part))
		h.Write([]byte{0x1f})
	}
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

func deriveSchemaId(name string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
