// Package verification runs threshold proofs through the staged verification
// pipeline and appends the immutable audit record. Every verification performs
// the real pairing check; the level decides which surrounding checks gate the
// verdict and how strict the bar is.
package verification

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/miromero13/certeth/pkg/logger"
	"github.com/miromero13/certeth/pkg/rabbitmq"
	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/attestation"
	"github.com/miromero13/certeth/src/certificate"
	"github.com/miromero13/certeth/src/commitment"
	"github.com/miromero13/certeth/src/model"
	"github.com/miromero13/certeth/src/reputation"
	"github.com/miromero13/certeth/src/zkproof"
)

const (
	// ClockSkewSeconds bounds how far a proof's declared timestamp may drift
	// from the verifier's clock in either direction.
	ClockSkewSeconds int64 = 300

	// ReputationFloor is the issuer policy floor. IssuerValid reflects it on
	// every record; only forensic verifications gate the verdict on it.
	ReputationFloor = 400
)

const OutcomePublisherAlias rabbitmq.PublisherAlias = "verification-outcomes"

// Score weights, summing to 100.
const (
	weightCrypto      = 40
	weightAttestation = 30
	weightRecency     = 20
	weightIssuer      = 10
)

type Service struct {
	System       *zkproof.System
	Certificates *certificate.Service
	Attestations *attestation.Service
	Reputation   *reputation.Service
	Repo         Repository

	// Outcomes fans verification results out to the audit sink and the chain
	// anchor worker. Nil means no broker is attached; verification itself
	// never depends on one.
	Outcomes rabbitmq.IRabbitmqPublisher
}

func NewService(
	system *zkproof.System,
	certificates *certificate.Service,
	attestations *attestation.Service,
	rep *reputation.Service,
	repo Repository,
	outcomes rabbitmq.IRabbitmqPublisher,
) *Service {
	return &Service{
		System:       system,
		Certificates: certificates,
		Attestations: attestations,
		Reputation:   rep,
		Repo:         repo,
		Outcomes:     outcomes,
	}
}

// VerifyProof checks a serialized threshold proof at the requested level and
// appends the audit record. Undecodable blobs, unknown certificates and
// unknown levels return an error with no record; every decodable proof bound
// to a known certificate produces a record, pass or fail.
func (s *Service) VerifyProof(blob []byte, level model.VerificationLevel, verifier string) (*model.VerificationRecord, error) {
	if !level.Valid() {
		return nil, reasoncodes.New(reasoncodes.ErrValidation, "unknown verification level %d", int(level))
	}

	proof, err := zkproof.DeserializeBorsh(blob)
	if err != nil {
		return nil, err
	}
	statement := proof.Statement

	cert, err := s.Certificates.Get(uint(statement.CertificateId))
	if err != nil {
		return nil, err
	}

	record := &model.VerificationRecord{
		Id:            uuid.NewString(),
		CertificateId: cert.Id,
		Level:         int(level),
		Timestamp:     time.Now().Unix(),
		Verifier:      verifier,
		GradeValid:    statement.GradeAboveThreshold,
	}
	var failures []string

	structuralOk := statement.Threshold >= 0 && statement.Threshold <= 100
	if !structuralOk {
		failures = append(failures, string(reasoncodes.ErrMalformedProof))
	}

	// Commitment binding plus the pairing check. Both must hold for the
	// cryptographic leg to count; the commitment match alone carries Basic.
	commitmentOk := false
	if structuralOk {
		commitmentOk = statement.Commitment == cert.Commitment
		record.HashValid = commitmentOk
		if !commitmentOk {
			failures = append(failures, string(reasoncodes.ErrCommitmentMismatch))
		} else if verifyErr := s.System.Verify(proof.Proof, statement); verifyErr != nil {
			record.HashValid = false
			failures = append(failures, string(reasoncodes.ErrInvalidProof))
		}
	}

	// Attestation registry check: anchored and not revoked.
	attValid, err := s.Attestations.IsValid(cert.AttestationUid)
	if err != nil {
		return nil, err
	}
	record.EasValid = attValid && cert.IsValid
	if !record.EasValid {
		failures = append(failures, string(reasoncodes.ErrAttestationRevoked))
	}

	// Recency: the declared timestamp must sit within the skew window around
	// the verifier's clock.
	drift := record.Timestamp - statement.GeneratedAt
	record.TimeValid = drift >= -ClockSkewSeconds && drift <= ClockSkewSeconds
	if !record.TimeValid {
		failures = append(failures, string(reasoncodes.ErrProofExpired))
	}

	// Issuer standing.
	trust, err := s.Reputation.TrustWeight(cert.IssuerAddress)
	if err != nil {
		return nil, err
	}
	record.IssuerValid = trust*reputation.ScoreMax >= ReputationFloor

	return s.finalize(record, cert, level, trust, failures, commitmentOk)
}

// VerifyCertificate is the direct (non-zero-knowledge) path: the stored
// record's own fields reopen the commitment, so the check covers ledger
// integrity rather than a holder's hidden claim. The recency leg bounds the
// certificate's age instead of a proof timestamp.
func (s *Service) VerifyCertificate(certificateId uint, level model.VerificationLevel, verifier string) (*model.VerificationRecord, error) {
	if !level.Valid() {
		return nil, reasoncodes.New(reasoncodes.ErrValidation, "unknown verification level %d", int(level))
	}

	cert, err := s.Certificates.Get(certificateId)
	if err != nil {
		return nil, err
	}

	record := &model.VerificationRecord{
		Id:            uuid.NewString(),
		CertificateId: cert.Id,
		Level:         int(level),
		Timestamp:     time.Now().Unix(),
		Verifier:      verifier,
		GradeValid:    true,
	}
	var failures []string

	recomputed, err := commitment.Commit(cert.Grade, cert.RecipientAddress, cert.CompletionDate, cert.InstitutionId, cert.Nonce)
	if err != nil {
		return nil, err
	}
	record.HashValid = recomputed == cert.Commitment
	if !record.HashValid {
		failures = append(failures, string(reasoncodes.ErrCommitmentMismatch))
	}

	attValid, err := s.Attestations.IsValid(cert.AttestationUid)
	if err != nil {
		return nil, err
	}
	record.EasValid = attValid && cert.IsValid
	if !record.EasValid {
		failures = append(failures, string(reasoncodes.ErrAttestationRevoked))
	}

	age := record.Timestamp - cert.CompletionDate
	record.TimeValid = age >= 0 && age <= zkproof.DefaultMaxAgeSeconds
	if !record.TimeValid {
		failures = append(failures, string(reasoncodes.ErrProofExpired))
	}

	trust, err := s.Reputation.TrustWeight(cert.IssuerAddress)
	if err != nil {
		return nil, err
	}
	record.IssuerValid = trust*reputation.ScoreMax >= ReputationFloor

	return s.finalize(record, cert, level, trust, failures, record.HashValid)
}

// finalize scores the record, settles the verdict, appends it to the ledger and
// fans the outcome out. Reputation write failures are logged, not fatal: the
// verification itself already committed.
func (s *Service) finalize(record *model.VerificationRecord, cert *model.Certificate, level model.VerificationLevel, trust float64, failures []string, commitmentOk bool) (*model.VerificationRecord, error) {
	record.Score = s.score(record, trust)
	record.Status, record.IsValid = s.verdict(record, level, commitmentOk)
	record.SetErrors(failures)

	if err := s.Repo.Create(record); err != nil {
		return nil, err
	}

	if _, err := s.Reputation.Record(cert.IssuerAddress, record.IsValid); err != nil {
		logger.Default().Errorf(err, "could not record reputation for issuer %s", cert.IssuerAddress)
	}

	s.publishOutcome(record, cert, level)

	logger.Default().Infof("verification %s for certificate %d: status=%d score=%d level=%s",
		record.Id, cert.Id, record.Status, record.Score, level.String())

	return record, nil
}

// score weighs the checks: cryptographic binding 40, attestation 30, recency
// 20, issuer trust up to 10 scaled by standing.
func (s *Service) score(record *model.VerificationRecord, trust float64) int {
	score := 0
	if record.HashValid {
		score += weightCrypto
	}
	if record.EasValid {
		score += weightAttestation
	}
	if record.TimeValid {
		score += weightRecency
	}
	score += int(math.Round(weightIssuer * trust))
	return score
}

// verdict gates the status on the checks the level demands: the commitment
// binding always, the pairing and attestation from Standard, recency from
// Premium, issuer standing only at Forensic. Every check is still executed and
// recorded regardless of the level.
func (s *Service) verdict(record *model.VerificationRecord, level model.VerificationLevel, commitmentOk bool) (int, bool) {
	if !commitmentOk {
		return int(model.StatusRejected), false
	}

	if level >= model.LevelStandard && (!record.HashValid || !record.EasValid) {
		return int(model.StatusRejected), false
	}

	if level >= model.LevelPremium && !record.TimeValid {
		return int(model.StatusExpired), false
	}

	if level == model.LevelForensic && !record.IssuerValid {
		return int(model.StatusRejected), false
	}

	return int(model.StatusVerified), true
}

func (s *Service) publishOutcome(record *model.VerificationRecord, cert *model.Certificate, level model.VerificationLevel) {
	if s.Outcomes == nil {
		return
	}

	outcome := model.VerificationOutcome{
		VerificationId: record.Id,
		CertificateId:  cert.Id,
		Issuer:         cert.IssuerAddress,
		Verifier:       record.Verifier,
		Level:          level.String(),
		IsValid:        record.IsValid,
		Score:          record.Score,
		Errors:         record.ErrorList(),
		Timestamp:      record.Timestamp,
	}
	if err := s.Outcomes.Publish(outcome); err != nil {
		logger.Default().Errorf(err, "could not publish verification outcome %s", record.Id)
	}
}

func (s *Service) Get(id string) (*model.VerificationRecord, error) {
	record, err := s.Repo.GetById(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, reasoncodes.New(reasoncodes.ErrNotFound, "verification %s not found", id)
	}
	return record, nil
}

func (s *Service) History(certificateId uint) ([]model.VerificationRecord, error) {
	return s.Repo.ListByCertificate(certificateId)
}

func (s *Service) ByVerifier(verifier string) ([]model.VerificationRecord, error) {
	return s.Repo.ListByVerifier(verifier)
}
