package zkproof

import (
	"strings"
	"time"

	"github.com/miromero13/certeth/pkg/logger"
	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/certificate"
	"github.com/miromero13/certeth/src/commitment"
)

// DefaultMaxAgeSeconds bounds how old a certificate may be for a proof that
// does not request an explicit window: ten years.
const DefaultMaxAgeSeconds int64 = 10 * 365 * 24 * 3600

type GenerateRequest struct {
	CertificateId uint   `json:"certificate_id"`
	Threshold     int    `json:"threshold"`
	CallerAddress string `json:"caller_address"`
	MaxAgeSeconds int64  `json:"max_age_seconds"`
}

type Service struct {
	System       *System
	Certificates *certificate.Service
}

func NewService(system *System, certificates *certificate.Service) *Service {
	return &Service{System: system, Certificates: certificates}
}

// Generate produces a threshold proof for a certificate. Only the recipient
// may generate proofs: the private opening is theirs to use. The returned
// proof is honest by construction; if the grade is below the threshold the
// statement says so.
func (s *Service) Generate(req GenerateRequest) (*ThresholdProof, error) {
	if req.Threshold < 0 || req.Threshold > commitment.GradeMax {
		return nil, reasoncodes.New(reasoncodes.ErrValidation, "threshold %d outside [0,%d]", req.Threshold, commitment.GradeMax)
	}

	maxAge := req.MaxAgeSeconds
	if maxAge <= 0 {
		maxAge = DefaultMaxAgeSeconds
	}

	cert, err := s.Certificates.Get(req.CertificateId)
	if err != nil {
		return nil, err
	}

	caller := strings.ToLower(strings.TrimSpace(req.CallerAddress))
	if caller == "" || caller != strings.ToLower(cert.RecipientAddress) {
		return nil, reasoncodes.New(reasoncodes.ErrUnauthorized, "only the certificate recipient may generate proofs")
	}

	if !cert.IsValid {
		return nil, reasoncodes.New(reasoncodes.ErrAlreadyRevoked, "certificate %d is revoked", cert.Id)
	}

	commitmentValue, err := commitment.Decode(cert.Commitment)
	if err != nil {
		return nil, err
	}
	nonceValue, err := commitment.ParseNonce(cert.Nonce)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	statement := Statement{
		CertificateId:       uint32(cert.Id),
		Commitment:          cert.Commitment,
		Threshold:           int64(req.Threshold),
		GeneratedAt:         now,
		InstitutionId:       cert.InstitutionId,
		MaxAgeSeconds:       maxAge,
		GradeAboveThreshold: cert.Grade >= req.Threshold,
	}

	proof, err := s.System.Prove(Assignment{
		Commitment:          commitmentValue,
		Threshold:           int64(req.Threshold),
		CurrentTimestamp:    now,
		InstitutionId:       cert.InstitutionId,
		MaxAgeSeconds:       maxAge,
		GradeAboveThreshold: statement.GradeAboveThreshold,

		Grade:          int64(cert.Grade),
		RecipientId:    commitment.HashIdentity(cert.RecipientAddress),
		CompletionDate: cert.CompletionDate,
		Nonce:          nonceValue,
	})
	if err != nil {
		return nil, err
	}

	logger.Default().Infof("generated threshold proof for certificate %d (threshold %d, above=%t)",
		cert.Id, req.Threshold, statement.GradeAboveThreshold)

	return &ThresholdProof{Statement: statement, Proof: proof}, nil
}
