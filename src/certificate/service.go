// Package certificate is the ledger of issued credentials. Issuance computes
// the commitment, anchors it in the attestation registry and persists the
// record in one transaction; revocation cascades to the attestation the same
// way.
package certificate

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/miromero13/certeth/pkg/logger"
	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/attestation"
	"github.com/miromero13/certeth/src/commitment"
	"github.com/miromero13/certeth/src/institution"
	"github.com/miromero13/certeth/src/model"
)

type IssueRequest struct {
	RecipientName    string `json:"recipient_name"`
	InstitutionName  string `json:"institution_name"`
	CourseName       string `json:"course_name"`
	Description      string `json:"description"`
	RecipientAddress string `json:"recipient_address"`
	IssuerAddress    string `json:"issuer_address"`
	CompletionDate   int64  `json:"completion_date"`
	Grade            int    `json:"grade"`
}

type Service struct {
	Repo         Repository
	Institutions *institution.Service
	Attestations *attestation.Service
}

func NewService(repo Repository, institutions *institution.Service, attestations *attestation.Service) *Service {
	return &Service{
		Repo:         repo,
		Institutions: institutions,
		Attestations: attestations,
	}
}

// Issue validates the request, commits to the private fields with a fresh
// nonce and writes certificate plus attestation atomically. Concurrent issuance
// is safe: ids come from the database sequence and each certificate gets its
// own nonce, so identical requests still anchor distinct attestations.
func (s *Service) Issue(req IssueRequest) (*model.Certificate, error) {
	if err := validateIssueRequest(req); err != nil {
		return nil, err
	}

	institutionId, err := s.Institutions.Resolve(req.InstitutionName)
	if err != nil {
		return nil, err
	}

	nonce, err := commitment.NewNonce()
	if err != nil {
		return nil, err
	}

	hash, err := commitment.Commit(req.Grade, req.RecipientAddress, req.CompletionDate, institutionId, nonce)
	if err != nil {
		return nil, err
	}

	cert := &model.Certificate{
		RecipientName:    strings.TrimSpace(req.RecipientName),
		InstitutionName:  strings.TrimSpace(req.InstitutionName),
		CourseName:       strings.TrimSpace(req.CourseName),
		Description:      req.Description,
		RecipientAddress: req.RecipientAddress,
		IssuerAddress:    req.IssuerAddress,
		IssuedAt:         time.Now().Unix(),
		CompletionDate:   req.CompletionDate,
		Grade:            req.Grade,
		Nonce:            nonce,
		InstitutionId:    institutionId,
		Commitment:       hash,
		IsValid:          true,
	}

	err = s.Repo.Transaction(func(tx *gorm.DB) error {
		uid, attestErr := s.Attestations.Attest(tx, req.RecipientAddress, attestation.CertificateSchemaId, hash, nonce)
		if attestErr != nil {
			return attestErr
		}
		cert.AttestationUid = uid
		return s.Repo.WithTx(tx).Create(cert)
	})
	if err != nil {
		return nil, err
	}

	logger.Default().Infof("issued certificate %d for %s (attestation %s)", cert.Id, cert.RecipientAddress, cert.AttestationUid)
	return cert, nil
}

// Revoke flips the certificate invalid and revokes its attestation in the same
// transaction. Only the issuer or the recipient may revoke.
func (s *Service) Revoke(id uint, callerAddress string) (*model.Certificate, error) {
	cert, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	caller := strings.ToLower(strings.TrimSpace(callerAddress))
	if caller == "" ||
		(caller != strings.ToLower(cert.IssuerAddress) && caller != strings.ToLower(cert.RecipientAddress)) {
		return nil, reasoncodes.New(reasoncodes.ErrUnauthorized, "address %s may not revoke certificate %d", callerAddress, id)
	}

	if !cert.IsValid {
		return nil, reasoncodes.New(reasoncodes.ErrAlreadyRevoked, "certificate %d already revoked", id)
	}

	err = s.Repo.Transaction(func(tx *gorm.DB) error {
		if revokeErr := s.Attestations.Revoke(tx, cert.AttestationUid); revokeErr != nil {
			return revokeErr
		}
		return s.Repo.WithTx(tx).MarkRevoked(id)
	})
	if err != nil {
		return nil, err
	}

	logger.Default().Infof("revoked certificate %d (attestation %s)", id, cert.AttestationUid)

	cert.IsValid = false
	return cert, nil
}

func (s *Service) Get(id uint) (*model.Certificate, error) {
	cert, err := s.Repo.GetById(id)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, reasoncodes.New(reasoncodes.ErrNotFound, "certificate %d not found", id)
	}
	return cert, nil
}

func (s *Service) ListByIssuer(issuer string) ([]model.Certificate, error) {
	return s.Repo.ListByIssuer(issuer)
}

func (s *Service) ListByRecipient(recipient string) ([]model.Certificate, error) {
	return s.Repo.ListByRecipient(recipient)
}

func (s *Service) Count() (int64, error) {
	return s.Repo.Count()
}

// VerifyDirect recomputes the commitment from a disclosed opening and checks it
// against the stored record. This is the non-zero-knowledge path: the caller
// reveals grade and nonce voluntarily.
func (s *Service) VerifyDirect(id uint, grade int, nonce string) (bool, error) {
	cert, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if !cert.IsValid {
		return false, nil
	}

	recomputed, err := commitment.Commit(grade, cert.RecipientAddress, cert.CompletionDate, cert.InstitutionId, nonce)
	if err != nil {
		return false, err
	}
	return recomputed == cert.Commitment, nil
}

func validateIssueRequest(req IssueRequest) error {
	switch {
	case strings.TrimSpace(req.RecipientName) == "":
		return reasoncodes.New(reasoncodes.ErrValidation, "recipient name is required")
	case strings.TrimSpace(req.InstitutionName) == "":
		return reasoncodes.New(reasoncodes.ErrValidation, "institution name is required")
	case strings.TrimSpace(req.CourseName) == "":
		return reasoncodes.New(reasoncodes.ErrValidation, "course name is required")
	case strings.TrimSpace(req.RecipientAddress) == "":
		return reasoncodes.New(reasoncodes.ErrValidation, "recipient address is required")
	case strings.TrimSpace(req.IssuerAddress) == "":
		return reasoncodes.New(reasoncodes.ErrValidation, "issuer address is required")
	}
	return commitment.ValidateInputs(req.Grade, req.CompletionDate)
}
