package reasoncodes

import (
	"errors"
	"fmt"
)

type ReasonCode string

const (
	ErrValidation           ReasonCode = "ValidationError"
	ErrUnauthorized         ReasonCode = "Unauthorized"
	ErrNotFound             ReasonCode = "NotFound"
	ErrAlreadyRevoked       ReasonCode = "AlreadyRevoked"
	ErrAttestationRevoked   ReasonCode = "AttestationRevoked"
	ErrDuplicateAttestation ReasonCode = "DuplicateAttestation"
	ErrMalformedProof       ReasonCode = "MalformedProof"
	ErrCommitmentMismatch   ReasonCode = "CommitmentMismatch"
	ErrInvalidProof         ReasonCode = "InvalidProof"
	ErrProofExpired         ReasonCode = "ProofExpired"
	ErrUnmarshal            ReasonCode = "UnmarshalError"
	ErrProofGeneration      ReasonCode = "ProofGenerationError"
	ErrSolana               ReasonCode = "SolanaBlockchainError"
)

// CodedError attaches a ReasonCode to an underlying cause so callers can
// branch on the code without string matching.
type CodedError struct {
	Code  ReasonCode
	Cause error
}

func (e *CodedError) Error() string {
	if e.Cause == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Cause)
}

func (e *CodedError) Unwrap() error { return e.Cause }

func New(code ReasonCode, format string, v ...interface{}) error {
	return &CodedError{Code: code, Cause: fmt.Errorf(format, v...)}
}

func Wrap(code ReasonCode, cause error) error {
	return &CodedError{Code: code, Cause: cause}
}

// CodeOf extracts the ReasonCode from an error chain, or "" if none is present.
func CodeOf(err error) ReasonCode {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

func HasCode(err error, code ReasonCode) bool {
	return CodeOf(err) == code
}
