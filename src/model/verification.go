package model

import (
	"encoding/json"

	"github.com/miromero13/certeth/pkg/utilities"
)

type VerificationLevel int

const (
	LevelBasic VerificationLevel = iota
	LevelStandard
	LevelPremium
	LevelForensic
)

func (l VerificationLevel) Valid() bool {
	return l >= LevelBasic && l <= LevelForensic
}

func (l VerificationLevel) String() string {
	switch l {
	case LevelBasic:
		return "Basic"
	case LevelStandard:
		return "Standard"
	case LevelPremium:
		return "Premium"
	case LevelForensic:
		return "Forensic"
	}
	return "Unknown"
}

type VerificationStatus int

const (
	StatusPending VerificationStatus = iota
	StatusVerified
	StatusRejected
	StatusExpired
)

// VerificationRecord is an append-only audit entry: once written it is never
// updated, even when the underlying certificate is later revoked.
type VerificationRecord struct {
	Id            string `gorm:"primaryKey;type:uuid" json:"verification_id"`
	CertificateId uint   `gorm:"not null;index" json:"certificate_id"`
	Level         int    `json:"level"`
	Status        int    `json:"status"`
	Score         int    `json:"score"`
	HashValid     bool   `json:"hash_valid"`
	EasValid      bool   `json:"eas_valid"`
	IssuerValid   bool   `json:"issuer_valid"`
	TimeValid     bool   `json:"time_valid"`
	GradeValid    bool   `json:"grade_valid"`
	IsValid       bool   `json:"is_valid"`
	Errors        string `gorm:"type:text" json:"-"`
	Timestamp     int64  `json:"timestamp"`
	Verifier      string `gorm:"index" json:"verifier"`
}

func (r *VerificationRecord) SetErrors(errs []string) {
	if len(errs) == 0 {
		r.Errors = "[]"
		return
	}
	encoded, err := json.Marshal(errs)
	if err != nil {
		r.Errors = "[]"
		return
	}
	r.Errors = string(encoded)
}

func (r *VerificationRecord) ErrorList() []string {
	var errs []string
	if r.Errors == "" {
		return errs
	}
	_ = json.Unmarshal([]byte(r.Errors), &errs)
	return errs
}

// VerificationOutcome is the queue DTO fanned out after every verification,
// consumed by the audit sink and the chain anchor worker.
type VerificationOutcome struct {
	VerificationId string   `json:"verification_id"`
	CertificateId  uint     `json:"certificate_id"`
	Issuer         string   `json:"issuer"`
	Verifier       string   `json:"verifier"`
	Level          string   `json:"level"`
	IsValid        bool     `json:"is_valid"`
	Score          int      `json:"score"`
	Errors         []string `json:"errors,omitempty"`
	Timestamp      int64    `json:"timestamp"`
}

func (o VerificationOutcome) Serialize() ([]byte, error) {
	return utilities.Serialize[VerificationOutcome](o)
}
