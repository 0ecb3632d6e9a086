package anchor

import (
	"github.com/near/borsh-go"

	"github.com/miromero13/certeth/src/model"
)

// ChainRecord is the borsh layout written into the anchored account. Field
// order is the on-chain ABI; do not reorder.
type ChainRecord struct {
	VerificationId string `borsh:"verification_id"`
	CertificateId  uint32 `borsh:"certificate_id"`
	Issuer         string `borsh:"issuer"`
	Verifier       string `borsh:"verifier"`
	Level          string `borsh:"level"`
	IsValid        bool   `borsh:"is_valid"`
	Score          uint8  `borsh:"score"`
	Timestamp      int64  `borsh:"timestamp"`
}

func NewChainRecord(outcome model.VerificationOutcome) ChainRecord {
	score := outcome.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return ChainRecord{
		VerificationId: outcome.VerificationId,
		CertificateId:  uint32(outcome.CertificateId),
		Issuer:         outcome.Issuer,
		Verifier:       outcome.Verifier,
		Level:          outcome.Level,
		IsValid:        outcome.IsValid,
		Score:          uint8(score),
		Timestamp:      outcome.Timestamp,
	}
}

func (r ChainRecord) SerializeBorsh() ([]byte, error) {
	return borsh.Serialize(r)
}
