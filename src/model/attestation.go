package model

// Attestation anchors a commitment for a recipient. The attester of record is
// the registry itself, not the human issuer: the issuer identity lives on the
// certificate, the anchored claim stays portable.
type Attestation struct {
	Id             uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Uid            string `gorm:"uniqueIndex;not null" json:"uid"`
	Attester       string `gorm:"not null" json:"attester"`
	Recipient      string `gorm:"not null;index" json:"recipient"`
	SchemaId       string `gorm:"not null" json:"schema_id"`
	Commitment     string `gorm:"not null" json:"commitment"`
	IssuedAt       int64  `gorm:"not null" json:"issued_at"`
	RevocationTime int64  `gorm:"not null;default:0" json:"revocation_time"`
}

func (a *Attestation) Revoked() bool {
	return a.RevocationTime != 0
}
