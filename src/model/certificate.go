package model

// Certificate is the ledger record for one issued credential. Grade and Nonce
// are the private opening of the commitment: they never leave the store through
// public read paths once proofs are in use.
type Certificate struct {
	Id               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientName    string `gorm:"not null" json:"recipient_name"`
	InstitutionName  string `gorm:"not null" json:"institution_name"`
	CourseName       string `gorm:"not null" json:"course_name"`
	Description      string `json:"description"`
	RecipientAddress string `gorm:"not null;index" json:"recipient_address"`
	IssuerAddress    string `gorm:"not null;index" json:"issuer_address"`
	IssuedAt         int64  `gorm:"not null" json:"issued_at"`
	CompletionDate   int64  `gorm:"not null" json:"completion_date"`
	Grade            int    `gorm:"not null" json:"-"`
	Nonce            string `gorm:"not null" json:"-"`
	InstitutionId    int64  `gorm:"not null" json:"institution_id"`
	Commitment       string `gorm:"not null;index" json:"commitment"`
	AttestationUid   string `gorm:"uniqueIndex;not null" json:"attestation_uid"`
	IsValid          bool   `gorm:"not null;default:true" json:"is_valid"`
}
