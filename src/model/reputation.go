package model

// IssuerReputation is a bounded trust score per issuer address, nudged by
// verification outcomes. Scale 0-1000, fresh issuers start at the midpoint.
type IssuerReputation struct {
	Id           uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Issuer       string `gorm:"uniqueIndex;not null" json:"issuer"`
	Score        int    `gorm:"not null" json:"score"`
	TotalValid   int    `gorm:"not null;default:0" json:"total_valid"`
	TotalInvalid int    `gorm:"not null;default:0" json:"total_invalid"`
	UpdatedAt    int64  `json:"updated_at"`
}
