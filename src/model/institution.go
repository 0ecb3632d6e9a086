package model

// Institution maps a display name to the stable numeric id bound inside
// commitments and proof public inputs.
type Institution struct {
	Id            uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name          string `gorm:"uniqueIndex;not null" json:"name"`
	InstitutionId int64  `gorm:"uniqueIndex;not null" json:"institution_id"`
	RegisteredAt  int64  `json:"registered_at"`
}
