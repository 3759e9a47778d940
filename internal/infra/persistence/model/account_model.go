package model

import "time"

// AccountModel mirrors the 'accounts' table. The username column stores the
// normalized form, so the unique constraint enforces uniqueness per normalized
// username and serializes concurrent registrations at the store level.
type AccountModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(100);unique;not null"`
	Name         string `gorm:"type:varchar(100)"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:customer"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
