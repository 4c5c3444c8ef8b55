package model

import "time"

// CredentialID is the primary key of the single shared login row.
const CredentialID = 1

// Credential holds the one username/secret pair that unlocks the back office.
type Credential struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(150);not null"`
	PasswordHash string `gorm:"not null"`
	UpdatedAt    time.Time
}
