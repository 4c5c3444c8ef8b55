package model

import "time"

// Appointment is a personal agenda entry.
type Appointment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"type:varchar(255);not null"`
	Date      string `gorm:"type:varchar(10);not null;index"`
	Time      string `gorm:"type:varchar(5);not null"`
	CreatedAt time.Time
}
