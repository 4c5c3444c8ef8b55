package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceStatus is free text; these are the two values the front end toggles between.
type ServiceStatus = string

const (
	ServicePending   ServiceStatus = "Pending"
	ServiceCompleted ServiceStatus = "Completed"
)

// completedAliases are the spellings older clients stored for a finished job.
var completedAliases = map[string]bool{
	"completed": true,
	"concluído": true,
	"concluido": true,
}

// IsCompleted reports whether status denotes a finished job, ignoring case,
// surrounding spaces and the Portuguese spellings.
func IsCompleted(status string) bool {
	return completedAliases[strings.ToLower(strings.TrimSpace(status))]
}

// ServiceOrder is a job done for a client. It has no relation to other entities.
type ServiceOrder struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	ClientName  string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Value       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ServiceDate string          `gorm:"type:varchar(10);not null"`
	Status      string          `gorm:"type:varchar(30);not null;default:'Pending';index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName keeps the table named after the business term.
func (ServiceOrder) TableName() string { return "services" }
