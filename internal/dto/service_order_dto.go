package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOrderRequest is used for create and full-replace update.
type ServiceOrderRequest struct {
	ClientName  string           `json:"clientName"  validate:"max=255"`
	Description *string          `json:"description"`
	Value       *decimal.Decimal `json:"value"`
	Date        string           `json:"date"`
	Status      *string          `json:"status"      validate:"omitempty,max=30"`
}

type ServiceOrderFilter struct {
	Status string `form:"status"`
}

type ServiceOrderResponse struct {
	ID          uint            `json:"id"`
	ClientName  string          `json:"clientName"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
