package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionItemRequest struct {
	Description string          `json:"description" validate:"max=255"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
}

type CreateTransactionRequest struct {
	Type         string                   `json:"type"         validate:"max=10"`
	Counterparty string                   `json:"counterparty" validate:"max=255"`
	Date         string                   `json:"date"`
	Items        []TransactionItemRequest `json:"items"        validate:"dive"`
}

type TransactionFilter struct {
	Type string `form:"type"`
}

type TransactionItemResponse struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

type TransactionResponse struct {
	ID           uint                      `json:"id"`
	Type         string                    `json:"type"`
	Counterparty string                    `json:"counterparty"`
	Date         string                    `json:"date"`
	Total        decimal.Decimal           `json:"total"`
	CreatedAt    time.Time                 `json:"createdAt"`
	Items        []TransactionItemResponse `json:"items"`
}
