package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes sales from purchases.
type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionPurchase TransactionType = "purchase"
)

func (t TransactionType) Valid() bool {
	return t == TransactionSale || t == TransactionPurchase
}

// typeAliases accepts the Portuguese tab names older clients send.
var typeAliases = map[string]TransactionType{
	"sale":      TransactionSale,
	"sales":     TransactionSale,
	"venda":     TransactionSale,
	"vendas":    TransactionSale,
	"purchase":  TransactionPurchase,
	"purchases": TransactionPurchase,
	"compra":    TransactionPurchase,
	"compras":   TransactionPurchase,
}

// ParseTransactionType normalises s to a TransactionType.
func ParseTransactionType(s string) (TransactionType, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// MoneyPlaces is the precision of every stored amount.
const MoneyPlaces = 2

// QuantityPlaces is the precision of item quantities (fractional m², kg...).
const QuantityPlaces = 3

// Largest values the columns hold: decimal(10,2) for prices and service
// values, decimal(12,2) for transaction amounts, decimal(10,3) for quantities.
var (
	MaxPrice        = decimal.RequireFromString("99999999.99")
	MaxAmount       = decimal.RequireFromString("9999999999.99")
	MaxItemQuantity = decimal.RequireFromString("9999999.999")
)

// Transaction is the header of a sale or purchase note. Total is derived from
// the items at creation time and never edited afterwards.
type Transaction struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	Type         TransactionType `gorm:"type:varchar(10);not null;index;check:chk_transactions_type,type IN ('sale','purchase')"`
	Counterparty string          `gorm:"type:varchar(255);not null"`
	Date         string          `gorm:"type:varchar(10);not null"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt    time.Time

	Items []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
}

// TransactionItem is one priced line of a transaction.
// LineTotal == round(Quantity × UnitValue, MoneyPlaces), set by NewTransactionItem only.
type TransactionItem struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	TransactionID uint            `gorm:"not null;index"`
	Description   string          `gorm:"type:varchar(255);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	UnitValue     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// NewTransactionItem builds an item with its line total computed.
func NewTransactionItem(description string, quantity, unitValue decimal.Decimal) TransactionItem {
	return TransactionItem{
		Description: description,
		Quantity:    quantity,
		UnitValue:   unitValue,
		LineTotal:   quantity.Mul(unitValue).Round(MoneyPlaces),
	}
}

// SumItems returns Σ LineTotal.
func SumItems(items []TransactionItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}
