package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is stored when a product is created without a category.
const DefaultCategory = "Uncategorized"

// LowStockFloor flags any product with this many units or fewer as low stock,
// whatever its configured minimum.
const LowStockFloor = 1

// Product is an inventory item. Quantity and MinStock are independent; nothing
// forces Quantity >= MinStock.
type Product struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	Name      string          `gorm:"type:varchar(255);not null;index"`
	Category  string          `gorm:"type:varchar(100);index"`
	Quantity  int             `gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;check:chk_products_price,price >= 0"`
	MinStock  int             `gorm:"not null;default:0;check:chk_products_min_stock,min_stock >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock mirrors the low-stock SQL predicate used by the repository.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock || p.Quantity <= LowStockFloor
}

// InventoryValue is quantity × price.
func (p Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
