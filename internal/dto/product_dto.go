package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProductRequest is used for both create and full-replace update. Pointer
// fields distinguish "absent" from zero.
type ProductRequest struct {
	Name     string           `json:"name"     validate:"max=255"`
	Category *string          `json:"category" validate:"omitempty,max=100"`
	Quantity *int             `json:"quantity" validate:"omitempty,min=0"`
	Price    *decimal.Decimal `json:"price"`
	MinStock *int             `json:"minStock" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	MinStock  int             `json:"minStock"`
	LowStock  bool            `json:"lowStock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type StatisticsResponse struct {
	TotalProducts       int64           `json:"totalProducts"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	LowStockCount       int64           `json:"lowStockCount"`
}

type DashboardResponse struct {
	TotalProducts     int64 `json:"totalProducts"`
	PendingServices   int64 `json:"pendingServices"`
	TotalAppointments int64 `json:"totalAppointments"`
}
