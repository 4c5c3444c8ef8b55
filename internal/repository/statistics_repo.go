package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"jandervidros/internal/model"
)

// InventoryStats is the aggregate row over the products table.
type InventoryStats struct {
	TotalProducts       int64
	TotalInventoryValue decimal.Decimal
	LowStockCount       int64
}

// StatusCount is the number of service orders stored with one status string.
type StatusCount struct {
	Status string
	Count  int64
}

// StatisticsRepository runs read-only aggregates. Nothing is cached.
type StatisticsRepository interface {
	Inventory(ctx context.Context) (InventoryStats, error)
	ServiceStatusCounts(ctx context.Context) ([]StatusCount, error)
	CountAppointments(ctx context.Context) (int64, error)
}

type statisticsRepo struct{ store *Store }

func NewStatisticsRepository(store *Store) StatisticsRepository {
	return &statisticsRepo{store: store}
}

const inventorySQL = `
SELECT COUNT(*)                                    AS total_products,
       COALESCE(SUM(quantity * price), 0)          AS total_inventory_value,
       COALESCE(SUM(CASE WHEN quantity <= min_stock OR quantity <= ?
                         THEN 1 ELSE 0 END), 0)    AS low_stock_count
FROM products`

func (r *statisticsRepo) Inventory(ctx context.Context) (InventoryStats, error) {
	var row InventoryStats
	err := r.store.DB(ctx).Raw(inventorySQL, model.LowStockFloor).Scan(&row).Error
	if err != nil {
		return InventoryStats{}, classify("inventory statistics", err)
	}
	row.TotalInventoryValue = row.TotalInventoryValue.Round(model.MoneyPlaces)
	return row, nil
}

// ServiceStatusCounts groups by the raw status text; deciding which statuses
// count as finished is left to model.IsCompleted.
func (r *statisticsRepo) ServiceStatusCounts(ctx context.Context) ([]StatusCount, error) {
	var out []StatusCount
	err := r.store.DB(ctx).Model(&model.ServiceOrder{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&out).Error
	return out, classify("service status counts", err)
}

func (r *statisticsRepo) CountAppointments(ctx context.Context) (int64, error) {
	var n int64
	err := r.store.DB(ctx).Model(&model.Appointment{}).Count(&n).Error
	return n, classify("count appointments", err)
}
