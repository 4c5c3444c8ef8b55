package repository

import (
	"context"
	"strings"
	"time"

	"jandervidros/internal/apperror"
	"jandervidros/internal/model"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	// Update overwrites every mutable column of the row p.ID.
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uint) error
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)
	Search(ctx context.Context, term string) ([]model.Product, error)
	LowStock(ctx context.Context) ([]model.Product, error)
}

type productRepo struct{ store *Store }

func NewProductRepository(store *Store) ProductRepository { return &productRepo{store: store} }

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := r.store.DB(ctx).Order("id DESC").Find(&out).Error
	return out, classify("list products", err)
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	if err := r.store.findByID(ctx, "product", &p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return classify("create product", r.store.DB(ctx).Create(p).Error)
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	p.UpdatedAt = time.Now()
	res := r.store.DB(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":       p.Name,
		"category":   p.Category,
		"quantity":   p.Quantity,
		"price":      p.Price,
		"min_stock":  p.MinStock,
		"updated_at": p.UpdatedAt,
	})
	if res.Error != nil {
		return classify("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("product", p.ID)
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uint) error {
	return r.store.deleteByID(ctx, "product", &model.Product{}, id)
}

func (r *productRepo) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var out []model.Product
	err := r.store.DB(ctx).Where("category = ?", category).Order("name ASC").Find(&out).Error
	return out, classify("list products by category", err)
}

// likeEscaper neutralises LIKE wildcards. '!' is used as the escape character
// because a backslash literal is read differently by MySQL and PostgreSQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *productRepo) Search(ctx context.Context, term string) ([]model.Product, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	var out []model.Product
	// both sides go through the database's LOWER so they fold the same way
	err := r.store.DB(ctx).
		Where("LOWER(name) LIKE LOWER(?) ESCAPE '!'", pattern).
		Order("name ASC").
		Find(&out).Error
	return out, classify("search products", err)
}

func (r *productRepo) LowStock(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := r.store.DB(ctx).
		Where("quantity <= min_stock OR quantity <= ?", model.LowStockFloor).
		Order("quantity ASC").Order("id ASC").
		Find(&out).Error
	return out, classify("list low-stock products", err)
}
