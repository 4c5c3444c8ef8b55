package repository

import (
	"context"
	"time"

	"jandervidros/internal/apperror"
	"jandervidros/internal/model"
)

type ServiceOrderRepository interface {
	// List returns every order newest-first; a non-empty status filters by exact match.
	List(ctx context.Context, status string) ([]model.ServiceOrder, error)
	FindByID(ctx context.Context, id uint) (*model.ServiceOrder, error)
	Create(ctx context.Context, s *model.ServiceOrder) error
	Update(ctx context.Context, s *model.ServiceOrder) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type serviceOrderRepo struct{ store *Store }

func NewServiceOrderRepository(store *Store) ServiceOrderRepository {
	return &serviceOrderRepo{store: store}
}

func (r *serviceOrderRepo) List(ctx context.Context, status string) ([]model.ServiceOrder, error) {
	q := r.store.DB(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []model.ServiceOrder
	err := q.Order("id DESC").Find(&out).Error
	return out, classify("list services", err)
}

func (r *serviceOrderRepo) FindByID(ctx context.Context, id uint) (*model.ServiceOrder, error) {
	var s model.ServiceOrder
	if err := r.store.findByID(ctx, "service", &s, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *serviceOrderRepo) Create(ctx context.Context, s *model.ServiceOrder) error {
	return classify("create service", r.store.DB(ctx).Create(s).Error)
}

func (r *serviceOrderRepo) Update(ctx context.Context, s *model.ServiceOrder) error {
	s.UpdatedAt = time.Now()
	return r.updateColumns(ctx, s.ID, map[string]interface{}{
		"client_name":  s.ClientName,
		"description":  s.Description,
		"value":        s.Value,
		"service_date": s.ServiceDate,
		"status":       s.Status,
		"updated_at":   s.UpdatedAt,
	})
}

func (r *serviceOrderRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}

func (r *serviceOrderRepo) updateColumns(ctx context.Context, id uint, cols map[string]interface{}) error {
	res := r.store.DB(ctx).Model(&model.ServiceOrder{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return classify("update service", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("service", id)
	}
	return nil
}

func (r *serviceOrderRepo) Delete(ctx context.Context, id uint) error {
	return r.store.deleteByID(ctx, "service", &model.ServiceOrder{}, id)
}
