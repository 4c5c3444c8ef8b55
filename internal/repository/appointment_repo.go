package repository

import (
	"context"

	"jandervidros/internal/model"
)

type AppointmentRepository interface {
	// List returns the agenda in chronological order.
	List(ctx context.Context) ([]model.Appointment, error)
	FindByID(ctx context.Context, id uint) (*model.Appointment, error)
	Create(ctx context.Context, a *model.Appointment) error
	Delete(ctx context.Context, id uint) error
}

type appointmentRepo struct{ store *Store }

func NewAppointmentRepository(store *Store) AppointmentRepository {
	return &appointmentRepo{store: store}
}

func (r *appointmentRepo) List(ctx context.Context) ([]model.Appointment, error) {
	var out []model.Appointment
	err := r.store.DB(ctx).Order("date ASC").Order("time ASC").Order("id ASC").Find(&out).Error
	return out, classify("list appointments", err)
}

func (r *appointmentRepo) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var a model.Appointment
	if err := r.store.findByID(ctx, "appointment", &a, id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	return classify("create appointment", r.store.DB(ctx).Create(a).Error)
}

func (r *appointmentRepo) Delete(ctx context.Context, id uint) error {
	return r.store.deleteByID(ctx, "appointment", &model.Appointment{}, id)
}
