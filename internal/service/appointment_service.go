package service

import (
	"context"

	"jandervidros/internal/dto"
	"jandervidros/internal/model"
	"jandervidros/internal/repository"
)

type AppointmentService interface {
	List(ctx context.Context) ([]dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.AppointmentResponse, error)
	Create(ctx context.Context, req dto.AppointmentRequest) (uint, error)
	Delete(ctx context.Context, id uint) error
}

type appointmentService struct {
	repo repository.AppointmentRepository
}

func NewAppointmentService(repo repository.AppointmentRepository) AppointmentService {
	return &appointmentService{repo: repo}
}

func (s *appointmentService) List(ctx context.Context) ([]dto.AppointmentResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AppointmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toAppointmentResponse(&list[i]))
	}
	return out, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAppointmentResponse(a)
	return &resp, nil
}

func (s *appointmentService) Create(ctx context.Context, req dto.AppointmentRequest) (uint, error) {
	title, err := requireText("title", req.Title)
	if err != nil {
		return 0, err
	}
	date, err := requireDate("date", req.Date)
	if err != nil {
		return 0, err
	}
	clock, err := requireClock("time", req.Time)
	if err != nil {
		return 0, err
	}
	a := &model.Appointment{Title: title, Date: date, Time: clock}
	if err := s.repo.Create(ctx, a); err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (s *appointmentService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func toAppointmentResponse(a *model.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:        a.ID,
		Title:     a.Title,
		Date:      a.Date,
		Time:      a.Time,
		CreatedAt: a.CreatedAt,
	}
}
