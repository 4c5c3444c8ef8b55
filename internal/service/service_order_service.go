package service

import (
	"context"

	"jandervidros/internal/dto"
	"jandervidros/internal/model"
	"jandervidros/internal/repository"
)

type ServiceOrderService interface {
	List(ctx context.Context, filter dto.ServiceOrderFilter) ([]dto.ServiceOrderResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ServiceOrderResponse, error)
	Create(ctx context.Context, req dto.ServiceOrderRequest) (uint, error)
	Update(ctx context.Context, id uint, req dto.ServiceOrderRequest) error
	Delete(ctx context.Context, id uint) error
	// ToggleStatus flips Pending ⇄ Completed and returns the stored status.
	ToggleStatus(ctx context.Context, id uint) (string, error)
}

type serviceOrderService struct {
	repo repository.ServiceOrderRepository
}

func NewServiceOrderService(repo repository.ServiceOrderRepository) ServiceOrderService {
	return &serviceOrderService{repo: repo}
}

func (s *serviceOrderService) List(ctx context.Context, filter dto.ServiceOrderFilter) ([]dto.ServiceOrderResponse, error) {
	list, err := s.repo.List(ctx, filter.Status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceOrderResponse, 0, len(list))
	for i := range list {
		out = append(out, toServiceOrderResponse(&list[i]))
	}
	return out, nil
}

func (s *serviceOrderService) GetByID(ctx context.Context, id uint) (*dto.ServiceOrderResponse, error) {
	so, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toServiceOrderResponse(so)
	return &resp, nil
}

func (s *serviceOrderService) Create(ctx context.Context, req dto.ServiceOrderRequest) (uint, error) {
	so, err := serviceOrderFromRequest(req)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Create(ctx, so); err != nil {
		return 0, err
	}
	return so.ID, nil
}

func (s *serviceOrderService) Update(ctx context.Context, id uint, req dto.ServiceOrderRequest) error {
	so, err := serviceOrderFromRequest(req)
	if err != nil {
		return err
	}
	so.ID = id
	return s.repo.Update(ctx, so)
}

func (s *serviceOrderService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *serviceOrderService) ToggleStatus(ctx context.Context, id uint) (string, error) {
	so, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	next := model.ServiceCompleted
	if model.IsCompleted(so.Status) {
		next = model.ServicePending
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return "", err
	}
	return next, nil
}

func serviceOrderFromRequest(req dto.ServiceOrderRequest) (*model.ServiceOrder, error) {
	client, err := requireText("clientName", req.ClientName)
	if err != nil {
		return nil, err
	}
	date, err := requireDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	value, err := money("value", req.Value)
	if err != nil {
		return nil, err
	}
	status := optionalText(req.Status)
	if status == "" {
		status = model.ServicePending
	}
	return &model.ServiceOrder{
		ClientName:  client,
		Description: optionalText(req.Description),
		Value:       value,
		ServiceDate: date,
		Status:      status,
	}, nil
}

func toServiceOrderResponse(s *model.ServiceOrder) dto.ServiceOrderResponse {
	return dto.ServiceOrderResponse{
		ID:          s.ID,
		ClientName:  s.ClientName,
		Description: s.Description,
		Value:       s.Value,
		Date:        s.ServiceDate,
		Status:      s.Status,
		Completed:   model.IsCompleted(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
