package service

import (
	"context"

	"jandervidros/internal/dto"
	"jandervidros/internal/model"
	"jandervidros/internal/repository"
)

// StatisticsService recomputes every figure on each call; nothing is cached,
// so a read right after a mutation already reflects it.
type StatisticsService interface {
	Statistics(ctx context.Context) (*dto.StatisticsResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type statisticsService struct {
	repo repository.StatisticsRepository
}

func NewStatisticsService(repo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{repo: repo}
}

func (s *statisticsService) Statistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	st, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatisticsResponse{
		TotalProducts:       st.TotalProducts,
		TotalInventoryValue: st.TotalInventoryValue,
		LowStockCount:       st.LowStockCount,
	}, nil
}

func (s *statisticsService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	st, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.ServiceStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	var pending int64
	for _, c := range counts {
		if !model.IsCompleted(c.Status) {
			pending += c.Count
		}
	}
	appointments, err := s.repo.CountAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalProducts:     st.TotalProducts,
		PendingServices:   pending,
		TotalAppointments: appointments,
	}, nil
}
