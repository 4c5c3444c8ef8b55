package service

import (
	"context"
	"io"

	"jandervidros/internal/model"
	"jandervidros/internal/repository"
)

// ReceiptRenderer draws printable documents. infra.Receipt implements it.
type ReceiptRenderer interface {
	WriteTransaction(w io.Writer, t *model.Transaction) error
	WriteService(w io.Writer, s *model.ServiceOrder) error
}

type ReceiptService interface {
	TransactionReceipt(ctx context.Context, id uint, w io.Writer) error
	ServiceReceipt(ctx context.Context, id uint, w io.Writer) error
}

type receiptService struct {
	transactions repository.TransactionRepository
	services     repository.ServiceOrderRepository
	renderer     ReceiptRenderer
}

func NewReceiptService(
	transactions repository.TransactionRepository,
	services repository.ServiceOrderRepository,
	renderer ReceiptRenderer,
) ReceiptService {
	return &receiptService{transactions: transactions, services: services, renderer: renderer}
}

func (s *receiptService) TransactionReceipt(ctx context.Context, id uint, w io.Writer) error {
	t, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.renderer.WriteTransaction(w, t)
}

func (s *receiptService) ServiceReceipt(ctx context.Context, id uint, w io.Writer) error {
	so, err := s.services.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.renderer.WriteService(w, so)
}
