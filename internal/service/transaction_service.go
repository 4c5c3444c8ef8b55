package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"jandervidros/internal/apperror"
	"jandervidros/internal/dto"
	"jandervidros/internal/model"
	"jandervidros/internal/repository"
)

// ReceiptQueue schedules background work for a freshly stored transaction.
// It is optional; a nil queue means no background jobs.
type ReceiptQueue interface {
	EnqueueReceipt(ctx context.Context, transactionID uint) error
}

type TransactionService interface {
	List(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.TransactionResponse, error)
	Create(ctx context.Context, req dto.CreateTransactionRequest) (uint, error)
	Delete(ctx context.Context, id uint) error
}

type transactionService struct {
	repo  repository.TransactionRepository
	queue ReceiptQueue
}

func NewTransactionService(repo repository.TransactionRepository, queue ReceiptQueue) TransactionService {
	return &transactionService{repo: repo, queue: queue}
}

func (s *transactionService) List(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionResponse, error) {
	var f repository.TransactionFilter
	if filter.Type != "" {
		t, ok := model.ParseTransactionType(filter.Type)
		if !ok {
			return nil, apperror.Invalid("type", "must be sale or purchase")
		}
		f.Type = t
	}
	list, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for i := range list {
		out = append(out, toTransactionResponse(&list[i]))
	}
	return out, nil
}

func (s *transactionService) GetByID(ctx context.Context, id uint) (*dto.TransactionResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTransactionResponse(t)
	return &resp, nil
}

// Create validates the note, derives every line total and the header total,
// and stores header and items as one unit.
func (s *transactionService) Create(ctx context.Context, req dto.CreateTransactionRequest) (uint, error) {
	t, err := transactionFromRequest(req)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return 0, err
	}

	if s.queue != nil {
		// Best effort: the note is already committed.
		if err := s.queue.EnqueueReceipt(ctx, t.ID); err != nil {
			log.Warn().Err(err).Uint("transaction_id", t.ID).Msg("could not enqueue receipt job")
		}
	}
	return t.ID, nil
}

func (s *transactionService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func transactionFromRequest(req dto.CreateTransactionRequest) (*model.Transaction, error) {
	typ, ok := model.ParseTransactionType(req.Type)
	if !ok {
		return nil, apperror.Invalid("type", "must be sale or purchase")
	}
	counterparty, err := requireText("counterparty", req.Counterparty)
	if err != nil {
		return nil, err
	}
	date, err := requireDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	items := make([]model.TransactionItem, 0, len(req.Items))
	for i, in := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		desc, err := requireText(field+".description", in.Description)
		if err != nil {
			return nil, err
		}
		quantity := in.Quantity.Round(model.QuantityPlaces)
		if !quantity.IsPositive() {
			return nil, apperror.Invalid(field+".quantity", "must be greater than zero")
		}
		if err := atMost(field+".quantity", quantity, model.MaxItemQuantity); err != nil {
			return nil, err
		}
		unitValue := in.UnitValue.Round(model.MoneyPlaces)
		if unitValue.IsNegative() {
			return nil, apperror.Invalid(field+".unitValue", "must not be negative")
		}
		if err := atMost(field+".unitValue", unitValue, model.MaxAmount); err != nil {
			return nil, err
		}
		it := model.NewTransactionItem(desc, quantity, unitValue)
		if err := atMost(field+".lineTotal", it.LineTotal, model.MaxAmount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	total := model.SumItems(items)
	if err := atMost("total", total, model.MaxAmount); err != nil {
		return nil, err
	}

	return &model.Transaction{
		Type:         typ,
		Counterparty: counterparty,
		Date:         date,
		Total:        total,
		Items:        items,
	}, nil
}

func toTransactionResponse(t *model.Transaction) dto.TransactionResponse {
	items := make([]dto.TransactionItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TransactionItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitValue:   it.UnitValue,
			LineTotal:   it.LineTotal,
		})
	}
	return dto.TransactionResponse{
		ID:           t.ID,
		Type:         string(t.Type),
		Counterparty: t.Counterparty,
		Date:         t.Date,
		Total:        t.Total,
		CreatedAt:    t.CreatedAt,
		Items:        items,
	}
}
