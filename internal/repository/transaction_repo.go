package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jandervidros/internal/apperror"
	"jandervidros/internal/model"
)

// TransactionFilter narrows List. A zero value lists everything.
type TransactionFilter struct {
	Type model.TransactionType
}

// TransactionRepository persists sale/purchase headers together with their items.
type TransactionRepository interface {
	List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	FindByID(ctx context.Context, id uint) (*model.Transaction, error)
	// Create inserts the header and every item atomically and sets t.ID.
	Create(ctx context.Context, t *model.Transaction) error
	Delete(ctx context.Context, id uint) error
}

type transactionRepo struct{ store *Store }

func NewTransactionRepository(store *Store) TransactionRepository {
	return &transactionRepo{store: store}
}

func orderedItems(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }

func (r *transactionRepo) List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error) {
	q := r.store.DB(ctx).Preload("Items", orderedItems)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	var out []model.Transaction
	err := q.Order("id DESC").Find(&out).Error
	return out, classify("list transactions", err)
}

func (r *transactionRepo) FindByID(ctx context.Context, id uint) (*model.Transaction, error) {
	var t model.Transaction
	err := r.store.DB(ctx).Preload("Items", orderedItems).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("transaction", id)
	}
	if err != nil {
		return nil, classify("find transaction", err)
	}
	return &t, nil
}

func (r *transactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	return r.store.Transaction(ctx, "create transaction", func(tx *gorm.DB) error {
		items := t.Items
		if err := tx.Omit("Items").Create(t).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].TransactionID = t.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		t.Items = items
		return nil
	})
}

func (r *transactionRepo) Delete(ctx context.Context, id uint) error {
	return r.store.Transaction(ctx, "delete transaction", func(tx *gorm.DB) error {
		// Items go first so the delete does not depend on the FK cascade being
		// enforced (sqlite without foreign_keys, legacy MySQL tables).
		if err := tx.Where("transaction_id = ?", id).Delete(&model.TransactionItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Transaction{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("transaction", id)
		}
		return nil
	})
}
