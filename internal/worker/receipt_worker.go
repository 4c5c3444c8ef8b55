package worker

// Renders the PDF of every recorded transaction to PDF_STORAGE_PATH and,
// when a notify address is configured, mails it as an attachment.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"jandervidros/internal/apperror"
	"jandervidros/internal/model"
	"jandervidros/internal/repository"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	TransactionID uint `json:"transaction_id"`
}

// ReceiptSaver is satisfied by infra.Receipt.
type ReceiptSaver interface {
	SaveTransaction(storagePath string, t *model.Transaction) (string, error)
}

// EmailQueue is satisfied by Dispatcher.
type EmailQueue interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

type ReceiptWorker struct {
	repo        repository.TransactionRepository
	pdf         ReceiptSaver
	storagePath string
	notifyEmail string
	emails      EmailQueue
}

// NewReceiptWorker wires the receipt worker. notifyEmail may be empty, in
// which case emails is never used.
func NewReceiptWorker(
	repo repository.TransactionRepository,
	pdf ReceiptSaver,
	storagePath string,
	notifyEmail string,
	emails EmailQueue,
) *ReceiptWorker {
	return &ReceiptWorker{
		repo:        repo,
		pdf:         pdf,
		storagePath: storagePath,
		notifyEmail: notifyEmail,
		emails:      emails,
	}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.TransactionID == 0 {
		return fmt.Errorf("%w: invalid receipt payload %s", ErrSkip, raw)
	}

	t, err := w.repo.FindByID(ctx, payload.TransactionID)
	if apperror.IsNotFound(err) {
		// deleted before the worker got to it
		return fmt.Errorf("%w: transaction %d no longer exists", ErrSkip, payload.TransactionID)
	}
	if err != nil {
		return err
	}

	path, err := w.pdf.SaveTransaction(w.storagePath, t)
	if err != nil {
		return err
	}
	log.Info().Uint("transaction_id", t.ID).Str("path", path).Msg("receipt_worker: pdf saved")

	if w.notifyEmail == "" || w.emails == nil {
		return nil
	}
	err = w.emails.EnqueueEmail(ctx, EmailJobPayload{
		To:         w.notifyEmail,
		Subject:    fmt.Sprintf("New %s #%d: %s", t.Type, t.ID, t.Counterparty),
		Body:       fmt.Sprintf("%s to %s on %s, total %s. Receipt attached.", t.Type, t.Counterparty, t.Date, t.Total.StringFixed(2)),
		AttachPath: path,
	})
	if err != nil {
		// the PDF exists; a retry would only render it again
		log.Error().Err(err).Uint("transaction_id", t.ID).Msg("receipt_worker: could not enqueue email")
	}
	return nil
}
