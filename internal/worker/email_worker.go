package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	AttachPath string `json:"attach_path,omitempty"`
}

// EmailSender is satisfied by infra.Mailer.
type EmailSender interface {
	Send(to, subject, body, attachPath string) error
}

// EmailWorker delivers receipts and stock digests over SMTP.
type EmailWorker struct {
	mailer EmailSender
}

func NewEmailWorker(mailer EmailSender) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: invalid email payload: %v", ErrSkip, err)
	}
	if payload.To == "" {
		return fmt.Errorf("%w: empty recipient", ErrSkip)
	}

	if err := w.mailer.Send(payload.To, payload.Subject, payload.Body, payload.AttachPath); err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", payload.To, err)
	}
	log.Info().Str("to", payload.To).Str("subject", payload.Subject).Msg("email_worker: sent")
	return nil
}
