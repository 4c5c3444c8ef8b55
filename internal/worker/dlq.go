package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// deadLetterPrefix namespaces the per-queue dead letter lists: dlq:jobs:email.
const deadLetterPrefix = "dlq:"

// DeadLetter is a job that ran out of attempts, stored as it was last tried.
type DeadLetter struct {
	Queue    string    `json:"queue"`
	Job      Job       `json:"job"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

func deadLetterKey(queue string) string { return deadLetterPrefix + queue }

func newDeadLetter(queue string, job Job, cause error, now time.Time) DeadLetter {
	dl := DeadLetter{Queue: queue, Job: job, FailedAt: now.UTC()}
	if cause != nil {
		dl.Error = cause.Error()
	}
	return dl
}

// deadLetter parks job on its queue's dead letter list instead of re-queuing it.
func (d *Dispatcher) deadLetter(ctx context.Context, queue string, job Job, cause error) error {
	data, err := json.Marshal(newDeadLetter(queue, job, cause, time.Now()))
	if err != nil {
		return fmt.Errorf("marshal dead letter: %w", err)
	}
	if err := d.rdb.LPush(ctx, deadLetterKey(queue), data).Err(); err != nil {
		return fmt.Errorf("push dead letter: %w", err)
	}
	log.Warn().
		Str("queue", queue).
		Str("type", job.Type).
		Int("attempts", job.Attempts).
		AnErr("cause", cause).
		Msg("job moved to dead letter queue")
	return nil
}

// DeadLetters returns up to limit entries of queue's dead letter list, newest first.
func (d *Dispatcher) DeadLetters(ctx context.Context, queue string, limit int64) ([]DeadLetter, error) {
	raw, err := d.rdb.LRange(ctx, deadLetterKey(queue), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]DeadLetter, 0, len(raw))
	for _, r := range raw {
		var dl DeadLetter
		if err := json.Unmarshal([]byte(r), &dl); err != nil {
			return nil, fmt.Errorf("decode dead letter: %w", err)
		}
		out = append(out, dl)
	}
	return out, nil
}
