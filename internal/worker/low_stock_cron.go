package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"jandervidros/internal/model"
	"jandervidros/internal/repository"
)

const digestTimeout = 30 * time.Second

// LowStockDigestConfig holds the dependencies of the scheduled digest.
type LowStockDigestConfig struct {
	Schedule    string // standard 5-field cron expression
	Products    repository.ProductRepository
	NotifyEmail string
	Emails      EmailQueue // nil disables mailing
}

// StartLowStockDigest registers the digest on a cron scheduler and starts it.
// The scheduler stops when ctx is cancelled.
func StartLowStockDigest(ctx context.Context, cfg LowStockDigestConfig) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(cfg.Schedule, func() { runLowStockDigest(ctx, cfg) }); err != nil {
		return nil, fmt.Errorf("low stock digest: schedule %q: %w", cfg.Schedule, err)
	}
	c.Start()
	log.Info().Str("schedule", cfg.Schedule).Msg("low_stock_cron: started")

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		log.Info().Msg("low_stock_cron: stopped")
	}()
	return c, nil
}

func runLowStockDigest(parent context.Context, cfg LowStockDigestConfig) {
	ctx, cancel := context.WithTimeout(parent, digestTimeout)
	defer cancel()

	products, err := cfg.Products.LowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("low_stock_cron: query failed")
		return
	}
	if len(products) == 0 {
		log.Debug().Msg("low_stock_cron: nothing to restock")
		return
	}
	log.Warn().Int("count", len(products)).Msg("low_stock_cron: products need restocking")

	if cfg.NotifyEmail == "" || cfg.Emails == nil {
		return
	}
	err = cfg.Emails.EnqueueEmail(ctx, EmailJobPayload{
		To:      cfg.NotifyEmail,
		Subject: fmt.Sprintf("Low stock: %d products", len(products)),
		Body:    lowStockDigest(products),
	})
	if err != nil {
		log.Error().Err(err).Msg("low_stock_cron: could not enqueue digest")
	}
}

// lowStockDigest renders one line per product.
func lowStockDigest(products []model.Product) string {
	var b strings.Builder
	b.WriteString("Products at or below their minimum stock:\n\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%s): %d in stock, minimum %d\n", p.Name, p.Category, p.Quantity, p.MinStock)
	}
	return b.String()
}
