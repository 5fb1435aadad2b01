package worker

import (
	"context"
	"fmt"

	"stockroom/internal/infra"
)

// StockAlertWorker emails a low-stock notification for a product that dropped
// to or below its threshold after an order. Delivery goes through a circuit
// breaker so a dead SMTP relay fast-fails instead of stalling the pool.
type StockAlertWorker struct {
	mailer  *infra.Mailer
	breaker *infra.CircuitBreaker
	to      string
}

func NewStockAlertWorker(mailer *infra.Mailer, breaker *infra.CircuitBreaker, to string) *StockAlertWorker {
	return &StockAlertWorker{mailer: mailer, breaker: breaker, to: to}
}

func (w *StockAlertWorker) Handle(_ context.Context, p StockAlertPayload) error {
	if w.to == "" {
		// No alert recipient configured; the job is considered handled.
		return nil
	}
	subject := fmt.Sprintf("Low stock: %s (%s)", p.Name, p.Code)
	body := fmt.Sprintf(
		"Product %s (%s) is low on stock.\n\nOn hand: %d\nThreshold: %d\n\nRestock soon.",
		p.Name, p.Code, p.Qty, p.MinQty,
	)
	return w.breaker.Execute(func() error {
		return w.mailer.Send(w.to, subject, body, "")
	})
}

// BreakerState exposes the SMTP breaker state for the health endpoint.
func (w *StockAlertWorker) BreakerState() string {
	return w.breaker.State().String()
}
