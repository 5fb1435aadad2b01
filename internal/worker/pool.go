package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// stockAlertQueue is the Redis list ledger writes push low-stock alerts
	// onto. Workers BRPOP from the other end.
	stockAlertQueue = "jobs:stock_alert"

	popTimeout = 5 * time.Second
)

// StockAlertPayload is the job body for a low-stock notification.
type StockAlertPayload struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	MinQty    int    `json:"min_qty"`
}

// Dispatcher enqueues background jobs. It is safe for concurrent use; a nil
// Dispatcher is never constructed — callers that run without Redis pass nil
// and skip dispatch themselves.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueStockAlert pushes a low-stock alert job onto the queue.
func (d *Dispatcher) EnqueueStockAlert(ctx context.Context, p StockAlertPayload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, stockAlertQueue, raw).Err()
}

// QueueLength reports the number of pending alert jobs (health endpoint).
func (d *Dispatcher) QueueLength(ctx context.Context) (int64, error) {
	return d.rdb.LLen(ctx, stockAlertQueue).Result()
}

// Pool runs N workers draining the stock-alert queue until the context is
// cancelled.
type Pool struct {
	rdb    *redis.Client
	size   int
	alerts *StockAlertWorker
	wg     sync.WaitGroup
}

func NewPool(rdb *redis.Client, size int, alerts *StockAlertWorker) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{rdb: rdb, size: size, alerts: alerts}
}

// Start launches the workers. It returns immediately; call Wait to block
// until all workers have drained after cancellation.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Int("workers", p.size).Msg("worker pool started")
}

func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.rdb.BRPop(ctx, popTimeout, stockAlertQueue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Warn().Err(err).Int("worker", id).Msg("queue pop failed")
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, value].
		if len(res) != 2 {
			continue
		}
		p.handle(ctx, id, res[1])
	}
}

func (p *Pool) handle(ctx context.Context, id int, raw string) {
	var payload StockAlertPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Error().Err(err).Int("worker", id).Msg("malformed alert job, dropping to DLQ")
		_ = SendToDLQ(ctx, p.rdb, raw, "malformed payload: "+err.Error())
		return
	}
	if err := p.alerts.Handle(ctx, payload); err != nil {
		log.Warn().
			Err(err).
			Int("worker", id).
			Str("product", payload.Code).
			Msg("stock alert delivery failed, dropping to DLQ")
		_ = SendToDLQ(ctx, p.rdb, raw, err.Error())
		return
	}
	log.Info().Int("worker", id).Str("product", payload.Code).Msg("stock alert sent")
}
