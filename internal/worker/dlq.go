package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// stockAlertDLQ collects jobs that could not be processed. Entries are kept
// for manual inspection and replay.
const stockAlertDLQ = "dlq:jobs:stock_alert"

// deadLetter wraps a failed job with its failure reason and timestamp.
type deadLetter struct {
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failed_at"`
}

// SendToDLQ parks a raw job payload on the dead-letter list.
func SendToDLQ(ctx context.Context, rdb *redis.Client, raw, reason string) error {
	payload := json.RawMessage(raw)
	if !json.Valid(payload) {
		// Keep unparseable payloads as a JSON string so the entry stays readable.
		quoted, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		payload = quoted
	}
	entry, err := json.Marshal(deadLetter{
		Payload:  payload,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, stockAlertDLQ, entry).Err()
}

// DLQLength reports the number of dead jobs.
func DLQLength(ctx context.Context, rdb *redis.Client) (int64, error) {
	return rdb.LLen(ctx, stockAlertDLQ).Result()
}
