package worker

// Jobs that burn through all retries land in a per-queue Redis list
// ("dlq:<fila>") with enough context to replay them by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

type dlqEntry struct {
	Fila       string          `json:"fila"`
	Tipo       string          `json:"tipo"`
	Payload    json.RawMessage `json:"payload"`
	Motivo     string          `json:"motivo"`
	FalhouEm   string          `json:"falhou_em"`
	Tentativas int             `json:"tentativas"`
}

// SendToDLQ parks an exhausted job. Best effort: a dead Redis here just logs,
// the worker loop keeps draining.
func SendToDLQ(ctx context.Context, rdb *redis.Client, fila, tipo string, payload json.RawMessage, motivo string, tentativas int) {
	data, err := json.Marshal(dlqEntry{
		Fila:       fila,
		Tipo:       tipo,
		Payload:    payload,
		Motivo:     motivo,
		FalhouEm:   time.Now().UTC().Format(time.RFC3339),
		Tentativas: tentativas,
	})
	if err != nil {
		log.Error().Err(err).Str("fila", fila).Msg("dlq: marshal da entrada falhou")
		return
	}

	if err := rdb.LPush(ctx, dlqPrefix+fila, data).Err(); err != nil {
		log.Error().Err(err).Str("fila", fila).Msg("dlq: push falhou")
		return
	}
	log.Warn().
		Str("fila", fila).
		Str("tipo", tipo).
		Str("motivo", motivo).
		Int("tentativas", tentativas).
		Msg("dlq: job descartado após esgotar tentativas")
}

// DLQLength reports the backlog of a queue's dead letters.
func DLQLength(ctx context.Context, rdb *redis.Client, fila string) (int64, error) {
	return rdb.LLen(ctx, dlqPrefix+fila).Result()
}
