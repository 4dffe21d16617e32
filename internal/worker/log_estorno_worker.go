package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LogEstornoPayload is enqueued by VendaService.Estornar after the primary
// transaction commits.
type LogEstornoPayload struct {
	VendaID           string `json:"venda_id"`
	ActorID           string `json:"actor_id"`
	ItensRestaurados  string `json:"itens_restaurados"`
	DividaReduzida    string `json:"divida_reduzida"`
	CreditoRestaurado string `json:"credito_restaurado"`
	Data              string `json:"data"` // RFC3339
}

// LogEstornoWorker persists the immutable reversal audit trail.
type LogEstornoWorker struct {
	repo repository.LogEstornoRepository
}

func NewLogEstornoWorker(repo repository.LogEstornoRepository) *LogEstornoWorker {
	return &LogEstornoWorker{repo: repo}
}

func (w *LogEstornoWorker) Handle(ctx context.Context, payload json.RawMessage) error {
	var p LogEstornoPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}

	vendaID, err := uuid.Parse(p.VendaID)
	if err != nil {
		return err
	}
	actorID, err := uuid.Parse(p.ActorID)
	if err != nil {
		return err
	}
	divida, err := decimal.NewFromString(p.DividaReduzida)
	if err != nil {
		return err
	}
	credito, err := decimal.NewFromString(p.CreditoRestaurado)
	if err != nil {
		return err
	}
	data, err := time.Parse(time.RFC3339, p.Data)
	if err != nil {
		return err
	}

	return w.repo.Create(ctx, &model.LogEstorno{
		VendaID:           vendaID,
		ActorID:           actorID,
		ItensRestaurados:  p.ItensRestaurados,
		DividaReduzida:    divida,
		CreditoRestaurado: credito,
		Data:              data,
	})
}
