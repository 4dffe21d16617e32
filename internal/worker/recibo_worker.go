package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboPayload is enqueued fire-and-forget after a sale commits.
type ReciboPayload struct {
	VendaID      string  `json:"venda_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

// ReciboWorker renders the receipt PDF and, when the customer left an email,
// mails it through the circuit-breaker-guarded SMTP relay.
type ReciboWorker struct {
	vendaRepo   repository.VendaRepository
	mailer      *infra.Mailer
	cb          *infra.CircuitBreaker
	storagePath string
}

func NewReciboWorker(vendaRepo repository.VendaRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker, storagePath string) *ReciboWorker {
	return &ReciboWorker{vendaRepo: vendaRepo, mailer: mailer, cb: cb, storagePath: storagePath}
}

func (w *ReciboWorker) Handle(ctx context.Context, payload json.RawMessage) error {
	var p ReciboPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}

	vendaID, err := uuid.Parse(p.VendaID)
	if err != nil {
		return err
	}
	venda, err := w.vendaRepo.FindByID(ctx, vendaID)
	if err != nil {
		return fmt.Errorf("recibo: venda %s: %w", p.VendaID, err)
	}

	pdfPath, err := infra.GenerateReciboPDF(venda, w.storagePath)
	if err != nil {
		return err
	}

	if p.ClienteEmail == nil || *p.ClienteEmail == "" {
		return nil
	}

	return w.cb.Execute(func() error {
		err := w.mailer.SendRecibo(
			*p.ClienteEmail,
			"Seu recibo de compra",
			"Obrigado pela compra! Seu recibo está em anexo.",
			pdfPath,
		)
		if err != nil {
			log.Warn().Str("venda_id", p.VendaID).Err(err).Msg("recibo: email delivery failed")
		}
		return err
	})
}
