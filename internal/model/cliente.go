package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente carries the two customer balances the ledger owns:
//   - SaldoDevedor: debt accumulated by fiado sales, reduced by payments and
//     estornos, floored at zero.
//   - CreditoLoja: store credit granted on returns/bonuses, spent on sales.
//
// Both are mutated exclusively through atomic increments in ClienteRepository.
type Cliente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome          string    `gorm:"index;not null"`
	Telefone      *string
	CPF           *string `gorm:"type:varchar(14);column:cpf"`
	Endereco      *string
	LimiteCredito decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoDevedor  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;check:saldo_devedor >= 0"`
	CreditoLoja   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;check:credito_loja >= 0"`
	// UltimoCreditoEm restarts the store-credit expiration countdown every time
	// credit is granted or restored by an estorno.
	UltimoCreditoEm *time.Time
	CreatedAt       time.Time
}
