package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessaoCaixa is the per-(filial, calendar day) cash session.
// Estado: "aberta" | "fechada"
// The (FilialID, Data) unique index is what makes Abrir atomic: two terminals
// racing to open the same day's caixa collide on the constraint, not on a
// read-then-write check.
type SessaoCaixa struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FilialID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_caixa_filial_data"`
	// Data is the calendar day (branch-local, truncated to midnight).
	Data       time.Time `gorm:"type:date;not null;uniqueIndex:idx_caixa_filial_data"`
	OperadorID uuid.UUID `gorm:"type:uuid;not null"`

	SaldoAbertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalDinheiro decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPix      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCartao   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCredito  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalGeral    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	NumVendas     int             `gorm:"not null;default:0"`

	Sangrias          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Suprimentos       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RetiradasGerencia decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Inconsistente is set at opening time when the declared saldo diverges
	// from the prior closed session's expected drawer by more than the
	// tolerance. It never blocks opening and is preserved through Fechar.
	Inconsistente bool             `gorm:"not null;default:false"`
	Delta         *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Estado      string `gorm:"type:varchar(20);not null;default:'aberta'"`
	Observacoes *string
	AbertaEm    time.Time
	FechadaEm   *time.Time
}

// TableName overrides GORM's default pluralization.
func (SessaoCaixa) TableName() string { return "sessoes_caixa" }

// MovimentoCaixa is an append-only drawer event. Movements are never updated
// or deleted, and may be recorded before the day's session is formally open.
// Tipo: "sangria" | "retirada_gerencia" | "suprimento"
type MovimentoCaixa struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FilialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo     string          `gorm:"type:varchar(30);not null"`
	Valor    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Motivo   string          `gorm:"not null"`
	Data     time.Time       `gorm:"not null;index"`
}

// TableName overrides GORM's default pluralization.
func (MovimentoCaixa) TableName() string { return "movimentos_caixa" }

// PagamentoDivida is a fiado payment receipt. It reduces the customer's
// saldo_devedor and shows up in the day's caixa snapshot under its metodo.
type PagamentoDivida struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	FilialID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Metodo    Modalidade      `gorm:"type:varchar(20);not null"`
	Data      time.Time       `gorm:"not null;index"`

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

// TableName overrides GORM's default pluralization.
func (PagamentoDivida) TableName() string { return "pagamentos_divida" }
