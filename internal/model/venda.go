package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venda is a committed sale. Items and payments are immutable after commit;
// the only mutable fields are the estorno trio, flipped exactly once by the
// conditional update in VendaRepository.MarcarEstornadaTx.
type Venda struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FilialID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendedorID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClienteID  *uuid.UUID      `gorm:"type:uuid;index"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Desconto   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Modalidade Modalidade      `gorm:"type:varchar(20);not null"`
	Parcelas   int             `gorm:"not null;default:1"`
	// CreditoUsado is store credit spent on this sale; restored on estorno.
	CreditoUsado decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// Troca marks an exchange: items return to stock instead of leaving it.
	Troca       bool `gorm:"not null;default:false"`
	Observacoes *string
	// Data is branch-local. Backdated sales get their time-of-day pinned to
	// noon so day-bucket queries stay stable.
	Data time.Time `gorm:"not null;index"`

	Estornada    bool `gorm:"not null;default:false"`
	EstornadaEm  *time.Time
	EstornadaPor *uuid.UUID `gorm:"type:uuid"`

	Items      []VendaItem    `gorm:"foreignKey:VendaID"`
	Pagamentos []SubPagamento `gorm:"foreignKey:VendaID"`
	Vendedor   *Usuario       `gorm:"foreignKey:VendedorID"`
	Cliente    *Cliente       `gorm:"foreignKey:ClienteID"`
}

// VendaItem snapshots price and cost at sale time.
type VendaItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Codigo     string          `gorm:"not null"`
	Descricao  string          `gorm:"not null"`
	Quantidade int             `gorm:"not null"`
	PrecoVenda decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecoCusto decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

// SubPagamento is one leg of a Misto sale (or the single leg of a simple one).
type SubPagamento struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Modalidade Modalidade      `gorm:"type:varchar(20);not null"`
	Valor      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Parcelas   int             `gorm:"not null;default:1"`
}

// TableName overrides GORM's default pluralization (sub_pagamentoes).
func (SubPagamento) TableName() string { return "sub_pagamentos" }
