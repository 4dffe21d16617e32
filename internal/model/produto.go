package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is the unit of stock. Quantidade is only ever mutated through the
// conditional single-statement updates in ProdutoRepository — never via
// read-modify-write — so it can never go negative under concurrent sales.
type Produto struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FilialID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_produto_filial_codigo"`
	// Codigo is the barcode / product code, unique within a filial.
	Codigo     string          `gorm:"not null;uniqueIndex:idx_produto_filial_codigo"`
	Descricao  string          `gorm:"index;not null"`
	Categoria  string          `gorm:"not null;default:'Geral'"`
	Quantidade int             `gorm:"not null;default:0;check:quantidade >= 0"`
	PrecoCusto decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecoVenda decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Ativo      bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Filial *Filial `gorm:"foreignKey:FilialID"`
}
