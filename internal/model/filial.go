package model

import (
	"time"

	"github.com/google/uuid"
)

// Filial is a store branch. All ledger state (estoque, caixa, balanço) is
// scoped per filial.
type Filial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	Endereco  *string
	Telefone  *string
	CNPJ      *string `gorm:"type:varchar(20);column:cnpj"`
	Ativa     bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization (filials → filiais).
func (Filial) TableName() string { return "filiais" }
