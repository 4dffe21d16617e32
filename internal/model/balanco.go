package model

import (
	"time"

	"github.com/google/uuid"
)

// Balanco is a periodic physical inventory count reconciled against system
// quantities. Tipo: "semanal" | "mensal" | "completo".
// Status: "em_andamento" | "concluido".
type Balanco struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FilialID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo        string    `gorm:"type:varchar(20);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'em_andamento'"`
	IniciadoEm  time.Time
	ConcluidoEm *time.Time

	Items []BalancoItem `gorm:"foreignKey:BalancoID"`
}

// TableName overrides GORM's default pluralization.
func (Balanco) TableName() string { return "balancos" }

// BalancoItem is one sampled product. QtdContada stays nil until the counter
// records it; Diferenca = contada − sistema.
type BalancoItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BalancoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProdutoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Codigo     string    `gorm:"not null"`
	Descricao  string    `gorm:"not null"`
	QtdSistema int       `gorm:"not null"`
	QtdContada *int
	Diferenca  *int
	Conferido  bool `gorm:"not null;default:false"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

// TableName overrides GORM's default pluralization.
func (BalancoItem) TableName() string { return "balanco_items" }
