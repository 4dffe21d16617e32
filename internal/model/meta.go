package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Meta is a per-vendedor monthly sales target.
type Meta struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendedorID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_meta_periodo"`
	Mes        int             `gorm:"not null;uniqueIndex:idx_meta_periodo"`
	Ano        int             `gorm:"not null;uniqueIndex:idx_meta_periodo"`
	MetaVendas decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetaPecas  int             `gorm:"not null;default:0"`
	CreatedAt  time.Time

	Vendedor *Usuario `gorm:"foreignKey:VendedorID"`
}

// ConfiguracaoComissao holds the per-filial commission percentage and the
// ordered bonus faixas used by the highest-single-tier policy.
type ConfiguracaoComissao struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FilialID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Percentual decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Faixas     []FaixaBonus    `gorm:"foreignKey:ConfiguracaoID;constraint:OnDelete:CASCADE"`
	UpdatedAt  time.Time
}

// TableName overrides GORM's default pluralization.
func (ConfiguracaoComissao) TableName() string { return "configuracoes_comissao" }

// FaixaBonus pays ValorBonus when attainment reaches PercentualMeta percent of
// the goal. Only the highest faixa met is paid under this policy.
type FaixaBonus struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConfiguracaoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PercentualMeta decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	ValorBonus     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Ordem          int             `gorm:"not null"`
}

// TableName overrides GORM's default pluralization.
func (FaixaBonus) TableName() string { return "faixas_bonus" }
