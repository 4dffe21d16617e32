package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vale is a salary advance against a vendedora's future commission.
// Append-only; the sum for a period is deducted from the commission payout.
type Vale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendedoraID uuid.UUID       `gorm:"type:uuid;not null;index:idx_vale_periodo"`
	Valor       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Mes         int             `gorm:"not null;index:idx_vale_periodo"`
	Ano         int             `gorm:"not null;index:idx_vale_periodo"`
	Observacoes *string
	Data        time.Time

	Vendedora *Usuario `gorm:"foreignKey:VendedoraID"`
}
