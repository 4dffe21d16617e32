package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LogEstorno is the immutable audit trail of a reversal: which quantities went
// back to stock and which balances were touched. It is written best-effort by
// the worker pool after the estorno transaction commits — a failed log write
// degrades the estorno, it never rolls it back.
type LogEstorno struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID uuid.UUID `gorm:"type:uuid;not null"`
	// ItensRestaurados is a "codigo:quantidade" list, one entry per item.
	ItensRestaurados  string          `gorm:"not null"`
	DividaReduzida    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreditoRestaurado decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Data              time.Time
}

// TableName overrides GORM's default pluralization.
func (LogEstorno) TableName() string { return "logs_estorno" }
