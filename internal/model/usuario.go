package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Usuario covers every authenticated actor.
// Role: "admin" | "gerente" | "vendedora"
type Usuario struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string     `gorm:"uniqueIndex;not null"`
	Nome      string     `gorm:"not null"`
	Role      string     `gorm:"type:varchar(20);not null"`
	SenhaHash string     `gorm:"not null"`
	FilialID  *uuid.UUID `gorm:"type:uuid;index"`
	// MetaPessoal is the fallback monthly sales target used by the commission
	// calculator when no Meta row exists for the period.
	MetaPessoal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Ativo       bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time

	Filial *Filial `gorm:"foreignKey:FilialID"`
}
