package repository

import (
	"context"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ValeRepository is append-only: vales are never edited or removed, only
// summed per period at payout time.
type ValeRepository interface {
	Create(ctx context.Context, v *model.Vale) error
	ListPeriodo(ctx context.Context, vendedoraID uuid.UUID, mes, ano int) ([]model.Vale, error)
	SumPeriodo(ctx context.Context, vendedoraID uuid.UUID, mes, ano int) (decimal.Decimal, error)
}

type valeRepo struct{ db *gorm.DB }

func NewValeRepository(db *gorm.DB) ValeRepository { return &valeRepo{db: db} }

func (r *valeRepo) Create(ctx context.Context, v *model.Vale) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *valeRepo) ListPeriodo(ctx context.Context, vendedoraID uuid.UUID, mes, ano int) ([]model.Vale, error) {
	var vales []model.Vale
	err := r.db.WithContext(ctx).
		Where("vendedora_id = ? AND mes = ? AND ano = ?", vendedoraID, mes, ano).
		Order("data ASC").
		Find(&vales).Error
	return vales, err
}

func (r *valeRepo) SumPeriodo(ctx context.Context, vendedoraID uuid.UUID, mes, ano int) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).
		Model(&model.Vale{}).
		Select("COALESCE(SUM(valor), 0) AS total").
		Where("vendedora_id = ? AND mes = ? AND ano = ?", vendedoraID, mes, ano).
		Scan(&row).Error
	return row.Total, err
}
