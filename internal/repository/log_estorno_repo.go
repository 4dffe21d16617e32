package repository

import (
	"context"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogEstornoRepository is the write side of the reversal audit trail.
// Entries are immutable; there is no update or delete.
type LogEstornoRepository interface {
	Create(ctx context.Context, l *model.LogEstorno) error
	ListByVenda(ctx context.Context, vendaID uuid.UUID) ([]model.LogEstorno, error)
}

type logEstornoRepo struct{ db *gorm.DB }

func NewLogEstornoRepository(db *gorm.DB) LogEstornoRepository { return &logEstornoRepo{db: db} }

func (r *logEstornoRepo) Create(ctx context.Context, l *model.LogEstorno) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *logEstornoRepo) ListByVenda(ctx context.Context, vendaID uuid.UUID) ([]model.LogEstorno, error) {
	var logs []model.LogEstorno
	err := r.db.WithContext(ctx).Where("venda_id = ?", vendaID).Order("data ASC").Find(&logs).Error
	return logs, err
}
