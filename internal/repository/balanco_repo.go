package repository

import (
	"context"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BalancoRepository interface {
	// Create inserts the balanço with its items. The partial unique index on
	// status='em_andamento' rejects a second concurrent in-progress audit.
	Create(ctx context.Context, b *model.Balanco) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Balanco, error)
	// FindEmAndamento returns the in-progress audit; filialID is honored only
	// when the per-filial scope is enabled (nil = global lookup).
	FindEmAndamento(ctx context.Context, filialID *uuid.UUID) (*model.Balanco, error)
	// FindUltimoConcluido returns the most recently concluded audit of the
	// filial, whose sampled product set must be avoided by the next draw.
	FindUltimoConcluido(ctx context.Context, filialID uuid.UUID) (*model.Balanco, error)
	FindItem(ctx context.Context, balancoID, produtoID uuid.UUID) (*model.BalancoItem, error)
	UpdateItem(ctx context.Context, item *model.BalancoItem) error
	ConcluirTx(tx *gorm.DB, id uuid.UUID, em time.Time) error
	DB() *gorm.DB
}

type balancoRepo struct{ db *gorm.DB }

func NewBalancoRepository(db *gorm.DB) BalancoRepository { return &balancoRepo{db: db} }

func (r *balancoRepo) DB() *gorm.DB { return r.db }

func (r *balancoRepo) Create(ctx context.Context, b *model.Balanco) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *balancoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Balanco, error) {
	var b model.Balanco
	err := r.db.WithContext(ctx).Preload("Items").First(&b, "id = ?", id).Error
	return &b, err
}

func (r *balancoRepo) FindEmAndamento(ctx context.Context, filialID *uuid.UUID) (*model.Balanco, error) {
	q := r.db.WithContext(ctx).Where("status = 'em_andamento'")
	if filialID != nil {
		q = q.Where("filial_id = ?", *filialID)
	}
	var b model.Balanco
	err := q.First(&b).Error
	return &b, err
}

func (r *balancoRepo) FindUltimoConcluido(ctx context.Context, filialID uuid.UUID) (*model.Balanco, error) {
	var b model.Balanco
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("filial_id = ? AND status = 'concluido'", filialID).
		Order("concluido_em DESC").
		First(&b).Error
	return &b, err
}

func (r *balancoRepo) FindItem(ctx context.Context, balancoID, produtoID uuid.UUID) (*model.BalancoItem, error) {
	var item model.BalancoItem
	err := r.db.WithContext(ctx).
		Where("balanco_id = ? AND produto_id = ?", balancoID, produtoID).
		First(&item).Error
	return &item, err
}

func (r *balancoRepo) UpdateItem(ctx context.Context, item *model.BalancoItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *balancoRepo) ConcluirTx(tx *gorm.DB, id uuid.UUID, em time.Time) error {
	return tx.Model(&model.Balanco{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       "concluido",
			"concluido_em": em,
		}).Error
}
