package repository

import (
	"context"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MetaRepository interface {
	Create(ctx context.Context, m *model.Meta) error
	FindPeriodo(ctx context.Context, vendedorID uuid.UUID, mes, ano int) (*model.Meta, error)
	List(ctx context.Context, mes, ano int) ([]model.Meta, error)

	FindConfigByFilial(ctx context.Context, filialID uuid.UUID) (*model.ConfiguracaoComissao, error)
	UpsertConfig(ctx context.Context, cfg *model.ConfiguracaoComissao) error
}

type metaRepo struct{ db *gorm.DB }

func NewMetaRepository(db *gorm.DB) MetaRepository { return &metaRepo{db: db} }

func (r *metaRepo) Create(ctx context.Context, m *model.Meta) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *metaRepo) FindPeriodo(ctx context.Context, vendedorID uuid.UUID, mes, ano int) (*model.Meta, error) {
	var m model.Meta
	err := r.db.WithContext(ctx).
		Where("vendedor_id = ? AND mes = ? AND ano = ?", vendedorID, mes, ano).
		First(&m).Error
	return &m, err
}

func (r *metaRepo) List(ctx context.Context, mes, ano int) ([]model.Meta, error) {
	var metas []model.Meta
	err := r.db.WithContext(ctx).
		Preload("Vendedor").
		Where("mes = ? AND ano = ?", mes, ano).
		Find(&metas).Error
	return metas, err
}

func (r *metaRepo) FindConfigByFilial(ctx context.Context, filialID uuid.UUID) (*model.ConfiguracaoComissao, error) {
	var cfg model.ConfiguracaoComissao
	err := r.db.WithContext(ctx).
		Preload("Faixas", func(db *gorm.DB) *gorm.DB { return db.Order("ordem ASC") }).
		Where("filial_id = ?", filialID).
		First(&cfg).Error
	return &cfg, err
}

func (r *metaRepo) UpsertConfig(ctx context.Context, cfg *model.ConfiguracaoComissao) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.ConfiguracaoComissao
		err := tx.Where("filial_id = ?", cfg.FilialID).First(&existing).Error
		if err == nil {
			// Replace faixas wholesale; they are few and ordered.
			if err := tx.Where("configuracao_id = ?", existing.ID).Delete(&model.FaixaBonus{}).Error; err != nil {
				return err
			}
			cfg.ID = existing.ID
			return tx.Save(cfg).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(cfg).Error
	})
}
