package repository

import (
	"context"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FilialRepository interface {
	Create(ctx context.Context, f *model.Filial) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Filial, error)
	List(ctx context.Context) ([]model.Filial, error)
	Update(ctx context.Context, f *model.Filial) error
	Desativar(ctx context.Context, id uuid.UUID) error
}

type filialRepo struct{ db *gorm.DB }

func NewFilialRepository(db *gorm.DB) FilialRepository { return &filialRepo{db: db} }

func (r *filialRepo) Create(ctx context.Context, f *model.Filial) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *filialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Filial, error) {
	var f model.Filial
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *filialRepo) List(ctx context.Context) ([]model.Filial, error) {
	var filiais []model.Filial
	err := r.db.WithContext(ctx).Where("ativa = true").Order("nome ASC").Find(&filiais).Error
	return filiais, err
}

func (r *filialRepo) Update(ctx context.Context, f *model.Filial) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *filialRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Filial{}).Where("id = ?", id).Update("ativa", false).Error
}
