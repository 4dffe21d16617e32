package repository

import (
	"context"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
//
// Stock is only mutated through the three single-statement operations below.
// DecrementarEstoqueCondTx is the atomic "decrement by N only if quantidade >= N"
// primitive: zero rows affected means another terminal won the race (or stock
// was simply short) and the caller must fail the whole sale.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByCodigo(ctx context.Context, filialID uuid.UUID, codigo string) (*model.Produto, error)
	ListByFilial(ctx context.Context, filialID uuid.UUID) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	Desativar(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	DecrementarEstoqueCondTx(tx *gorm.DB, id uuid.UUID, qtd int) (int64, error)
	IncrementarEstoqueTx(tx *gorm.DB, id uuid.UUID, qtd int) error
	// DefinirQuantidadeTx force-sets the system quantity (balanço correction),
	// bypassing sale-driven mutation.
	DefinirQuantidadeTx(tx *gorm.DB, id uuid.UUID, qtd int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) FindByCodigo(ctx context.Context, filialID uuid.UUID, codigo string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).
		Where("filial_id = ? AND codigo = ? AND ativo = true", filialID, codigo).
		First(&p).Error
	return &p, err
}

func (r *produtoRepo) ListByFilial(ctx context.Context, filialID uuid.UUID) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).
		Where("filial_id = ? AND ativo = true", filialID).
		Order("descricao ASC").
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *produtoRepo) DecrementarEstoqueCondTx(tx *gorm.DB, id uuid.UUID, qtd int) (int64, error) {
	res := tx.Model(&model.Produto{}).
		Where("id = ? AND quantidade >= ?", id, qtd).
		Update("quantidade", gorm.Expr("quantidade - ?", qtd))
	return res.RowsAffected, res.Error
}

func (r *produtoRepo) IncrementarEstoqueTx(tx *gorm.DB, id uuid.UUID, qtd int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("quantidade", gorm.Expr("quantidade + ?", qtd)).Error
}

func (r *produtoRepo) DefinirQuantidadeTx(tx *gorm.DB, id uuid.UUID, qtd int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("quantidade", qtd).Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
