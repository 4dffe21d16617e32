package repository

import (
	"context"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendasAgregadas is the realized-sales rollup consumed by the commission
// calculator. Estornadas and trocas are excluded at query time.
type VendasAgregadas struct {
	Total  decimal.Decimal
	Pecas  int
	Vendas int
}

type VendaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	// MarcarEstornadaTx flips the estorno flag only if it is still false.
	// Zero rows affected means a concurrent estorno won.
	MarcarEstornadaTx(tx *gorm.DB, id uuid.UUID, actor uuid.UUID, em time.Time) (int64, error)
	// ListDia returns the filial's sales for one branch-local calendar day.
	ListDia(ctx context.Context, filialID uuid.UUID, dia time.Time) ([]model.Venda, error)
	// AgregadoVendedorPeriodo sums non-estornada, non-troca sales for a seller
	// in a month.
	AgregadoVendedorPeriodo(ctx context.Context, vendedorID uuid.UUID, mes, ano int) (*VendasAgregadas, error)
	List(ctx context.Context, filialID uuid.UUID, limit int) ([]model.Venda, error)
	DB() *gorm.DB
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Pagamentos").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vendaRepo) MarcarEstornadaTx(tx *gorm.DB, id uuid.UUID, actor uuid.UUID, em time.Time) (int64, error) {
	res := tx.Model(&model.Venda{}).
		Where("id = ? AND estornada = false", id).
		Updates(map[string]interface{}{
			"estornada":     true,
			"estornada_em":  em,
			"estornada_por": actor,
		})
	return res.RowsAffected, res.Error
}

func (r *vendaRepo) ListDia(ctx context.Context, filialID uuid.UUID, dia time.Time) ([]model.Venda, error) {
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	fim := inicio.AddDate(0, 0, 1)

	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Pagamentos").
		Where("filial_id = ? AND data >= ? AND data < ?", filialID, inicio, fim).
		Order("data ASC").
		Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) AgregadoVendedorPeriodo(ctx context.Context, vendedorID uuid.UUID, mes, ano int) (*VendasAgregadas, error) {
	var row struct {
		Total  decimal.Decimal
		Pecas  int
		Vendas int
	}
	err := r.db.WithContext(ctx).
		Model(&model.Venda{}).
		Select(`COALESCE(SUM(vendas.total), 0) AS total,
		        COALESCE(SUM(itens.pecas), 0)  AS pecas,
		        COUNT(vendas.id)               AS vendas`).
		Joins(`LEFT JOIN (SELECT venda_id, SUM(quantidade) AS pecas
		                  FROM venda_items GROUP BY venda_id) itens
		       ON itens.venda_id = vendas.id`).
		Where(`vendas.vendedor_id = ? AND vendas.estornada = false AND vendas.troca = false
		       AND EXTRACT(MONTH FROM vendas.data) = ? AND EXTRACT(YEAR FROM vendas.data) = ?`,
			vendedorID, mes, ano).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &VendasAgregadas{Total: row.Total, Pecas: row.Pecas, Vendas: row.Vendas}, nil
}

func (r *vendaRepo) List(ctx context.Context, filialID uuid.UUID, limit int) ([]model.Venda, error) {
	if limit <= 0 {
		limit = 100
	}
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Pagamentos").
		Where("filial_id = ?", filialID).
		Order("data DESC").
		Limit(limit).
		Find(&vendas).Error
	return vendas, err
}
