package repository

import (
	"context"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CaixaRepository persists cash sessions, drawer movements and fiado payment
// receipts. Session creation is guarded by the (filial_id, data) unique index,
// so the open check-and-insert is a single atomic statement.
type CaixaRepository interface {
	CreateSessao(ctx context.Context, s *model.SessaoCaixa) error
	FindSessao(ctx context.Context, filialID uuid.UUID, dia time.Time) (*model.SessaoCaixa, error)
	// FindUltimaFechada returns the most recent closed session of the filial,
	// used to derive the expected drawer balance at opening.
	FindUltimaFechada(ctx context.Context, filialID uuid.UUID) (*model.SessaoCaixa, error)
	UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error

	CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error
	// SumMovimentosDia aggregates the day's movements per tipo.
	SumMovimentosDia(ctx context.Context, filialID uuid.UUID, dia time.Time) (map[string]decimal.Decimal, error)
	ListMovimentosDia(ctx context.Context, filialID uuid.UUID, dia time.Time) ([]model.MovimentoCaixa, error)

	CreatePagamentoDivida(ctx context.Context, tx *gorm.DB, p *model.PagamentoDivida) error
	// SumPagamentosDiaPorMetodo buckets the day's debt payments by metodo.
	SumPagamentosDiaPorMetodo(ctx context.Context, filialID uuid.UUID, dia time.Time) (map[model.Modalidade]decimal.Decimal, error)

	DB() *gorm.DB
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) DB() *gorm.DB { return r.db }

func (r *caixaRepo) CreateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *caixaRepo) FindSessao(ctx context.Context, filialID uuid.UUID, dia time.Time) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).
		Where("filial_id = ? AND data = ?", filialID, dateOnly(dia)).
		First(&s).Error
	return &s, err
}

func (r *caixaRepo) FindUltimaFechada(ctx context.Context, filialID uuid.UUID) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).
		Where("filial_id = ? AND estado = 'fechada'", filialID).
		Order("data DESC").
		First(&s).Error
	return &s, err
}

func (r *caixaRepo) UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *caixaRepo) CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) SumMovimentosDia(ctx context.Context, filialID uuid.UUID, dia time.Time) (map[string]decimal.Decimal, error) {
	inicio, fim := diaRange(dia)

	var rows []struct {
		Tipo  string
		Valor decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.MovimentoCaixa{}).
		Select("tipo, COALESCE(SUM(valor), 0) AS valor").
		Where("filial_id = ? AND data >= ? AND data < ?", filialID, inicio, fim).
		Group("tipo").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Tipo] = row.Valor
	}
	return sums, nil
}

func (r *caixaRepo) ListMovimentosDia(ctx context.Context, filialID uuid.UUID, dia time.Time) ([]model.MovimentoCaixa, error) {
	inicio, fim := diaRange(dia)

	var movs []model.MovimentoCaixa
	err := r.db.WithContext(ctx).
		Where("filial_id = ? AND data >= ? AND data < ?", filialID, inicio, fim).
		Order("data ASC").
		Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) CreatePagamentoDivida(ctx context.Context, tx *gorm.DB, p *model.PagamentoDivida) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *caixaRepo) SumPagamentosDiaPorMetodo(ctx context.Context, filialID uuid.UUID, dia time.Time) (map[model.Modalidade]decimal.Decimal, error) {
	inicio, fim := diaRange(dia)

	var rows []struct {
		Metodo model.Modalidade
		Valor  decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.PagamentoDivida{}).
		Select("metodo, COALESCE(SUM(valor), 0) AS valor").
		Where("filial_id = ? AND data >= ? AND data < ?", filialID, inicio, fim).
		Group("metodo").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[model.Modalidade]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Metodo] = row.Valor
	}
	return sums, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func diaRange(dia time.Time) (time.Time, time.Time) {
	inicio := dateOnly(dia)
	return inicio, inicio.AddDate(0, 0, 1)
}
