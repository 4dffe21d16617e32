package repository

import (
	"context"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClienteRepository owns the two customer balances. Both are mutated through
// atomic single-statement increments — concurrent sales, payments and estornos
// for the same customer serialize on the row, not on application code.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error

	// AumentarSaldoDevedorTx adds a fiado sale total to the customer's debt.
	AumentarSaldoDevedorTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) error
	// ReduzirSaldoDevedorTx subtracts, flooring at zero (estorno path).
	ReduzirSaldoDevedorTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) error
	// ReduzirSaldoDevedorCondTx subtracts only when the full amount is owed
	// (debt payment path); zero rows affected means InsufficientBalance.
	ReduzirSaldoDevedorCondTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) (int64, error)

	// DebitarCreditoLojaCondTx spends store credit only if enough is available.
	DebitarCreditoLojaCondTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) (int64, error)
	// RestaurarCreditoLojaTx gives spent credit back and refreshes the
	// expiration countdown (ultimo_credito_em).
	RestaurarCreditoLojaTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal, em time.Time) error

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) AumentarSaldoDevedorTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update("saldo_devedor", gorm.Expr("saldo_devedor + ?", valor)).Error
}

func (r *clienteRepo) ReduzirSaldoDevedorTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update("saldo_devedor", gorm.Expr("GREATEST(saldo_devedor - ?, 0)", valor)).Error
}

func (r *clienteRepo) ReduzirSaldoDevedorCondTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) (int64, error) {
	res := tx.Model(&model.Cliente{}).
		Where("id = ? AND saldo_devedor >= ?", id, valor).
		Update("saldo_devedor", gorm.Expr("saldo_devedor - ?", valor))
	return res.RowsAffected, res.Error
}

func (r *clienteRepo) DebitarCreditoLojaCondTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal) (int64, error) {
	res := tx.Model(&model.Cliente{}).
		Where("id = ? AND credito_loja >= ?", id, valor).
		Update("credito_loja", gorm.Expr("credito_loja - ?", valor))
	return res.RowsAffected, res.Error
}

func (r *clienteRepo) RestaurarCreditoLojaTx(tx *gorm.DB, id uuid.UUID, valor decimal.Decimal, em time.Time) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"credito_loja":      gorm.Expr("credito_loja + ?", valor),
			"ultimo_credito_em": em,
		}).Error
}

func (r *clienteRepo) DB() *gorm.DB { return r.db }
