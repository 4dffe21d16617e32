package infra

import (
	"fmt"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Unique-constraint races are detected via errors.Is(err,
		// gorm.ErrDuplicatedKey); without translation pgx errors never match.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates / updates the schema. Also used by the integration
// test harness against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Filial{},
		&model.Usuario{},
		&model.Produto{},
		&model.Cliente{},
		&model.Venda{},
		&model.VendaItem{},
		&model.SubPagamento{},
		&model.SessaoCaixa{},
		&model.MovimentoCaixa{},
		&model.PagamentoDivida{},
		&model.Vale{},
		&model.Meta{},
		&model.ConfiguracaoComissao{},
		&model.FaixaBonus{},
		&model.Balanco{},
		&model.BalancoItem{},
		&model.LogEstorno{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one balanço em andamento — the partial unique index is the
		// atomic guard behind BalancoService.Iniciar. One global row wins; the
		// per-filial variant is enforced in the service on top of this.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_balanco_em_andamento
		     ON balancos ((status)) WHERE status = 'em_andamento'`,
		// Day-bucket queries on vendas and movimentos hit these constantly.
		`CREATE INDEX IF NOT EXISTS idx_vendas_filial_data ON vendas (filial_id, data)`,
		`CREATE INDEX IF NOT EXISTS idx_movimentos_caixa_filial_data ON movimentos_caixa (filial_id, data)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
