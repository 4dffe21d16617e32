package service

import (
	"context"
	"errors"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// faixaPadrao is one step of the built-in cumulative bonus ladder, used when
// the filial has no ConfiguracaoComissao of its own. Thresholds are attainment
// percentages; every step reached pays out, they stack.
type faixaPadrao struct {
	percentual decimal.Decimal
	bonus      decimal.Decimal
}

// The legacy ladder: 116% → 40, 127% → +60, 137% → +80, 168% → +250.
// Reaching the top therefore pays 430 in total.
var faixasPadrao = []faixaPadrao{
	{decimal.NewFromInt(116), decimal.NewFromInt(40)},
	{decimal.NewFromInt(127), decimal.NewFromInt(60)},
	{decimal.NewFromInt(137), decimal.NewFromInt(80)},
	{decimal.NewFromInt(168), decimal.NewFromInt(250)},
}

const (
	PoliticaPadrao      = "padrao"      // built-in cumulative ladder
	PoliticaConfigurada = "configurada" // per-filial faixas, highest tier only
)

type ComissaoService interface {
	Calcular(ctx context.Context, vendedorID uuid.UUID, mes, ano int) (*dto.ComissaoResponse, error)
	CalcularFilial(ctx context.Context, filialID uuid.UUID, mes, ano int) ([]dto.ComissaoResponse, error)
}

type comissaoService struct {
	vendaRepo   repository.VendaRepository
	metaRepo    repository.MetaRepository
	valeRepo    repository.ValeRepository
	usuarioRepo repository.UsuarioRepository
}

func NewComissaoService(
	vendaRepo repository.VendaRepository,
	metaRepo repository.MetaRepository,
	valeRepo repository.ValeRepository,
	usuarioRepo repository.UsuarioRepository,
) ComissaoService {
	return &comissaoService{
		vendaRepo:   vendaRepo,
		metaRepo:    metaRepo,
		valeRepo:    valeRepo,
		usuarioRepo: usuarioRepo,
	}
}

// Calcular derives the full payout view for one seller and one month. It is a
// pure read: realized sales come pre-aggregated (estornadas and trocas already
// excluded), the goal comes from the Meta row or the seller's personal
// fallback, and vales for the period are deducted at the end.
func (s *comissaoService) Calcular(ctx context.Context, vendedorID uuid.UUID, mes, ano int) (*dto.ComissaoResponse, error) {
	vendedor, err := s.usuarioRepo.FindByID(ctx, vendedorID)
	if err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	agg, err := s.vendaRepo.AgregadoVendedorPeriodo(ctx, vendedorID, mes, ano)
	if err != nil {
		return nil, err
	}

	meta := vendedor.MetaPessoal
	if m, err := s.metaRepo.FindPeriodo(ctx, vendedorID, mes, ano); err == nil && m != nil {
		meta = m.MetaVendas
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	resp := &dto.ComissaoResponse{
		VendedorID:         vendedorID.String(),
		Mes:                mes,
		Ano:                ano,
		VendasTotal:        agg.Total,
		PecasVendidas:      agg.Pecas,
		Meta:               meta,
		PercentualAtingido: decimal.Zero,
		ComissaoBase:       decimal.Zero,
		Bonus:              decimal.Zero,
		FaltaProximaFaixa:  decimal.Zero,
		Politica:           PoliticaPadrao,
	}

	// Zero-goal guard: no target means no attainment and no bonus, never a
	// division by zero.
	if meta.IsPositive() {
		resp.PercentualAtingido = agg.Total.Div(meta).Mul(decimal.NewFromInt(100)).Round(2)
	}

	var cfg *model.ConfiguracaoComissao
	if vendedor.FilialID != nil {
		cfg, err = s.metaRepo.FindConfigByFilial(ctx, *vendedor.FilialID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if cfg != nil {
		resp.Politica = PoliticaConfigurada
		resp.ComissaoBase = agg.Total.Mul(cfg.Percentual).Div(decimal.NewFromInt(100)).Round(2)
		if meta.IsPositive() {
			resp.Bonus, resp.Faixa = maiorFaixa(cfg.Faixas, resp.PercentualAtingido)
		}
	} else if meta.IsPositive() {
		resp.Bonus, resp.Faixa, resp.FaltaProximaFaixa = faixasCumulativas(resp.PercentualAtingido)
	}

	vales, err := s.valeRepo.SumPeriodo(ctx, vendedorID, mes, ano)
	if err != nil {
		return nil, err
	}
	resp.TotalVales = vales
	resp.LiquidoAPagar = resp.ComissaoBase.Add(resp.Bonus).Sub(vales)
	return resp, nil
}

// CalcularFilial runs the calculation for every active vendedora of a filial.
func (s *comissaoService) CalcularFilial(ctx context.Context, filialID uuid.UUID, mes, ano int) ([]dto.ComissaoResponse, error) {
	vendedoras, err := s.usuarioRepo.ListVendedoresFilial(ctx, filialID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComissaoResponse, 0, len(vendedoras))
	for _, v := range vendedoras {
		c, err := s.Calcular(ctx, v.ID, mes, ano)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// faixasCumulativas sums every built-in step the attainment reached and
// reports how far the next step is.
func faixasCumulativas(atingido decimal.Decimal) (bonus decimal.Decimal, faixa int, falta decimal.Decimal) {
	bonus = decimal.Zero
	falta = decimal.Zero
	for i, f := range faixasPadrao {
		if atingido.GreaterThanOrEqual(f.percentual) {
			bonus = bonus.Add(f.bonus)
			faixa = i + 1
		} else {
			falta = f.percentual.Sub(atingido)
			break
		}
	}
	return bonus, faixa, falta
}

// maiorFaixa pays only the highest configured faixa reached. Faixas arrive
// ordered by Ordem ascending.
func maiorFaixa(faixas []model.FaixaBonus, atingido decimal.Decimal) (decimal.Decimal, int) {
	bonus := decimal.Zero
	faixa := 0
	for i, f := range faixas {
		if atingido.GreaterThanOrEqual(f.PercentualMeta) {
			bonus = f.ValorBonus
			faixa = i + 1
		}
	}
	return bonus, faixa
}
