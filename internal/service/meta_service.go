package service

import (
	"context"
	"errors"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MetaService manages monthly targets, vales and the per-filial commission
// configuration consumed by ComissaoService.
type MetaService interface {
	CriarMeta(ctx context.Context, req dto.MetaRequest) (*model.Meta, error)
	ListarMetas(ctx context.Context, mes, ano int) ([]model.Meta, error)
	CriarVale(ctx context.Context, req dto.ValeRequest) (*model.Vale, error)
	ListarVales(ctx context.Context, vendedoraID uuid.UUID, mes, ano int) ([]model.Vale, error)
	SalvarConfiguracao(ctx context.Context, req dto.ConfiguracaoComissaoRequest) (*model.ConfiguracaoComissao, error)
	BuscarConfiguracao(ctx context.Context, filialID uuid.UUID) (*model.ConfiguracaoComissao, error)
}

type metaService struct {
	metaRepo    repository.MetaRepository
	valeRepo    repository.ValeRepository
	usuarioRepo repository.UsuarioRepository
	clock       infra.Clock
}

func NewMetaService(
	metaRepo repository.MetaRepository,
	valeRepo repository.ValeRepository,
	usuarioRepo repository.UsuarioRepository,
	clock infra.Clock,
) MetaService {
	return &metaService{metaRepo: metaRepo, valeRepo: valeRepo, usuarioRepo: usuarioRepo, clock: clock}
}

func (s *metaService) CriarMeta(ctx context.Context, req dto.MetaRequest) (*model.Meta, error) {
	vendedorID, err := uuid.Parse(req.VendedorID)
	if err != nil {
		return nil, ErrCredenciaisInvalidas
	}
	if _, err := s.usuarioRepo.FindByID(ctx, vendedorID); err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	m := &model.Meta{
		VendedorID: vendedorID,
		Mes:        req.Mes,
		Ano:        req.Ano,
		MetaVendas: req.MetaVendas,
		MetaPecas:  req.MetaPecas,
	}
	if err := s.metaRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *metaService) ListarMetas(ctx context.Context, mes, ano int) ([]model.Meta, error) {
	return s.metaRepo.List(ctx, mes, ano)
}

func (s *metaService) CriarVale(ctx context.Context, req dto.ValeRequest) (*model.Vale, error) {
	vendedoraID, err := uuid.Parse(req.VendedoraID)
	if err != nil {
		return nil, ErrCredenciaisInvalidas
	}
	if !req.Valor.IsPositive() {
		return nil, ErrValeInvalido
	}

	v := &model.Vale{
		VendedoraID: vendedoraID,
		Valor:       req.Valor,
		Mes:         req.Mes,
		Ano:         req.Ano,
		Observacoes: req.Observacoes,
		Data:        s.clock.Now(),
	}
	if err := s.valeRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *metaService) ListarVales(ctx context.Context, vendedoraID uuid.UUID, mes, ano int) ([]model.Vale, error) {
	return s.valeRepo.ListPeriodo(ctx, vendedoraID, mes, ano)
}

func (s *metaService) SalvarConfiguracao(ctx context.Context, req dto.ConfiguracaoComissaoRequest) (*model.ConfiguracaoComissao, error) {
	filialID, err := uuid.Parse(req.FilialID)
	if err != nil {
		return nil, ErrFilialNaoEncontrada
	}

	faixas := make([]model.FaixaBonus, 0, len(req.Faixas))
	for i, f := range req.Faixas {
		faixas = append(faixas, model.FaixaBonus{
			PercentualMeta: f.PercentualMeta,
			ValorBonus:     f.ValorBonus,
			Ordem:          i + 1,
		})
	}

	cfg := &model.ConfiguracaoComissao{
		FilialID:   filialID,
		Percentual: req.Percentual,
		Faixas:     faixas,
	}
	if err := s.metaRepo.UpsertConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *metaService) BuscarConfiguracao(ctx context.Context, filialID uuid.UUID) (*model.ConfiguracaoComissao, error) {
	cfg, err := s.metaRepo.FindConfigByFilial(ctx, filialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMetaNaoEncontrada
		}
		return nil, err
	}
	return cfg, nil
}
