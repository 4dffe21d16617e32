package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sample sizes per audit type. "completo" covers the whole catalog.
const (
	amostraSemanal = 15
	amostraMensal  = 50
)

type BalancoService interface {
	Iniciar(ctx context.Context, req dto.IniciarBalancoRequest) (*model.Balanco, error)
	RegistrarContagem(ctx context.Context, balancoID uuid.UUID, req dto.ContagemRequest) (*model.BalancoItem, error)
	Concluir(ctx context.Context, balancoID uuid.UUID, aplicarEstoque bool) (*model.Balanco, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Balanco, error)
	EmAndamento(ctx context.Context, filialID uuid.UUID) (*model.Balanco, error)
}

type balancoService struct {
	balancoRepo repository.BalancoRepository
	produtoRepo repository.ProdutoRepository
	clock       infra.Clock
	// escopoFilial relaxes the "one in-progress audit" rule from global
	// (legacy behavior, the default) to per-filial.
	escopoFilial bool
	rng          *rand.Rand
}

func NewBalancoService(
	balancoRepo repository.BalancoRepository,
	produtoRepo repository.ProdutoRepository,
	clock infra.Clock,
	escopo string,
	rng *rand.Rand,
) BalancoService {
	return &balancoService{
		balancoRepo:  balancoRepo,
		produtoRepo:  produtoRepo,
		clock:        clock,
		escopoFilial: escopo == "filial",
		rng:          rng,
	}
}

// Iniciar opens a new audit with a random product sample. Products counted in
// the previous concluded audit are avoided so consecutive audits rotate
// through the catalog; when the remainder is too small to fill the sample the
// exclusion is waived.
func (s *balancoService) Iniciar(ctx context.Context, req dto.IniciarBalancoRequest) (*model.Balanco, error) {
	filialID, err := uuid.Parse(req.FilialID)
	if err != nil {
		return nil, ErrFilialNaoEncontrada
	}

	var escopo *uuid.UUID
	if s.escopoFilial {
		escopo = &filialID
	}
	if existente, err := s.balancoRepo.FindEmAndamento(ctx, escopo); err == nil && existente != nil {
		return nil, ErrBalancoEmAndamento
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	produtos, err := s.produtoRepo.ListByFilial(ctx, filialID)
	if err != nil {
		return nil, err
	}
	ativos := produtos[:0]
	for _, p := range produtos {
		if p.Ativo {
			ativos = append(ativos, p)
		}
	}

	amostra := s.amostrar(ctx, filialID, ativos, req.Tipo)

	items := make([]model.BalancoItem, 0, len(amostra))
	for _, p := range amostra {
		items = append(items, model.BalancoItem{
			ProdutoID:  p.ID,
			Codigo:     p.Codigo,
			Descricao:  p.Descricao,
			QtdSistema: p.Quantidade,
		})
	}

	balanco := &model.Balanco{
		FilialID:   filialID,
		Tipo:       req.Tipo,
		Status:     "em_andamento",
		IniciadoEm: s.clock.Now(),
		Items:      items,
	}
	if err := s.balancoRepo.Create(ctx, balanco); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBalancoEmAndamento
		}
		return nil, err
	}
	return balanco, nil
}

func (s *balancoService) amostrar(ctx context.Context, filialID uuid.UUID, ativos []model.Produto, tipo string) []model.Produto {
	var tamanho int
	switch tipo {
	case "semanal":
		tamanho = amostraSemanal
	case "mensal":
		tamanho = amostraMensal
	default: // completo
		return ativos
	}
	if len(ativos) <= tamanho {
		return ativos
	}

	// Avoid repeating the previous audit's sample when there is still enough
	// catalog left over to fill the draw.
	anteriores := map[uuid.UUID]bool{}
	if ultimo, err := s.balancoRepo.FindUltimoConcluido(ctx, filialID); err == nil && ultimo != nil {
		for _, it := range ultimo.Items {
			anteriores[it.ProdutoID] = true
		}
	}

	pool := make([]model.Produto, 0, len(ativos))
	for _, p := range ativos {
		if !anteriores[p.ID] {
			pool = append(pool, p)
		}
	}
	if len(pool) < tamanho {
		pool = ativos
	}

	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:tamanho]
}

// RegistrarContagem stores one physical count. Counts can be revised any
// number of times while the audit is open; Diferenca is derived, never sent
// by the client.
func (s *balancoService) RegistrarContagem(ctx context.Context, balancoID uuid.UUID, req dto.ContagemRequest) (*model.BalancoItem, error) {
	balanco, err := s.findOrErr(ctx, balancoID)
	if err != nil {
		return nil, err
	}
	if balanco.Status != "em_andamento" {
		return nil, ErrBalancoConcluido
	}

	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, ErrProdutoNaoEncontrado
	}
	item, err := s.balancoRepo.FindItem(ctx, balancoID, produtoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemForaDoBalanco
		}
		return nil, err
	}

	contada := req.QtdContada
	diferenca := contada - item.QtdSistema
	item.QtdContada = &contada
	item.Diferenca = &diferenca
	item.Conferido = true

	if err := s.balancoRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Concluir seals the audit. With aplicarEstoque the counted quantities become
// the system quantities — only for items actually counted, and through the
// force-set primitive so the correction bypasses sale-driven arithmetic.
func (s *balancoService) Concluir(ctx context.Context, balancoID uuid.UUID, aplicarEstoque bool) (*model.Balanco, error) {
	balanco, err := s.findOrErr(ctx, balancoID)
	if err != nil {
		return nil, err
	}
	if balanco.Status != "em_andamento" {
		return nil, ErrBalancoConcluido
	}

	em := s.clock.Now()
	err = runTx(s.balancoRepo.DB(), func(tx *gorm.DB) error {
		if aplicarEstoque {
			for _, it := range balanco.Items {
				if !it.Conferido || it.QtdContada == nil || *it.Diferenca == 0 {
					continue
				}
				if err := s.produtoRepo.DefinirQuantidadeTx(tx, it.ProdutoID, *it.QtdContada); err != nil {
					return err
				}
			}
		}
		return s.balancoRepo.ConcluirTx(tx, balancoID, em)
	})
	if err != nil {
		return nil, err
	}

	balanco.Status = "concluido"
	balanco.ConcluidoEm = &em
	return balanco, nil
}

func (s *balancoService) FindByID(ctx context.Context, id uuid.UUID) (*model.Balanco, error) {
	return s.findOrErr(ctx, id)
}

func (s *balancoService) EmAndamento(ctx context.Context, filialID uuid.UUID) (*model.Balanco, error) {
	var escopo *uuid.UUID
	if s.escopoFilial {
		escopo = &filialID
	}
	b, err := s.balancoRepo.FindEmAndamento(ctx, escopo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBalancoNaoEncontrado
		}
		return nil, err
	}
	return b, nil
}

func (s *balancoService) findOrErr(ctx context.Context, id uuid.UUID) (*model.Balanco, error) {
	b, err := s.balancoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBalancoNaoEncontrado
		}
		return nil, err
	}
	return b, nil
}
