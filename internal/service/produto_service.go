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

type ProdutoService interface {
	Create(ctx context.Context, req dto.ProdutoRequest) (*model.Produto, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ProdutoRequest) (*model.Produto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByCodigo(ctx context.Context, filialID uuid.UUID, codigo string) (*model.Produto, error)
	ListByFilial(ctx context.Context, filialID uuid.UUID) ([]model.Produto, error)
	ValorEstoque(ctx context.Context, filialID uuid.UUID) (*dto.ValorEstoqueResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type produtoService struct {
	produtoRepo repository.ProdutoRepository
}

func NewProdutoService(produtoRepo repository.ProdutoRepository) ProdutoService {
	return &produtoService{produtoRepo: produtoRepo}
}

func (s *produtoService) Create(ctx context.Context, req dto.ProdutoRequest) (*model.Produto, error) {
	filialID, err := uuid.Parse(req.FilialID)
	if err != nil {
		return nil, ErrFilialNaoEncontrada
	}

	p := &model.Produto{
		FilialID:   filialID,
		Codigo:     req.Codigo,
		Descricao:  req.Descricao,
		Categoria:  categoriaOuPadrao(req.Categoria),
		Quantidade: req.Quantidade,
		PrecoCusto: req.PrecoCusto,
		PrecoVenda: req.PrecoVenda,
		Ativo:      true,
	}
	if err := s.produtoRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update never touches Quantidade: stock only moves through sales, estornos
// and balanço corrections.
func (s *produtoService) Update(ctx context.Context, id uuid.UUID, req dto.ProdutoRequest) (*model.Produto, error) {
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Codigo = req.Codigo
	p.Descricao = req.Descricao
	p.Categoria = categoriaOuPadrao(req.Categoria)
	p.PrecoCusto = req.PrecoCusto
	p.PrecoVenda = req.PrecoVenda

	if err := s.produtoRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *produtoService) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	p, err := s.produtoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProdutoNaoEncontrado
		}
		return nil, err
	}
	return p, nil
}

func (s *produtoService) FindByCodigo(ctx context.Context, filialID uuid.UUID, codigo string) (*model.Produto, error) {
	p, err := s.produtoRepo.FindByCodigo(ctx, filialID, codigo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProdutoNaoEncontrado
		}
		return nil, err
	}
	return p, nil
}

func (s *produtoService) ListByFilial(ctx context.Context, filialID uuid.UUID) ([]model.Produto, error) {
	return s.produtoRepo.ListByFilial(ctx, filialID)
}

// ValorEstoque prices the filial's active inventory at cost
// (Σ quantidade × preco_custo). Desativados ficam de fora.
func (s *produtoService) ValorEstoque(ctx context.Context, filialID uuid.UUID) (*dto.ValorEstoqueResponse, error) {
	produtos, err := s.produtoRepo.ListByFilial(ctx, filialID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ValorEstoqueResponse{FilialID: filialID.String(), ValorCusto: decimal.Zero}
	for _, p := range produtos {
		if !p.Ativo {
			continue
		}
		resp.NumProdutos++
		resp.Pecas += p.Quantidade
		resp.ValorCusto = resp.ValorCusto.Add(p.PrecoCusto.Mul(decimal.NewFromInt(int64(p.Quantidade))))
	}
	return resp, nil
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.produtoRepo.Desativar(ctx, id)
}

func categoriaOuPadrao(c string) string {
	if c == "" {
		return "Geral"
	}
	return c
}
