package service

import (
	"context"
	"errors"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteService interface {
	Create(ctx context.Context, req dto.ClienteRequest) (*model.Cliente, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*model.Cliente, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
}

type clienteService struct {
	clienteRepo repository.ClienteRepository
}

func NewClienteService(clienteRepo repository.ClienteRepository) ClienteService {
	return &clienteService{clienteRepo: clienteRepo}
}

func (s *clienteService) Create(ctx context.Context, req dto.ClienteRequest) (*model.Cliente, error) {
	c := &model.Cliente{
		Nome:          req.Nome,
		Telefone:      req.Telefone,
		CPF:           req.CPF,
		Endereco:      req.Endereco,
		LimiteCredito: req.LimiteCredito,
	}
	if err := s.clienteRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update never touches SaldoDevedor or CreditoLoja: those balances only move
// through the atomic ledger operations.
func (s *clienteService) Update(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*model.Cliente, error) {
	c, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Nome = req.Nome
	c.Telefone = req.Telefone
	c.CPF = req.CPF
	c.Endereco = req.Endereco
	c.LimiteCredito = req.LimiteCredito

	if err := s.clienteRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clienteService) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, err := s.clienteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNaoEncontrado
		}
		return nil, err
	}
	return c, nil
}

func (s *clienteService) List(ctx context.Context) ([]model.Cliente, error) {
	return s.clienteRepo.List(ctx)
}
