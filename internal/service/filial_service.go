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

type FilialService interface {
	Create(ctx context.Context, req dto.FilialRequest) (*model.Filial, error)
	Update(ctx context.Context, id uuid.UUID, req dto.FilialRequest) (*model.Filial, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Filial, error)
	List(ctx context.Context) ([]model.Filial, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type filialService struct {
	filialRepo repository.FilialRepository
}

func NewFilialService(filialRepo repository.FilialRepository) FilialService {
	return &filialService{filialRepo: filialRepo}
}

func (s *filialService) Create(ctx context.Context, req dto.FilialRequest) (*model.Filial, error) {
	f := &model.Filial{
		Nome:     req.Nome,
		Endereco: req.Endereco,
		Telefone: req.Telefone,
		CNPJ:     req.CNPJ,
		Ativa:    true,
	}
	if err := s.filialRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *filialService) Update(ctx context.Context, id uuid.UUID, req dto.FilialRequest) (*model.Filial, error) {
	f, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f.Nome = req.Nome
	f.Endereco = req.Endereco
	f.Telefone = req.Telefone
	f.CNPJ = req.CNPJ

	if err := s.filialRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *filialService) FindByID(ctx context.Context, id uuid.UUID) (*model.Filial, error) {
	f, err := s.filialRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFilialNaoEncontrada
		}
		return nil, err
	}
	return f, nil
}

func (s *filialService) List(ctx context.Context) ([]model.Filial, error) {
	return s.filialRepo.List(ctx)
}

func (s *filialService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.filialRepo.Desativar(ctx, id)
}
