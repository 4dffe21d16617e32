package dto

import "github.com/shopspring/decimal"

type ProdutoRequest struct {
	FilialID   string          `json:"filial_id"   validate:"required,uuid"`
	Codigo     string          `json:"codigo"      validate:"required,min=1"`
	Descricao  string          `json:"descricao"   validate:"required,min=1"`
	Categoria  string          `json:"categoria"`
	Quantidade int             `json:"quantidade"  validate:"min=0"`
	PrecoCusto decimal.Decimal `json:"preco_custo" validate:"min=0"`
	PrecoVenda decimal.Decimal `json:"preco_venda" validate:"min=0"`
}

type ProdutoResponse struct {
	ID         string          `json:"id"`
	FilialID   string          `json:"filial_id"`
	Codigo     string          `json:"codigo"`
	Descricao  string          `json:"descricao"`
	Categoria  string          `json:"categoria"`
	Quantidade int             `json:"quantidade"`
	PrecoCusto decimal.Decimal `json:"preco_custo"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
	Ativo      bool            `json:"ativo"`
}
