package dto

import "github.com/shopspring/decimal"

type MetaRequest struct {
	VendedorID string          `json:"vendedor_id" validate:"required,uuid"`
	Mes        int             `json:"mes"         validate:"required,min=1,max=12"`
	Ano        int             `json:"ano"         validate:"required,min=2000"`
	MetaVendas decimal.Decimal `json:"meta_vendas" validate:"required"`
	MetaPecas  int             `json:"meta_pecas"  validate:"min=0"`
}

type ValeRequest struct {
	VendedoraID string          `json:"vendedora_id" validate:"required,uuid"`
	Valor       decimal.Decimal `json:"valor"        validate:"required"`
	Mes         int             `json:"mes"          validate:"required,min=1,max=12"`
	Ano         int             `json:"ano"          validate:"required,min=2000"`
	Observacoes *string         `json:"observacoes"`
}

type FaixaBonusRequest struct {
	PercentualMeta decimal.Decimal `json:"percentual_meta" validate:"required"`
	ValorBonus     decimal.Decimal `json:"valor_bonus"     validate:"required"`
}

type ConfiguracaoComissaoRequest struct {
	FilialID   string              `json:"filial_id"  validate:"required,uuid"`
	Percentual decimal.Decimal     `json:"percentual" validate:"required"`
	Faixas     []FaixaBonusRequest `json:"faixas"     validate:"required,min=1,dive"`
}

type FilialRequest struct {
	Nome     string  `json:"nome"     validate:"required,min=2"`
	Endereco *string `json:"endereco"`
	Telefone *string `json:"telefone"`
	CNPJ     *string `json:"cnpj"`
}
