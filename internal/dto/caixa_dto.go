package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	FilialID      string          `json:"filial_id"      validate:"required,uuid"`
	SaldoAbertura decimal.Decimal `json:"saldo_abertura" validate:"min=0"`
}

type MovimentoCaixaRequest struct {
	FilialID string          `json:"filial_id" validate:"required,uuid"`
	Tipo     string          `json:"tipo"      validate:"required,oneof=sangria retirada_gerencia suprimento"`
	Valor    decimal.Decimal `json:"valor"     validate:"required"`
	Motivo   string          `json:"motivo"    validate:"required,min=3"`
}

type FecharCaixaRequest struct {
	FilialID      string          `json:"filial_id"      validate:"required,uuid"`
	TotalDinheiro decimal.Decimal `json:"total_dinheiro" validate:"min=0"`
	TotalPix      decimal.Decimal `json:"total_pix"      validate:"min=0"`
	TotalCartao   decimal.Decimal `json:"total_cartao"   validate:"min=0"`
	TotalCredito  decimal.Decimal `json:"total_credito"  validate:"min=0"`
	NumVendas     int             `json:"num_vendas"     validate:"min=0"`
	Observacoes   *string         `json:"observacoes"`
}

type PagamentoDividaRequest struct {
	ClienteID string          `json:"cliente_id" validate:"required,uuid"`
	FilialID  string          `json:"filial_id"  validate:"required,uuid"`
	Valor     decimal.Decimal `json:"valor"      validate:"required"`
	Metodo    string          `json:"metodo"     validate:"required,oneof=Dinheiro Pix Cartao"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AbrirCaixaResponse struct {
	SessaoID      string          `json:"sessao_id"`
	FilialID      string          `json:"filial_id"`
	Data          string          `json:"data"`
	SaldoAbertura decimal.Decimal `json:"saldo_abertura"`
	Esperado      decimal.Decimal `json:"esperado"`
	Inconsistente bool            `json:"inconsistente"`
	Delta         decimal.Decimal `json:"delta"`
}

type MovimentoCaixaResponse struct {
	ID     string          `json:"id"`
	Tipo   string          `json:"tipo"`
	Valor  decimal.Decimal `json:"valor"`
	Motivo string          `json:"motivo"`
	Data   string          `json:"data"`
}

// SnapshotCaixaResponse is the on-demand read-side projection of the day:
// never persisted, always recomputed from vendas + movimentos + pagamentos.
type SnapshotCaixaResponse struct {
	FilialID      string          `json:"filial_id"`
	Data          string          `json:"data"`
	TotalDinheiro decimal.Decimal `json:"total_dinheiro"`
	TotalPix      decimal.Decimal `json:"total_pix"`
	TotalCartao   decimal.Decimal `json:"total_cartao"`
	TotalCredito  decimal.Decimal `json:"total_credito"`
	TotalGeral    decimal.Decimal `json:"total_geral"`
	NumVendas     int             `json:"num_vendas"`

	Sangrias          decimal.Decimal `json:"sangrias"`
	Suprimentos       decimal.Decimal `json:"suprimentos"`
	RetiradasGerencia decimal.Decimal `json:"retiradas_gerencia"`

	PagamentosDivida decimal.Decimal `json:"pagamentos_divida"`
}

type SessaoCaixaResponse struct {
	SessaoID      string          `json:"sessao_id"`
	FilialID      string          `json:"filial_id"`
	Data          string          `json:"data"`
	SaldoAbertura decimal.Decimal `json:"saldo_abertura"`
	TotalDinheiro decimal.Decimal `json:"total_dinheiro"`
	TotalPix      decimal.Decimal `json:"total_pix"`
	TotalCartao   decimal.Decimal `json:"total_cartao"`
	TotalCredito  decimal.Decimal `json:"total_credito"`
	TotalGeral    decimal.Decimal `json:"total_geral"`
	NumVendas     int             `json:"num_vendas"`
	Inconsistente bool            `json:"inconsistente"`
	Delta         decimal.Decimal `json:"delta"`
	Estado        string          `json:"estado"`
}
