package dto

import "github.com/shopspring/decimal"

type ClienteRequest struct {
	Nome          string          `json:"nome"           validate:"required,min=2"`
	Telefone      *string         `json:"telefone"`
	CPF           *string         `json:"cpf"            validate:"omitempty,min=11,max=14"`
	Endereco      *string         `json:"endereco"`
	LimiteCredito decimal.Decimal `json:"limite_credito" validate:"min=0"`
}

type ClienteResponse struct {
	ID            string          `json:"id"`
	Nome          string          `json:"nome"`
	Telefone      *string         `json:"telefone,omitempty"`
	CPF           *string         `json:"cpf,omitempty"`
	Endereco      *string         `json:"endereco,omitempty"`
	LimiteCredito decimal.Decimal `json:"limite_credito"`
	SaldoDevedor  decimal.Decimal `json:"saldo_devedor"`
	CreditoLoja   decimal.Decimal `json:"credito_loja"`
}

type PagamentoDividaResponse struct {
	ID        string          `json:"id"`
	ClienteID string          `json:"cliente_id"`
	Valor     decimal.Decimal `json:"valor"`
	Metodo    string          `json:"metodo"`
	Data      string          `json:"data"`
	// SaldoRestante is the customer's debt after this payment.
	SaldoRestante decimal.Decimal `json:"saldo_restante"`
}
