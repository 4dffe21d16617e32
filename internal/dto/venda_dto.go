package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVendaRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required,uuid"`
	Quantidade int    `json:"quantidade" validate:"required,min=1"`
}

// SubPagamentoRequest is one leg of a Misto sale.
type SubPagamentoRequest struct {
	Modalidade string          `json:"modalidade" validate:"required,oneof=Dinheiro Pix Cartao"`
	Valor      decimal.Decimal `json:"valor"      validate:"required"`
	Parcelas   int             `json:"parcelas"   validate:"omitempty,min=1"`
}

type RegistrarVendaRequest struct {
	FilialID   string             `json:"filial_id"  validate:"required,uuid"`
	Items      []ItemVendaRequest `json:"items"      validate:"required,min=1,dive"`
	Total      decimal.Decimal    `json:"total"      validate:"required"`
	Desconto   decimal.Decimal    `json:"desconto"   validate:"min=0"`
	Modalidade string             `json:"modalidade" validate:"required"`
	Parcelas   int                `json:"parcelas"   validate:"omitempty,min=1"`
	// Pagamentos is required (and only allowed) when Modalidade == "Misto".
	Pagamentos []SubPagamentoRequest `json:"pagamentos" validate:"omitempty,dive"`
	ClienteID  *string               `json:"cliente_id" validate:"omitempty,uuid"`
	// CreditoUsado is store credit spent on this sale.
	CreditoUsado decimal.Decimal `json:"credito_usado" validate:"min=0"`
	Troca        bool            `json:"troca"`
	Observacoes  *string         `json:"observacoes"`
	// Data permits backdating; the time-of-day is pinned to noon server-side.
	Data         *string `json:"data"          validate:"omitempty,datetime=2006-01-02"`
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVendaResponse struct {
	ProdutoID  string          `json:"produto_id"`
	Codigo     string          `json:"codigo"`
	Descricao  string          `json:"descricao"`
	Quantidade int             `json:"quantidade"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type SubPagamentoResponse struct {
	Modalidade string          `json:"modalidade"`
	Valor      decimal.Decimal `json:"valor"`
	Parcelas   int             `json:"parcelas"`
}

type VendaResponse struct {
	ID           string                 `json:"id"`
	FilialID     string                 `json:"filial_id"`
	VendedorID   string                 `json:"vendedor_id"`
	ClienteID    *string                `json:"cliente_id,omitempty"`
	Items        []ItemVendaResponse    `json:"items"`
	Total        decimal.Decimal        `json:"total"`
	Desconto     decimal.Decimal        `json:"desconto"`
	Modalidade   string                 `json:"modalidade"`
	Parcelas     int                    `json:"parcelas"`
	Pagamentos   []SubPagamentoResponse `json:"pagamentos,omitempty"`
	CreditoUsado decimal.Decimal        `json:"credito_usado"`
	Troca        bool                   `json:"troca"`
	Estornada    bool                   `json:"estornada"`
	Data         string                 `json:"data"`
}

// EstornoResponse is the receipt of a successful reversal.
type EstornoResponse struct {
	VendaID           string          `json:"venda_id"`
	EstornadaPor      string          `json:"estornada_por"`
	EstornadaEm       string          `json:"estornada_em"`
	ItensRestaurados  int             `json:"itens_restaurados"`
	DividaReduzida    decimal.Decimal `json:"divida_reduzida"`
	CreditoRestaurado decimal.Decimal `json:"credito_restaurado"`
	// LogPendente indicates the audit-trail write was enqueued but not yet
	// confirmed (degraded success when the queue is unavailable).
	LogPendente bool `json:"log_pendente"`
}
