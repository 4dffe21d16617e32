package dto

import "github.com/shopspring/decimal"

// ComissaoResponse is the payout view for one seller in one period.
type ComissaoResponse struct {
	VendedorID    string          `json:"vendedor_id"`
	Mes           int             `json:"mes"`
	Ano           int             `json:"ano"`
	VendasTotal   decimal.Decimal `json:"vendas_total"`
	PecasVendidas int             `json:"pecas_vendidas"`
	Meta          decimal.Decimal `json:"meta"`
	// PercentualAtingido is realized/meta × 100 (0 when meta is 0).
	PercentualAtingido decimal.Decimal `json:"percentual_atingido"`
	ComissaoBase       decimal.Decimal `json:"comissao_base"`
	Bonus              decimal.Decimal `json:"bonus"`
	Faixa              int             `json:"faixa"`
	// FaltaProximaFaixa is the attainment percentage still missing to reach
	// the next bonus tier (cumulative policy only; zero at the top tier).
	FaltaProximaFaixa decimal.Decimal `json:"falta_proxima_faixa"`
	TotalVales        decimal.Decimal `json:"total_vales"`
	LiquidoAPagar     decimal.Decimal `json:"liquido_a_pagar"`
	Politica          string          `json:"politica"`
}
