package dto

import "github.com/shopspring/decimal"

// ResumoVendedorResponse is one row of the sales-by-vendedora day report.
// Estornos and trocas never count here.
type ResumoVendedorResponse struct {
	VendedorID string          `json:"vendedor_id"`
	NumVendas  int             `json:"num_vendas"`
	Pecas      int             `json:"pecas"`
	Total      decimal.Decimal `json:"total"`
}

// ValorEstoqueResponse prices a filial's active inventory at cost.
type ValorEstoqueResponse struct {
	FilialID    string          `json:"filial_id"`
	NumProdutos int             `json:"num_produtos"`
	Pecas       int             `json:"pecas"`
	ValorCusto  decimal.Decimal `json:"valor_custo"`
}
