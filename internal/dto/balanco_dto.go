package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type IniciarBalancoRequest struct {
	FilialID string `json:"filial_id" validate:"required,uuid"`
	Tipo     string `json:"tipo"      validate:"required,oneof=semanal mensal completo"`
}

type ContagemRequest struct {
	ProdutoID  string `json:"produto_id"  validate:"required,uuid"`
	QtdContada int    `json:"qtd_contada" validate:"min=0"`
}

type ConcluirBalancoRequest struct {
	AplicarEstoque bool `json:"aplicar_estoque"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BalancoItemResponse struct {
	ProdutoID  string `json:"produto_id"`
	Codigo     string `json:"codigo"`
	Descricao  string `json:"descricao"`
	QtdSistema int    `json:"qtd_sistema"`
	QtdContada *int   `json:"qtd_contada,omitempty"`
	Diferenca  *int   `json:"diferenca,omitempty"`
	Conferido  bool   `json:"conferido"`
}

type BalancoResponse struct {
	ID          string                `json:"id"`
	FilialID    string                `json:"filial_id"`
	Tipo        string                `json:"tipo"`
	Status      string                `json:"status"`
	Items       []BalancoItemResponse `json:"items"`
	IniciadoEm  string                `json:"iniciado_em"`
	ConcluidoEm *string               `json:"concluido_em,omitempty"`
}
