package model

import "fmt"

// Modalidade is the closed set of payment modalities. The original frontend
// sends these as free strings; anything outside the set is rejected at the
// boundary by ParseModalidade.
type Modalidade string

const (
	ModalidadeDinheiro Modalidade = "Dinheiro"
	ModalidadePix      Modalidade = "Pix"
	ModalidadeCartao   Modalidade = "Cartao"
	// ModalidadeCredito is fiado: the sale total is added to the customer's
	// saldo_devedor instead of being paid on the spot.
	ModalidadeCredito Modalidade = "Credito"
	// ModalidadeMisto splits the total across SubPagamentos.
	ModalidadeMisto Modalidade = "Misto"
)

// ParseModalidade validates a wire-level modality tag.
func ParseModalidade(s string) (Modalidade, error) {
	switch Modalidade(s) {
	case ModalidadeDinheiro, ModalidadePix, ModalidadeCartao, ModalidadeCredito, ModalidadeMisto:
		return Modalidade(s), nil
	}
	return "", fmt.Errorf("modalidade de pagamento desconhecida: %q", s)
}

// ParseModalidadeSimples accepts only the modalities a sub-payment or a debt
// payment may use (Misto cannot nest, Credito cannot pay off credit).
func ParseModalidadeSimples(s string) (Modalidade, error) {
	switch Modalidade(s) {
	case ModalidadeDinheiro, ModalidadePix, ModalidadeCartao:
		return Modalidade(s), nil
	}
	return "", fmt.Errorf("modalidade de pagamento inválida para esta operação: %q", s)
}
