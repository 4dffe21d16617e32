package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto the
// apierror codes; wrapping with fmt.Errorf("%w: ...") is allowed and expected.
var (
	ErrProdutoNaoEncontrado = errors.New("produto não encontrado")
	ErrProdutoInativo       = errors.New("produto inativo")
	ErrClienteNaoEncontrado = errors.New("cliente não encontrado")
	ErrVendaNaoEncontrada   = errors.New("venda não encontrada")
	ErrVendaJaEstornada     = errors.New("venda já estornada")
	ErrEstoqueInsuficiente  = errors.New("estoque insuficiente")
	ErrSaldoInsuficiente    = errors.New("saldo insuficiente")
	ErrCreditoInsuficiente  = errors.New("crédito de loja insuficiente")
	ErrCaixaJaAberto        = errors.New("caixa já aberto para esta data")
	ErrCaixaNaoAberto       = errors.New("nenhum caixa aberto para esta data")
	ErrCaixaJaFechado       = errors.New("caixa já fechado")
	ErrBalancoEmAndamento   = errors.New("já existe um balanço em andamento")
	ErrBalancoNaoEncontrado = errors.New("balanço não encontrado")
	ErrBalancoConcluido     = errors.New("balanço já concluído")
	ErrItemForaDoBalanco    = errors.New("produto não faz parte deste balanço")
	ErrModalidadeInvalida   = errors.New("modalidade de pagamento inválida")
	ErrPagamentosInvalidos  = errors.New("sub-pagamentos inconsistentes com o total")
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
	ErrUsuarioJaExiste      = errors.New("nome de usuário já em uso")
	ErrFilialNaoEncontrada  = errors.New("filial não encontrada")
	ErrMetaNaoEncontrada    = errors.New("meta não encontrada para o período")
	ErrValeInvalido         = errors.New("valor do vale deve ser positivo")
)
