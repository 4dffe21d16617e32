package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var toleranciaPadrao = decimal.NewFromFloat(0.50)

func newCaixaService(cx *stubCaixaRepo, vr *stubVendaRepo, cr *stubClienteRepo) service.CaixaService {
	return service.NewCaixaService(cx, vr, cr, fixedClock(), toleranciaPadrao)
}

func sessaoFechada(filialID uuid.UUID, abertura, dinheiro, suprimentos, sangrias, retiradas float64) *model.SessaoCaixa {
	return &model.SessaoCaixa{
		ID:                uuid.New(),
		FilialID:          filialID,
		OperadorID:        uuid.New(),
		SaldoAbertura:     decimal.NewFromFloat(abertura),
		TotalDinheiro:     decimal.NewFromFloat(dinheiro),
		Suprimentos:       decimal.NewFromFloat(suprimentos),
		Sangrias:          decimal.NewFromFloat(sangrias),
		RetiradasGerencia: decimal.NewFromFloat(retiradas),
		Estado:            "fechada",
	}
}

func TestAbrirCaixaPrimeiraSessao(t *testing.T) {
	cx := newStubCaixaRepo()
	svc := newCaixaService(cx, newStubVendaRepo(), newStubClienteRepo())
	filialID := uuid.New()

	sessao, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{
		FilialID:      filialID.String(),
		SaldoAbertura: decimal.NewFromFloat(100.00),
	})
	require.NoError(t, err)

	assert.Equal(t, "aberta", sessao.Estado)
	assert.False(t, sessao.Inconsistente)
	assert.Nil(t, sessao.Delta)
}

func TestAbrirCaixaDivergenciaMarcaInconsistente(t *testing.T) {
	cx := newStubCaixaRepo()
	filialID := uuid.New()
	// esperado = 100 + 200 + 50 − 30 − 20 = 300
	cx.ultima = sessaoFechada(filialID, 100, 200, 50, 30, 20)
	svc := newCaixaService(cx, newStubVendaRepo(), newStubClienteRepo())

	sessao, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{
		FilialID:      filialID.String(),
		SaldoAbertura: decimal.NewFromFloat(250.00),
	})
	require.NoError(t, err, "divergência marca, nunca bloqueia")

	assert.True(t, sessao.Inconsistente)
	require.NotNil(t, sessao.Delta)
	assert.True(t, sessao.Delta.Equal(decimal.NewFromFloat(-50.00)), "delta = %s", sessao.Delta)
}

func TestAbrirCaixaDentroDaTolerancia(t *testing.T) {
	cx := newStubCaixaRepo()
	filialID := uuid.New()
	cx.ultima = sessaoFechada(filialID, 100, 200, 50, 30, 20)
	svc := newCaixaService(cx, newStubVendaRepo(), newStubClienteRepo())

	sessao, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{
		FilialID:      filialID.String(),
		SaldoAbertura: decimal.NewFromFloat(299.60),
	})
	require.NoError(t, err)

	assert.False(t, sessao.Inconsistente, "|delta| 0.40 está dentro da tolerância 0.50")
	assert.Nil(t, sessao.Delta)
}

func TestAbrirCaixaDuplicado(t *testing.T) {
	cx := newStubCaixaRepo()
	svc := newCaixaService(cx, newStubVendaRepo(), newStubClienteRepo())
	filialID := uuid.New()

	req := dto.AbrirCaixaRequest{FilialID: filialID.String(), SaldoAbertura: decimal.NewFromFloat(100)}
	_, err := svc.Abrir(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	_, err = svc.Abrir(context.Background(), uuid.New(), req)
	require.ErrorIs(t, err, service.ErrCaixaJaAberto)
}

// caixaRepoCorrida simula dois terminais abrindo ao mesmo tempo: a leitura
// prévia nunca enxerga a sessão do outro terminal, só o índice único pega a
// colisão no insert.
type caixaRepoCorrida struct{ *stubCaixaRepo }

func (r *caixaRepoCorrida) FindSessao(context.Context, uuid.UUID, time.Time) (*model.SessaoCaixa, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestAbrirCaixaCorridaResolvePeloIndiceUnico(t *testing.T) {
	cx := &caixaRepoCorrida{newStubCaixaRepo()}
	svc := service.NewCaixaService(cx, newStubVendaRepo(), newStubClienteRepo(), fixedClock(), toleranciaPadrao)
	filialID := uuid.New()

	req := dto.AbrirCaixaRequest{FilialID: filialID.String(), SaldoAbertura: decimal.NewFromFloat(100)}
	_, err := svc.Abrir(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	// O insert devolve ErrDuplicatedKey e o serviço traduz para o sentinela.
	_, err = svc.Abrir(context.Background(), uuid.New(), req)
	require.ErrorIs(t, err, service.ErrCaixaJaAberto)
}

func TestFecharCaixaConsolidaMovimentos(t *testing.T) {
	cx := newStubCaixaRepo()
	svc := newCaixaService(cx, newStubVendaRepo(), newStubClienteRepo())
	filialID := uuid.New()

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{
		FilialID: filialID.String(), SaldoAbertura: decimal.NewFromFloat(100),
	})
	require.NoError(t, err)

	for _, m := range []dto.MovimentoCaixaRequest{
		{FilialID: filialID.String(), Tipo: "sangria", Valor: decimal.NewFromFloat(80), Motivo: "depósito bancário"},
		{FilialID: filialID.String(), Tipo: "sangria", Valor: decimal.NewFromFloat(20), Motivo: "troco excedente"},
		{FilialID: filialID.String(), Tipo: "suprimento", Valor: decimal.NewFromFloat(50), Motivo: "troco da matriz"},
		{FilialID: filialID.String(), Tipo: "retirada_gerencia", Valor: decimal.NewFromFloat(30), Motivo: "compra de material"},
	} {
		_, err := svc.RegistrarMovimento(context.Background(), m)
		require.NoError(t, err)
	}

	sessao, err := svc.Fechar(context.Background(), dto.FecharCaixaRequest{
		FilialID:      filialID.String(),
		TotalDinheiro: decimal.NewFromFloat(400),
		TotalPix:      decimal.NewFromFloat(150),
		TotalCartao:   decimal.NewFromFloat(100),
		TotalCredito:  decimal.NewFromFloat(50),
		NumVendas:     12,
	})
	require.NoError(t, err)

	assert.Equal(t, "fechada", sessao.Estado)
	assert.True(t, sessao.Sangrias.Equal(decimal.NewFromFloat(100)))
	assert.True(t, sessao.Suprimentos.Equal(decimal.NewFromFloat(50)))
	assert.True(t, sessao.RetiradasGerencia.Equal(decimal.NewFromFloat(30)))
	assert.True(t, sessao.TotalGeral.Equal(decimal.NewFromFloat(700)))
	require.NotNil(t, sessao.FechadaEm)
}

func TestFecharCaixaSemSessao(t *testing.T) {
	svc := newCaixaService(newStubCaixaRepo(), newStubVendaRepo(), newStubClienteRepo())

	_, err := svc.Fechar(context.Background(), dto.FecharCaixaRequest{FilialID: uuid.NewString()})
	require.ErrorIs(t, err, service.ErrCaixaNaoAberto)
}

func TestFecharCaixaDuasVezes(t *testing.T) {
	cx := newStubCaixaRepo()
	svc := newCaixaService(cx, newStubVendaRepo(), newStubClienteRepo())
	filialID := uuid.New()

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{
		FilialID: filialID.String(), SaldoAbertura: decimal.NewFromFloat(100),
	})
	require.NoError(t, err)

	req := dto.FecharCaixaRequest{FilialID: filialID.String()}
	_, err = svc.Fechar(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Fechar(context.Background(), req)
	require.ErrorIs(t, err, service.ErrCaixaJaFechado)
}

func TestMovimentoValorNaoPositivo(t *testing.T) {
	svc := newCaixaService(newStubCaixaRepo(), newStubVendaRepo(), newStubClienteRepo())

	_, err := svc.RegistrarMovimento(context.Background(), dto.MovimentoCaixaRequest{
		FilialID: uuid.NewString(), Tipo: "sangria", Valor: decimal.Zero, Motivo: "nada",
	})
	require.ErrorIs(t, err, service.ErrPagamentosInvalidos)
}

func TestSnapshotSeparaModalidadesEIgnoraEstornadasETrocas(t *testing.T) {
	cx := newStubCaixaRepo()
	vr := newStubVendaRepo()
	cr := newStubClienteRepo()
	svc := newCaixaService(cx, vr, cr)
	filialID := uuid.New()
	hoje := fixedClock().Instant

	// Misto: 60 em dinheiro + 40 no cartão.
	require.NoError(t, vr.Create(context.Background(), nil, &model.Venda{
		FilialID:   filialID,
		Data:       hoje,
		Modalidade: model.ModalidadeMisto,
		Total:      decimal.NewFromFloat(100),
		Pagamentos: []model.SubPagamento{
			{Modalidade: model.ModalidadeDinheiro, Valor: decimal.NewFromFloat(60)},
			{Modalidade: model.ModalidadeCartao, Valor: decimal.NewFromFloat(40)},
		},
	}))
	// Estornada: não conta para nada.
	require.NoError(t, vr.Create(context.Background(), nil, &model.Venda{
		FilialID:   filialID,
		Data:       hoje,
		Modalidade: model.ModalidadeDinheiro,
		Total:      decimal.NewFromFloat(500),
		Estornada:  true,
		Pagamentos: []model.SubPagamento{
			{Modalidade: model.ModalidadeDinheiro, Valor: decimal.NewFromFloat(500)},
		},
	}))
	// Troca: movimenta estoque, não movimenta o caixa.
	require.NoError(t, vr.Create(context.Background(), nil, &model.Venda{
		FilialID:   filialID,
		Data:       hoje,
		Modalidade: model.ModalidadeDinheiro,
		Total:      decimal.Zero,
		Troca:      true,
		Pagamentos: []model.SubPagamento{
			{Modalidade: model.ModalidadeDinheiro, Valor: decimal.Zero},
		},
	}))
	// Pagamento de dívida em Pix entra no balde Pix e no total de pagamentos.
	require.NoError(t, cx.CreatePagamentoDivida(context.Background(), nil, &model.PagamentoDivida{
		ClienteID: uuid.New(),
		FilialID:  filialID,
		Valor:     decimal.NewFromFloat(25),
		Metodo:    model.ModalidadePix,
		Data:      hoje,
	}))

	snap, err := svc.Snapshot(context.Background(), filialID, hoje)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.NumVendas)
	assert.True(t, snap.TotalDinheiro.Equal(decimal.NewFromFloat(60)))
	assert.True(t, snap.TotalCartao.Equal(decimal.NewFromFloat(40)))
	assert.True(t, snap.TotalPix.Equal(decimal.NewFromFloat(25)))
	assert.True(t, snap.TotalGeral.Equal(decimal.NewFromFloat(125)))
	assert.True(t, snap.PagamentosDivida.Equal(decimal.NewFromFloat(25)))
}

func TestPagamentoDividaReduzSaldo(t *testing.T) {
	cx := newStubCaixaRepo()
	cr := newStubClienteRepo()
	svc := newCaixaService(cx, newStubVendaRepo(), cr)
	cliente := cr.add(30.00, 0)

	pagamento, restante, err := svc.RegistrarPagamentoDivida(context.Background(), dto.PagamentoDividaRequest{
		ClienteID: cliente.ID.String(),
		FilialID:  uuid.NewString(),
		Valor:     decimal.NewFromFloat(20.00),
		Metodo:    "Pix",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ModalidadePix, pagamento.Metodo)
	assert.True(t, restante.Equal(decimal.NewFromFloat(10.00)))
	assert.True(t, cliente.SaldoDevedor.Equal(decimal.NewFromFloat(10.00)))
}

func TestPagamentoDividaAcimaDoSaldo(t *testing.T) {
	cx := newStubCaixaRepo()
	cr := newStubClienteRepo()
	svc := newCaixaService(cx, newStubVendaRepo(), cr)
	cliente := cr.add(30.00, 0)

	_, _, err := svc.RegistrarPagamentoDivida(context.Background(), dto.PagamentoDividaRequest{
		ClienteID: cliente.ID.String(),
		FilialID:  uuid.NewString(),
		Valor:     decimal.NewFromFloat(50.00),
		Metodo:    "Dinheiro",
	})
	require.ErrorIs(t, err, service.ErrSaldoInsuficiente)
	assert.True(t, cliente.SaldoDevedor.Equal(decimal.NewFromFloat(30.00)))
	assert.Empty(t, cx.pagamentos)
}

func TestPagamentoDividaFiadoNaoAceito(t *testing.T) {
	cr := newStubClienteRepo()
	svc := newCaixaService(newStubCaixaRepo(), newStubVendaRepo(), cr)
	cliente := cr.add(30.00, 0)

	_, _, err := svc.RegistrarPagamentoDivida(context.Background(), dto.PagamentoDividaRequest{
		ClienteID: cliente.ID.String(),
		FilialID:  uuid.NewString(),
		Valor:     decimal.NewFromFloat(10.00),
		Metodo:    "Credito",
	})
	require.ErrorIs(t, err, service.ErrModalidadeInvalida)
}
