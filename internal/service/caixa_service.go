package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Snapshot is the read-side projection of a filial's day. It is recomputed
// from the underlying ledgers on every call and never persisted, so it cannot
// drift from the vendas / movimentos / pagamentos it derives from.
type Snapshot struct {
	FilialID      uuid.UUID
	Dia           time.Time
	TotalDinheiro decimal.Decimal
	TotalPix      decimal.Decimal
	TotalCartao   decimal.Decimal
	TotalCredito  decimal.Decimal
	TotalGeral    decimal.Decimal
	NumVendas     int

	Sangrias          decimal.Decimal
	Suprimentos       decimal.Decimal
	RetiradasGerencia decimal.Decimal

	PagamentosDivida decimal.Decimal
}

type CaixaService interface {
	Abrir(ctx context.Context, operadorID uuid.UUID, req dto.AbrirCaixaRequest) (*model.SessaoCaixa, error)
	RegistrarMovimento(ctx context.Context, req dto.MovimentoCaixaRequest) (*model.MovimentoCaixa, error)
	Fechar(ctx context.Context, req dto.FecharCaixaRequest) (*model.SessaoCaixa, error)
	Snapshot(ctx context.Context, filialID uuid.UUID, dia time.Time) (*Snapshot, error)
	SessaoDoDia(ctx context.Context, filialID uuid.UUID, dia time.Time) (*model.SessaoCaixa, error)
	RegistrarPagamentoDivida(ctx context.Context, req dto.PagamentoDividaRequest) (*model.PagamentoDivida, decimal.Decimal, error)
}

type caixaService struct {
	caixaRepo   repository.CaixaRepository
	vendaRepo   repository.VendaRepository
	clienteRepo repository.ClienteRepository
	clock       infra.Clock
	// tolerancia is the max |esperado − declarado| before the opening is
	// flagged inconsistent. The flag never blocks the opening.
	tolerancia decimal.Decimal
}

func NewCaixaService(
	caixaRepo repository.CaixaRepository,
	vendaRepo repository.VendaRepository,
	clienteRepo repository.ClienteRepository,
	clock infra.Clock,
	tolerancia decimal.Decimal,
) CaixaService {
	return &caixaService{
		caixaRepo:   caixaRepo,
		vendaRepo:   vendaRepo,
		clienteRepo: clienteRepo,
		clock:       clock,
		tolerancia:  tolerancia,
	}
}

// Abrir opens today's session for the filial. The declared opening balance is
// reconciled against the expected drawer carried over from the last closed
// session:
//
//	esperado = abertura + dinheiro + suprimentos − sangrias − retiradas
//
// A divergence beyond the tolerance flags the session, it never rejects it.
// Uniqueness of (filial, dia) is enforced by the database index, so a race
// between two terminals resolves to exactly one open session.
func (s *caixaService) Abrir(ctx context.Context, operadorID uuid.UUID, req dto.AbrirCaixaRequest) (*model.SessaoCaixa, error) {
	filialID, err := uuid.Parse(req.FilialID)
	if err != nil {
		return nil, ErrFilialNaoEncontrada
	}

	hoje := s.clock.Now()
	if existente, err := s.caixaRepo.FindSessao(ctx, filialID, hoje); err == nil && existente != nil {
		return nil, ErrCaixaJaAberto
	}

	sessao := &model.SessaoCaixa{
		FilialID:      filialID,
		Data:          time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, hoje.Location()),
		OperadorID:    operadorID,
		SaldoAbertura: req.SaldoAbertura,
		AbertaEm:      hoje,
		Estado:        "aberta",
	}

	ultima, err := s.caixaRepo.FindUltimaFechada(ctx, filialID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if ultima != nil {
		esperado := ultima.SaldoAbertura.
			Add(ultima.TotalDinheiro).
			Add(ultima.Suprimentos).
			Sub(ultima.Sangrias).
			Sub(ultima.RetiradasGerencia)
		delta := req.SaldoAbertura.Sub(esperado)
		if delta.Abs().GreaterThan(s.tolerancia) {
			sessao.Inconsistente = true
			sessao.Delta = &delta
		}
	}

	if err := s.caixaRepo.CreateSessao(ctx, sessao); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCaixaJaAberto
		}
		return nil, err
	}
	return sessao, nil
}

// RegistrarMovimento appends a drawer event. Movements are valid even before
// the day's session is formally opened, so a sangria at 07:55 is never lost.
func (s *caixaService) RegistrarMovimento(ctx context.Context, req dto.MovimentoCaixaRequest) (*model.MovimentoCaixa, error) {
	filialID, err := uuid.Parse(req.FilialID)
	if err != nil {
		return nil, ErrFilialNaoEncontrada
	}
	if !req.Valor.IsPositive() {
		return nil, fmt.Errorf("%w: valor do movimento deve ser positivo", ErrPagamentosInvalidos)
	}

	mov := &model.MovimentoCaixa{
		FilialID: filialID,
		Tipo:     req.Tipo,
		Valor:    req.Valor,
		Motivo:   req.Motivo,
		Data:     s.clock.Now(),
	}
	if err := s.caixaRepo.CreateMovimento(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// Fechar seals today's session with the operator-declared totals and folds in
// the day's movement sums. The opening inconsistency flag and delta survive
// untouched.
func (s *caixaService) Fechar(ctx context.Context, req dto.FecharCaixaRequest) (*model.SessaoCaixa, error) {
	filialID, err := uuid.Parse(req.FilialID)
	if err != nil {
		return nil, ErrFilialNaoEncontrada
	}

	hoje := s.clock.Now()
	sessao, err := s.caixaRepo.FindSessao(ctx, filialID, hoje)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaixaNaoAberto
		}
		return nil, err
	}
	if sessao.Estado == "fechada" {
		return nil, ErrCaixaJaFechado
	}

	movs, err := s.caixaRepo.SumMovimentosDia(ctx, filialID, hoje)
	if err != nil {
		return nil, err
	}

	sessao.TotalDinheiro = req.TotalDinheiro
	sessao.TotalPix = req.TotalPix
	sessao.TotalCartao = req.TotalCartao
	sessao.TotalCredito = req.TotalCredito
	sessao.TotalGeral = req.TotalDinheiro.Add(req.TotalPix).Add(req.TotalCartao).Add(req.TotalCredito)
	sessao.NumVendas = req.NumVendas
	sessao.Sangrias = movs["sangria"]
	sessao.Suprimentos = movs["suprimento"]
	sessao.RetiradasGerencia = movs["retirada_gerencia"]
	sessao.Observacoes = req.Observacoes
	sessao.Estado = "fechada"
	sessao.FechadaEm = &hoje

	if err := s.caixaRepo.UpdateSessao(ctx, sessao); err != nil {
		return nil, err
	}
	return sessao, nil
}

// Snapshot recomputes the day's totals from scratch. Estornadas and trocas
// are skipped entirely; Misto sales contribute each leg to its own bucket;
// fiado debt payments land in the bucket of the metodo they were paid with.
func (s *caixaService) Snapshot(ctx context.Context, filialID uuid.UUID, dia time.Time) (*Snapshot, error) {
	vendas, err := s.vendaRepo.ListDia(ctx, filialID, dia)
	if err != nil {
		return nil, err
	}
	movs, err := s.caixaRepo.SumMovimentosDia(ctx, filialID, dia)
	if err != nil {
		return nil, err
	}
	pagamentos, err := s.caixaRepo.SumPagamentosDiaPorMetodo(ctx, filialID, dia)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		FilialID:          filialID,
		Dia:               dia,
		TotalDinheiro:     decimal.Zero,
		TotalPix:          decimal.Zero,
		TotalCartao:       decimal.Zero,
		TotalCredito:      decimal.Zero,
		TotalGeral:        decimal.Zero,
		Sangrias:          movs["sangria"],
		Suprimentos:       movs["suprimento"],
		RetiradasGerencia: movs["retirada_gerencia"],
		PagamentosDivida:  decimal.Zero,
	}

	for _, v := range vendas {
		if v.Estornada || v.Troca {
			continue
		}
		snap.NumVendas++
		for _, p := range v.Pagamentos {
			snap.addBucket(p.Modalidade, p.Valor)
		}
	}

	for metodo, valor := range pagamentos {
		snap.addBucket(metodo, valor)
		snap.PagamentosDivida = snap.PagamentosDivida.Add(valor)
	}

	snap.TotalGeral = snap.TotalDinheiro.Add(snap.TotalPix).Add(snap.TotalCartao).Add(snap.TotalCredito)
	return snap, nil
}

func (sn *Snapshot) addBucket(m model.Modalidade, valor decimal.Decimal) {
	switch m {
	case model.ModalidadeDinheiro:
		sn.TotalDinheiro = sn.TotalDinheiro.Add(valor)
	case model.ModalidadePix:
		sn.TotalPix = sn.TotalPix.Add(valor)
	case model.ModalidadeCartao:
		sn.TotalCartao = sn.TotalCartao.Add(valor)
	case model.ModalidadeCredito:
		sn.TotalCredito = sn.TotalCredito.Add(valor)
	}
}

func (s *caixaService) SessaoDoDia(ctx context.Context, filialID uuid.UUID, dia time.Time) (*model.SessaoCaixa, error) {
	sessao, err := s.caixaRepo.FindSessao(ctx, filialID, dia)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaixaNaoAberto
		}
		return nil, err
	}
	return sessao, nil
}

// RegistrarPagamentoDivida settles part of a customer's fiado debt. The debt
// decrement is conditional on the full amount being owed, so overpaying is
// rejected instead of driving the balance negative.
func (s *caixaService) RegistrarPagamentoDivida(ctx context.Context, req dto.PagamentoDividaRequest) (*model.PagamentoDivida, decimal.Decimal, error) {
	metodo, err := model.ParseModalidadeSimples(req.Metodo)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrModalidadeInvalida, req.Metodo)
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, decimal.Zero, ErrClienteNaoEncontrado
	}
	filialID, err := uuid.Parse(req.FilialID)
	if err != nil {
		return nil, decimal.Zero, ErrFilialNaoEncontrada
	}
	if !req.Valor.IsPositive() {
		return nil, decimal.Zero, fmt.Errorf("%w: valor do pagamento deve ser positivo", ErrPagamentosInvalidos)
	}

	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, decimal.Zero, ErrClienteNaoEncontrado
	}

	pagamento := &model.PagamentoDivida{
		ClienteID: clienteID,
		FilialID:  filialID,
		Valor:     req.Valor,
		Metodo:    metodo,
		Data:      s.clock.Now(),
	}

	err = runTx(s.clienteRepo.DB(), func(tx *gorm.DB) error {
		rows, err := s.clienteRepo.ReduzirSaldoDevedorCondTx(tx, clienteID, req.Valor)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrSaldoInsuficiente
		}
		return s.caixaRepo.CreatePagamentoDivida(ctx, tx, pagamento)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	restante := decimal.Zero
	if cliente, err := s.clienteRepo.FindByID(ctx, clienteID); err == nil {
		restante = cliente.SaldoDevedor
	}
	return pagamento, restante, nil
}
