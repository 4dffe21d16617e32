package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"
	"github.com/bernardesrodrigoc/explotrack/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EstornoResult summarizes what a reversal put back.
type EstornoResult struct {
	Venda             *model.Venda
	ItensRestaurados  int
	DividaReduzida    decimal.Decimal
	CreditoRestaurado decimal.Decimal
	// LogPendente is true when the audit-trail job could not be enqueued.
	// The estorno itself is already committed at that point.
	LogPendente bool
}

type VendaService interface {
	Registrar(ctx context.Context, vendedorID uuid.UUID, req dto.RegistrarVendaRequest) (*model.Venda, error)
	Estornar(ctx context.Context, vendaID, actorID uuid.UUID) (*EstornoResult, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	ListDia(ctx context.Context, filialID uuid.UUID, dia time.Time) ([]model.Venda, error)
	List(ctx context.Context, filialID uuid.UUID, limit int) ([]model.Venda, error)
	ResumoVendedoresDia(ctx context.Context, filialID uuid.UUID, dia time.Time) ([]dto.ResumoVendedorResponse, error)
}

type vendaService struct {
	vendaRepo   repository.VendaRepository
	produtoRepo repository.ProdutoRepository
	clienteRepo repository.ClienteRepository
	dispatcher  *worker.Dispatcher
	clock       infra.Clock
}

func NewVendaService(
	vendaRepo repository.VendaRepository,
	produtoRepo repository.ProdutoRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
	clock infra.Clock,
) VendaService {
	return &vendaService{
		vendaRepo:   vendaRepo,
		produtoRepo: produtoRepo,
		clienteRepo: clienteRepo,
		dispatcher:  dispatcher,
		clock:       clock,
	}
}

// Registrar commits a sale. Validation runs entirely before the transaction;
// inside the transaction only conditional single-statement updates run, so a
// zero-rows-affected result is the one and only stock/credit race signal.
func (s *vendaService) Registrar(ctx context.Context, vendedorID uuid.UUID, req dto.RegistrarVendaRequest) (*model.Venda, error) {
	modalidade, err := model.ParseModalidade(req.Modalidade)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModalidadeInvalida, req.Modalidade)
	}

	filialID, err := uuid.Parse(req.FilialID)
	if err != nil {
		return nil, fmt.Errorf("%w: filial_id", ErrFilialNaoEncontrada)
	}

	creditoUsado := req.CreditoUsado
	if creditoUsado.IsNegative() {
		return nil, fmt.Errorf("%w: credito_usado negativo", ErrPagamentosInvalidos)
	}

	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, ErrClienteNaoEncontrado
		}
		if _, err := s.clienteRepo.FindByID(ctx, id); err != nil {
			return nil, ErrClienteNaoEncontrado
		}
		clienteID = &id
	}

	// Fiado and store-credit spending both need an identified customer.
	if clienteID == nil && (modalidade == model.ModalidadeCredito || creditoUsado.IsPositive()) {
		return nil, fmt.Errorf("%w: venda fiado ou com crédito exige cliente", ErrClienteNaoEncontrado)
	}

	pagamentos, err := buildSubPagamentos(modalidade, req, creditoUsado)
	if err != nil {
		return nil, err
	}

	// Snapshot phase: resolve every product and freeze its price/cost. Stock
	// is NOT checked here; the conditional decrement inside the tx is the only
	// authoritative check.
	items := make([]model.VendaItem, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := uuid.Parse(it.ProdutoID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProdutoNaoEncontrado, it.ProdutoID)
		}
		p, err := s.produtoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProdutoNaoEncontrado, it.ProdutoID)
		}
		if !p.Ativo {
			return nil, fmt.Errorf("%w: %s", ErrProdutoInativo, p.Codigo)
		}
		qtd := decimal.NewFromInt(int64(it.Quantidade))
		items = append(items, model.VendaItem{
			ProdutoID:  p.ID,
			Codigo:     p.Codigo,
			Descricao:  p.Descricao,
			Quantidade: it.Quantidade,
			PrecoVenda: p.PrecoVenda,
			PrecoCusto: p.PrecoCusto,
			Subtotal:   p.PrecoVenda.Mul(qtd),
		})
	}

	venda := &model.Venda{
		FilialID:     filialID,
		VendedorID:   vendedorID,
		ClienteID:    clienteID,
		Total:        req.Total,
		Desconto:     req.Desconto,
		Modalidade:   modalidade,
		Parcelas:     maxInt(req.Parcelas, 1),
		CreditoUsado: creditoUsado,
		Troca:        req.Troca,
		Observacoes:  req.Observacoes,
		Data:         s.canonicalData(req.Data),
		Items:        items,
		Pagamentos:   pagamentos,
	}

	err = runTx(s.vendaRepo.DB(), func(tx *gorm.DB) error {
		for _, it := range venda.Items {
			if venda.Troca {
				// Exchange: the customer hands the items back, stock goes up.
				if err := s.produtoRepo.IncrementarEstoqueTx(tx, it.ProdutoID, it.Quantidade); err != nil {
					return err
				}
				continue
			}
			rows, err := s.produtoRepo.DecrementarEstoqueCondTx(tx, it.ProdutoID, it.Quantidade)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("%w: %s", ErrEstoqueInsuficiente, it.Codigo)
			}
		}

		if creditoUsado.IsPositive() {
			rows, err := s.clienteRepo.DebitarCreditoLojaCondTx(tx, *clienteID, creditoUsado)
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrCreditoInsuficiente
			}
		}

		if venda.Modalidade == model.ModalidadeCredito {
			fiado := venda.Total.Sub(creditoUsado)
			if fiado.IsPositive() {
				if err := s.clienteRepo.AumentarSaldoDevedorTx(tx, *clienteID, fiado); err != nil {
					return err
				}
			}
		}

		return s.vendaRepo.Create(ctx, tx, venda)
	})
	if err != nil {
		return nil, err
	}

	s.dispatchRecibo(ctx, venda, req.ClienteEmail)
	return venda, nil
}

// Estornar reverses a committed sale exactly once. The estornada flag flip is
// a conditional update, so two concurrent estornos of the same sale cannot
// both restore stock.
func (s *vendaService) Estornar(ctx context.Context, vendaID, actorID uuid.UUID) (*EstornoResult, error) {
	venda, err := s.vendaRepo.FindByID(ctx, vendaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendaNaoEncontrada
		}
		return nil, err
	}
	if venda.Estornada {
		return nil, ErrVendaJaEstornada
	}

	em := s.clock.Now()
	res := &EstornoResult{
		Venda:             venda,
		DividaReduzida:    decimal.Zero,
		CreditoRestaurado: decimal.Zero,
	}

	err = runTx(s.vendaRepo.DB(), func(tx *gorm.DB) error {
		rows, err := s.vendaRepo.MarcarEstornadaTx(tx, vendaID, actorID, em)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrVendaJaEstornada
		}

		// Stock always comes back on estorno, troca included. The caixa never
		// re-sells estornada items, so returning them is the safe direction.
		for _, it := range venda.Items {
			if err := s.produtoRepo.IncrementarEstoqueTx(tx, it.ProdutoID, it.Quantidade); err != nil {
				return err
			}
			res.ItensRestaurados += it.Quantidade
		}

		if venda.Modalidade == model.ModalidadeCredito && venda.ClienteID != nil {
			fiado := venda.Total.Sub(venda.CreditoUsado)
			if fiado.IsPositive() {
				// Floored at zero: debt payments since the sale may have
				// already cleared part of it.
				if err := s.clienteRepo.ReduzirSaldoDevedorTx(tx, *venda.ClienteID, fiado); err != nil {
					return err
				}
				res.DividaReduzida = fiado
			}
		}

		if venda.CreditoUsado.IsPositive() && venda.ClienteID != nil {
			if err := s.clienteRepo.RestaurarCreditoLojaTx(tx, *venda.ClienteID, venda.CreditoUsado, em); err != nil {
				return err
			}
			res.CreditoRestaurado = venda.CreditoUsado
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	venda.Estornada = true
	venda.EstornadaEm = &em
	venda.EstornadaPor = &actorID

	res.LogPendente = !s.dispatchLogEstorno(ctx, venda, actorID, res, em)
	return res, nil
}

func (s *vendaService) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	v, err := s.vendaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendaNaoEncontrada
		}
		return nil, err
	}
	return v, nil
}

func (s *vendaService) ListDia(ctx context.Context, filialID uuid.UUID, dia time.Time) ([]model.Venda, error) {
	return s.vendaRepo.ListDia(ctx, filialID, dia)
}

func (s *vendaService) List(ctx context.Context, filialID uuid.UUID, limit int) ([]model.Venda, error) {
	return s.vendaRepo.List(ctx, filialID, limit)
}

// ResumoVendedoresDia groups the day's effective sales by vendedora for the
// dashboard, best seller first. Estornadas and trocas stay out, like in the
// caixa snapshot.
func (s *vendaService) ResumoVendedoresDia(ctx context.Context, filialID uuid.UUID, dia time.Time) ([]dto.ResumoVendedorResponse, error) {
	vendas, err := s.vendaRepo.ListDia(ctx, filialID, dia)
	if err != nil {
		return nil, err
	}

	porVendedor := make(map[uuid.UUID]*dto.ResumoVendedorResponse)
	for _, v := range vendas {
		if v.Estornada || v.Troca {
			continue
		}
		r, ok := porVendedor[v.VendedorID]
		if !ok {
			r = &dto.ResumoVendedorResponse{VendedorID: v.VendedorID.String(), Total: decimal.Zero}
			porVendedor[v.VendedorID] = r
		}
		r.NumVendas++
		r.Total = r.Total.Add(v.Total)
		for _, it := range v.Items {
			r.Pecas += it.Quantidade
		}
	}

	out := make([]dto.ResumoVendedorResponse, 0, len(porVendedor))
	for _, r := range porVendedor {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

// canonicalData pins backdated sales to noon of the requested day so that the
// timestamp can never straddle a day-bucket boundary regardless of timezone
// arithmetic. Same-day (or absent) dates keep the real wall-clock instant.
func (s *vendaService) canonicalData(reqData *string) time.Time {
	now := s.clock.Now()
	if reqData == nil || *reqData == "" {
		return now
	}
	d, err := time.ParseInLocation("2006-01-02", *reqData, s.clock.Location())
	if err != nil {
		return now
	}
	if d.Year() == now.Year() && d.Month() == now.Month() && d.Day() == now.Day() {
		return now
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, s.clock.Location())
}

// buildSubPagamentos normalizes the payment legs. Misto requires explicit
// legs covering total − credito_usado exactly; every other modality gets a
// single implicit leg.
func buildSubPagamentos(modalidade model.Modalidade, req dto.RegistrarVendaRequest, creditoUsado decimal.Decimal) ([]model.SubPagamento, error) {
	aPagar := req.Total.Sub(creditoUsado)
	if aPagar.IsNegative() {
		return nil, fmt.Errorf("%w: crédito usado maior que o total", ErrPagamentosInvalidos)
	}

	if modalidade != model.ModalidadeMisto {
		if len(req.Pagamentos) > 0 {
			return nil, fmt.Errorf("%w: pagamentos só são aceitos na modalidade Misto", ErrPagamentosInvalidos)
		}
		return []model.SubPagamento{{
			Modalidade: modalidade,
			Valor:      aPagar,
			Parcelas:   maxInt(req.Parcelas, 1),
		}}, nil
	}

	if len(req.Pagamentos) < 2 {
		return nil, fmt.Errorf("%w: Misto exige pelo menos dois pagamentos", ErrPagamentosInvalidos)
	}

	soma := decimal.Zero
	legs := make([]model.SubPagamento, 0, len(req.Pagamentos))
	for _, p := range req.Pagamentos {
		m, err := model.ParseModalidadeSimples(p.Modalidade)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrModalidadeInvalida, p.Modalidade)
		}
		if !p.Valor.IsPositive() {
			return nil, fmt.Errorf("%w: valor de pagamento não positivo", ErrPagamentosInvalidos)
		}
		soma = soma.Add(p.Valor)
		legs = append(legs, model.SubPagamento{
			Modalidade: m,
			Valor:      p.Valor,
			Parcelas:   maxInt(p.Parcelas, 1),
		})
	}
	if !soma.Equal(aPagar) {
		return nil, fmt.Errorf("%w: soma %s ≠ a pagar %s", ErrPagamentosInvalidos, soma, aPagar)
	}
	return legs, nil
}

// dispatchRecibo enqueues the receipt job fire-and-forget. A dead queue never
// fails the sale.
func (s *vendaService) dispatchRecibo(ctx context.Context, venda *model.Venda, email *string) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.ReciboPayload{VendaID: venda.ID.String(), ClienteEmail: email}
	if err := s.dispatcher.EnqueueRecibo(ctx, payload); err != nil {
		log.Warn().Err(err).Str("venda_id", venda.ID.String()).Msg("falha ao enfileirar recibo")
	}
}

// dispatchLogEstorno enqueues the reversal audit record; returns false when
// the enqueue failed, which the caller surfaces as log_pendente.
func (s *vendaService) dispatchLogEstorno(ctx context.Context, venda *model.Venda, actorID uuid.UUID, res *EstornoResult, em time.Time) bool {
	if s.dispatcher == nil {
		return true
	}
	itens := ""
	for i, it := range venda.Items {
		if i > 0 {
			itens += ","
		}
		itens += fmt.Sprintf("%s:%d", it.Codigo, it.Quantidade)
	}
	payload := worker.LogEstornoPayload{
		VendaID:           venda.ID.String(),
		ActorID:           actorID.String(),
		ItensRestaurados:  itens,
		DividaReduzida:    res.DividaReduzida.String(),
		CreditoRestaurado: res.CreditoRestaurado.String(),
		Data:              em.Format(time.RFC3339),
	}
	if err := s.dispatcher.EnqueueLogEstorno(ctx, payload); err != nil {
		log.Error().Err(err).Str("venda_id", venda.ID.String()).Msg("falha ao enfileirar log de estorno")
		return false
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
