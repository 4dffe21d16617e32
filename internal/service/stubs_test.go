package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. The tx argument is always nil in unit tests (the
// services call fn(nil) when the repo DB is nil), so the stubs ignore it and
// apply the same conditional semantics the SQL statements would.

type stubProdutoRepo struct {
	// mu serializes the stock mutations the way the database's conditional
	// UPDATE would, so the concurrency tests exercise real interleavings.
	mu       sync.Mutex
	produtos map[uuid.UUID]*model.Produto
	// definidos records DefinirQuantidadeTx calls (balanço corrections).
	definidos map[uuid.UUID]int
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{
		produtos:  make(map[uuid.UUID]*model.Produto),
		definidos: make(map[uuid.UUID]int),
	}
}

func (r *stubProdutoRepo) add(codigo string, qtd int, preco float64) *model.Produto {
	p := &model.Produto{
		ID:         uuid.New(),
		FilialID:   uuid.New(),
		Codigo:     codigo,
		Descricao:  "Produto " + codigo,
		Quantidade: qtd,
		PrecoCusto: decimal.NewFromFloat(preco / 2),
		PrecoVenda: decimal.NewFromFloat(preco),
		Ativo:      true,
	}
	r.produtos[p.ID] = p
	return p
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProdutoRepo) FindByCodigo(_ context.Context, _ uuid.UUID, codigo string) (*model.Produto, error) {
	for _, p := range r.produtos {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProdutoRepo) ListByFilial(_ context.Context, _ uuid.UUID) ([]model.Produto, error) {
	out := make([]model.Produto, 0, len(r.produtos))
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) Desativar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.produtos[id]; ok {
		p.Ativo = false
	}
	return nil
}

func (r *stubProdutoRepo) DecrementarEstoqueCondTx(_ *gorm.DB, id uuid.UUID, qtd int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.produtos[id]
	if !ok || p.Quantidade < qtd {
		return 0, nil
	}
	p.Quantidade -= qtd
	return 1, nil
}

func (r *stubProdutoRepo) IncrementarEstoqueTx(_ *gorm.DB, id uuid.UUID, qtd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.produtos[id]; ok {
		p.Quantidade += qtd
	}
	return nil
}

func (r *stubProdutoRepo) DefinirQuantidadeTx(_ *gorm.DB, id uuid.UUID, qtd int) error {
	if p, ok := r.produtos[id]; ok {
		p.Quantidade = qtd
	}
	r.definidos[id] = qtd
	return nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) add(devedor, credito float64) *model.Cliente {
	c := &model.Cliente{
		ID:           uuid.New(),
		Nome:         "Cliente Teste",
		SaldoDevedor: decimal.NewFromFloat(devedor),
		CreditoLoja:  decimal.NewFromFloat(credito),
	}
	r.clientes[c.ID] = c
	return c
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) { return nil, nil }

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) AumentarSaldoDevedorTx(_ *gorm.DB, id uuid.UUID, valor decimal.Decimal) error {
	c := r.clientes[id]
	c.SaldoDevedor = c.SaldoDevedor.Add(valor)
	return nil
}

func (r *stubClienteRepo) ReduzirSaldoDevedorTx(_ *gorm.DB, id uuid.UUID, valor decimal.Decimal) error {
	c := r.clientes[id]
	c.SaldoDevedor = decimal.Max(c.SaldoDevedor.Sub(valor), decimal.Zero)
	return nil
}

func (r *stubClienteRepo) ReduzirSaldoDevedorCondTx(_ *gorm.DB, id uuid.UUID, valor decimal.Decimal) (int64, error) {
	c := r.clientes[id]
	if c.SaldoDevedor.LessThan(valor) {
		return 0, nil
	}
	c.SaldoDevedor = c.SaldoDevedor.Sub(valor)
	return 1, nil
}

func (r *stubClienteRepo) DebitarCreditoLojaCondTx(_ *gorm.DB, id uuid.UUID, valor decimal.Decimal) (int64, error) {
	c := r.clientes[id]
	if c.CreditoLoja.LessThan(valor) {
		return 0, nil
	}
	c.CreditoLoja = c.CreditoLoja.Sub(valor)
	return 1, nil
}

func (r *stubClienteRepo) RestaurarCreditoLojaTx(_ *gorm.DB, id uuid.UUID, valor decimal.Decimal, em time.Time) error {
	c := r.clientes[id]
	c.CreditoLoja = c.CreditoLoja.Add(valor)
	c.UltimoCreditoEm = &em
	return nil
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubVendaRepo struct {
	mu       sync.Mutex
	vendas   map[uuid.UUID]*model.Venda
	agregado *repository.VendasAgregadas
}

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{vendas: make(map[uuid.UUID]*model.Venda)}
}

func (r *stubVendaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venda) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vendas[v.ID] = v
	return nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVendaRepo) MarcarEstornadaTx(_ *gorm.DB, id uuid.UUID, actor uuid.UUID, em time.Time) (int64, error) {
	v, ok := r.vendas[id]
	if !ok || v.Estornada {
		return 0, nil
	}
	v.Estornada = true
	v.EstornadaEm = &em
	v.EstornadaPor = &actor
	return 1, nil
}

func (r *stubVendaRepo) ListDia(_ context.Context, filialID uuid.UUID, dia time.Time) ([]model.Venda, error) {
	out := []model.Venda{}
	for _, v := range r.vendas {
		if v.FilialID == filialID &&
			v.Data.Year() == dia.Year() && v.Data.YearDay() == dia.YearDay() {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVendaRepo) AgregadoVendedorPeriodo(_ context.Context, _ uuid.UUID, _, _ int) (*repository.VendasAgregadas, error) {
	if r.agregado != nil {
		return r.agregado, nil
	}
	return &repository.VendasAgregadas{Total: decimal.Zero}, nil
}

func (r *stubVendaRepo) List(_ context.Context, _ uuid.UUID, _ int) ([]model.Venda, error) {
	return nil, nil
}

func (r *stubVendaRepo) DB() *gorm.DB { return nil }

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubCaixaRepo struct {
	sessoes    map[string]*model.SessaoCaixa
	movimentos []model.MovimentoCaixa
	pagamentos []model.PagamentoDivida
	ultima     *model.SessaoCaixa
}

func newStubCaixaRepo() *stubCaixaRepo {
	return &stubCaixaRepo{sessoes: make(map[string]*model.SessaoCaixa)}
}

func diaKey(filialID uuid.UUID, dia time.Time) string {
	return filialID.String() + "|" + dia.Format("2006-01-02")
}

func (r *stubCaixaRepo) CreateSessao(_ context.Context, s *model.SessaoCaixa) error {
	key := diaKey(s.FilialID, s.Data)
	if _, ok := r.sessoes[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessoes[key] = s
	return nil
}

func (r *stubCaixaRepo) FindSessao(_ context.Context, filialID uuid.UUID, dia time.Time) (*model.SessaoCaixa, error) {
	s, ok := r.sessoes[diaKey(filialID, dia)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCaixaRepo) FindUltimaFechada(_ context.Context, _ uuid.UUID) (*model.SessaoCaixa, error) {
	if r.ultima == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.ultima, nil
}

func (r *stubCaixaRepo) UpdateSessao(_ context.Context, s *model.SessaoCaixa) error {
	r.sessoes[diaKey(s.FilialID, s.Data)] = s
	return nil
}

func (r *stubCaixaRepo) CreateMovimento(_ context.Context, m *model.MovimentoCaixa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubCaixaRepo) SumMovimentosDia(_ context.Context, filialID uuid.UUID, dia time.Time) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{
		"sangria":           decimal.Zero,
		"retirada_gerencia": decimal.Zero,
		"suprimento":        decimal.Zero,
	}
	for _, m := range r.movimentos {
		if m.FilialID == filialID && m.Data.Format("2006-01-02") == dia.Format("2006-01-02") {
			out[m.Tipo] = out[m.Tipo].Add(m.Valor)
		}
	}
	return out, nil
}

func (r *stubCaixaRepo) ListMovimentosDia(_ context.Context, _ uuid.UUID, _ time.Time) ([]model.MovimentoCaixa, error) {
	return r.movimentos, nil
}

func (r *stubCaixaRepo) CreatePagamentoDivida(_ context.Context, _ *gorm.DB, p *model.PagamentoDivida) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pagamentos = append(r.pagamentos, *p)
	return nil
}

func (r *stubCaixaRepo) SumPagamentosDiaPorMetodo(_ context.Context, filialID uuid.UUID, dia time.Time) (map[model.Modalidade]decimal.Decimal, error) {
	out := map[model.Modalidade]decimal.Decimal{}
	for _, p := range r.pagamentos {
		if p.FilialID == filialID && p.Data.Format("2006-01-02") == dia.Format("2006-01-02") {
			out[p.Metodo] = out[p.Metodo].Add(p.Valor)
		}
	}
	return out, nil
}

func (r *stubCaixaRepo) DB() *gorm.DB { return nil }

var _ repository.CaixaRepository = (*stubCaixaRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubBalancoRepo struct {
	balancos        map[uuid.UUID]*model.Balanco
	emAndamento     *model.Balanco
	ultimoConcluido *model.Balanco
}

func newStubBalancoRepo() *stubBalancoRepo {
	return &stubBalancoRepo{balancos: make(map[uuid.UUID]*model.Balanco)}
}

func (r *stubBalancoRepo) Create(_ context.Context, b *model.Balanco) error {
	if r.emAndamento != nil {
		return gorm.ErrDuplicatedKey
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.balancos[b.ID] = b
	r.emAndamento = b
	return nil
}

func (r *stubBalancoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Balanco, error) {
	b, ok := r.balancos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBalancoRepo) FindEmAndamento(_ context.Context, _ *uuid.UUID) (*model.Balanco, error) {
	if r.emAndamento == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.emAndamento, nil
}

func (r *stubBalancoRepo) FindUltimoConcluido(_ context.Context, _ uuid.UUID) (*model.Balanco, error) {
	if r.ultimoConcluido == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.ultimoConcluido, nil
}

func (r *stubBalancoRepo) FindItem(_ context.Context, balancoID, produtoID uuid.UUID) (*model.BalancoItem, error) {
	b, ok := r.balancos[balancoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range b.Items {
		if b.Items[i].ProdutoID == produtoID {
			return &b.Items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBalancoRepo) UpdateItem(_ context.Context, item *model.BalancoItem) error {
	for _, b := range r.balancos {
		for i := range b.Items {
			if b.Items[i].ProdutoID == item.ProdutoID {
				b.Items[i] = *item
			}
		}
	}
	return nil
}

func (r *stubBalancoRepo) ConcluirTx(_ *gorm.DB, id uuid.UUID, em time.Time) error {
	b := r.balancos[id]
	b.Status = "concluido"
	b.ConcluidoEm = &em
	if r.emAndamento != nil && r.emAndamento.ID == id {
		r.emAndamento = nil
	}
	return nil
}

func (r *stubBalancoRepo) DB() *gorm.DB { return nil }

var _ repository.BalancoRepository = (*stubBalancoRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubMetaRepo struct {
	metas  map[string]*model.Meta
	config *model.ConfiguracaoComissao
}

func newStubMetaRepo() *stubMetaRepo {
	return &stubMetaRepo{metas: make(map[string]*model.Meta)}
}

func metaKey(vendedorID uuid.UUID, mes, ano int) string {
	return fmt.Sprintf("%s|%d|%d", vendedorID, mes, ano)
}

func (r *stubMetaRepo) Create(_ context.Context, m *model.Meta) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.metas[metaKey(m.VendedorID, m.Mes, m.Ano)] = m
	return nil
}

func (r *stubMetaRepo) FindPeriodo(_ context.Context, vendedorID uuid.UUID, mes, ano int) (*model.Meta, error) {
	m, ok := r.metas[metaKey(vendedorID, mes, ano)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMetaRepo) List(_ context.Context, _, _ int) ([]model.Meta, error) { return nil, nil }

func (r *stubMetaRepo) FindConfigByFilial(_ context.Context, _ uuid.UUID) (*model.ConfiguracaoComissao, error) {
	if r.config == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.config, nil
}

func (r *stubMetaRepo) UpsertConfig(_ context.Context, cfg *model.ConfiguracaoComissao) error {
	r.config = cfg
	return nil
}

var _ repository.MetaRepository = (*stubMetaRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubValeRepo struct {
	total decimal.Decimal
}

func (r *stubValeRepo) Create(_ context.Context, _ *model.Vale) error { return nil }
func (r *stubValeRepo) ListPeriodo(_ context.Context, _ uuid.UUID, _, _ int) ([]model.Vale, error) {
	return nil, nil
}
func (r *stubValeRepo) SumPeriodo(_ context.Context, _ uuid.UUID, _, _ int) (decimal.Decimal, error) {
	return r.total, nil
}

var _ repository.ValeRepository = (*stubValeRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) add(role string, metaPessoal float64) *model.Usuario {
	u := &model.Usuario{
		ID:          uuid.New(),
		Username:    "vendedora-" + uuid.NewString()[:8],
		Nome:        "Vendedora Teste",
		Role:        role,
		MetaPessoal: decimal.NewFromFloat(metaPessoal),
		Ativo:       true,
	}
	r.usuarios[u.ID] = u
	return u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) ListVendedoresFilial(_ context.Context, _ uuid.UUID) ([]model.Usuario, error) {
	out := []model.Usuario{}
	for _, u := range r.usuarios {
		if u.Role == "vendedora" {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)
