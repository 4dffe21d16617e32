package handler

import (
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/service"
)

func toVendaResponse(v *model.Venda) dto.VendaResponse {
	items := make([]dto.ItemVendaResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, dto.ItemVendaResponse{
			ProdutoID:  it.ProdutoID.String(),
			Codigo:     it.Codigo,
			Descricao:  it.Descricao,
			Quantidade: it.Quantidade,
			PrecoVenda: it.PrecoVenda,
			Subtotal:   it.Subtotal,
		})
	}
	pagamentos := make([]dto.SubPagamentoResponse, 0, len(v.Pagamentos))
	for _, p := range v.Pagamentos {
		pagamentos = append(pagamentos, dto.SubPagamentoResponse{
			Modalidade: string(p.Modalidade),
			Valor:      p.Valor,
			Parcelas:   p.Parcelas,
		})
	}
	resp := dto.VendaResponse{
		ID:           v.ID.String(),
		FilialID:     v.FilialID.String(),
		VendedorID:   v.VendedorID.String(),
		Items:        items,
		Total:        v.Total,
		Desconto:     v.Desconto,
		Modalidade:   string(v.Modalidade),
		Parcelas:     v.Parcelas,
		Pagamentos:   pagamentos,
		CreditoUsado: v.CreditoUsado,
		Troca:        v.Troca,
		Estornada:    v.Estornada,
		Data:         v.Data.Format(time.RFC3339),
	}
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		resp.ClienteID = &id
	}
	return resp
}

func toEstornoResponse(r *service.EstornoResult) dto.EstornoResponse {
	resp := dto.EstornoResponse{
		VendaID:           r.Venda.ID.String(),
		ItensRestaurados:  r.ItensRestaurados,
		DividaReduzida:    r.DividaReduzida,
		CreditoRestaurado: r.CreditoRestaurado,
		LogPendente:       r.LogPendente,
	}
	if r.Venda.EstornadaPor != nil {
		resp.EstornadaPor = r.Venda.EstornadaPor.String()
	}
	if r.Venda.EstornadaEm != nil {
		resp.EstornadaEm = r.Venda.EstornadaEm.Format(time.RFC3339)
	}
	return resp
}

func toSessaoResponse(s *model.SessaoCaixa) dto.SessaoCaixaResponse {
	resp := dto.SessaoCaixaResponse{
		SessaoID:      s.ID.String(),
		FilialID:      s.FilialID.String(),
		Data:          s.Data.Format("2006-01-02"),
		SaldoAbertura: s.SaldoAbertura,
		TotalDinheiro: s.TotalDinheiro,
		TotalPix:      s.TotalPix,
		TotalCartao:   s.TotalCartao,
		TotalCredito:  s.TotalCredito,
		TotalGeral:    s.TotalGeral,
		NumVendas:     s.NumVendas,
		Inconsistente: s.Inconsistente,
		Estado:        s.Estado,
	}
	if s.Delta != nil {
		resp.Delta = *s.Delta
	}
	return resp
}

func toMovimentoResponse(m *model.MovimentoCaixa) dto.MovimentoCaixaResponse {
	return dto.MovimentoCaixaResponse{
		ID:     m.ID.String(),
		Tipo:   m.Tipo,
		Valor:  m.Valor,
		Motivo: m.Motivo,
		Data:   m.Data.Format(time.RFC3339),
	}
}

func toSnapshotResponse(sn *service.Snapshot) dto.SnapshotCaixaResponse {
	return dto.SnapshotCaixaResponse{
		FilialID:          sn.FilialID.String(),
		Data:              sn.Dia.Format("2006-01-02"),
		TotalDinheiro:     sn.TotalDinheiro,
		TotalPix:          sn.TotalPix,
		TotalCartao:       sn.TotalCartao,
		TotalCredito:      sn.TotalCredito,
		TotalGeral:        sn.TotalGeral,
		NumVendas:         sn.NumVendas,
		Sangrias:          sn.Sangrias,
		Suprimentos:       sn.Suprimentos,
		RetiradasGerencia: sn.RetiradasGerencia,
		PagamentosDivida:  sn.PagamentosDivida,
	}
}

func toBalancoResponse(b *model.Balanco) dto.BalancoResponse {
	items := make([]dto.BalancoItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, toBalancoItemResponse(&it))
	}
	resp := dto.BalancoResponse{
		ID:         b.ID.String(),
		FilialID:   b.FilialID.String(),
		Tipo:       b.Tipo,
		Status:     b.Status,
		Items:      items,
		IniciadoEm: b.IniciadoEm.Format(time.RFC3339),
	}
	if b.ConcluidoEm != nil {
		em := b.ConcluidoEm.Format(time.RFC3339)
		resp.ConcluidoEm = &em
	}
	return resp
}

func toBalancoItemResponse(it *model.BalancoItem) dto.BalancoItemResponse {
	return dto.BalancoItemResponse{
		ProdutoID:  it.ProdutoID.String(),
		Codigo:     it.Codigo,
		Descricao:  it.Descricao,
		QtdSistema: it.QtdSistema,
		QtdContada: it.QtdContada,
		Diferenca:  it.Diferenca,
		Conferido:  it.Conferido,
	}
}

func toProdutoResponse(p *model.Produto) dto.ProdutoResponse {
	return dto.ProdutoResponse{
		ID:         p.ID.String(),
		FilialID:   p.FilialID.String(),
		Codigo:     p.Codigo,
		Descricao:  p.Descricao,
		Categoria:  p.Categoria,
		Quantidade: p.Quantidade,
		PrecoCusto: p.PrecoCusto,
		PrecoVenda: p.PrecoVenda,
		Ativo:      p.Ativo,
	}
}

func toClienteResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:            c.ID.String(),
		Nome:          c.Nome,
		Telefone:      c.Telefone,
		CPF:           c.CPF,
		Endereco:      c.Endereco,
		LimiteCredito: c.LimiteCredito,
		SaldoDevedor:  c.SaldoDevedor,
		CreditoLoja:   c.CreditoLoja,
	}
}

func toUserResponse(u *model.Usuario) dto.UserResponse {
	resp := dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nome:     u.Nome,
		Role:     u.Role,
	}
	if u.FilialID != nil {
		id := u.FilialID.String()
		resp.FilialID = &id
	}
	return resp
}
