package handler

import (
	"net/http"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/middleware"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct {
	svc   service.CaixaService
	clock infra.Clock
}

func NewCaixaHandler(svc service.CaixaService, clock infra.Clock) *CaixaHandler {
	return &CaixaHandler{svc: svc, clock: clock}
}

// Abrir godoc
// @Summary      Abrir caixa do dia
// @Description  Abre a sessão de caixa da filial. O saldo declarado é conferido contra o esperado do último fechamento; divergência acima da tolerância apenas sinaliza, nunca bloqueia.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AbrirCaixaRequest true "Saldo de abertura"
// @Success      201  {object} dto.AbrirCaixaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operadorID, _ := uuid.Parse(claims.UserID)

	sessao, err := h.svc.Abrir(c.Request.Context(), operadorID, req)
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := dto.AbrirCaixaResponse{
		SessaoID:      sessao.ID.String(),
		FilialID:      sessao.FilialID.String(),
		Data:          sessao.Data.Format("2006-01-02"),
		SaldoAbertura: sessao.SaldoAbertura,
		Inconsistente: sessao.Inconsistente,
	}
	if sessao.Delta != nil {
		resp.Delta = *sessao.Delta
		resp.Esperado = sessao.SaldoAbertura.Sub(*sessao.Delta)
	} else {
		resp.Esperado = sessao.SaldoAbertura
	}
	c.JSON(http.StatusCreated, resp)
}

// Movimento godoc
// @Summary      Registrar movimento de caixa
// @Description  Sangria, suprimento ou retirada de gerência. Append-only; válido mesmo antes da abertura formal do dia.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MovimentoCaixaRequest true "Movimento"
// @Success      201  {object} dto.MovimentoCaixaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/caixa/movimentos [post]
func (h *CaixaHandler) Movimento(c *gin.Context) {
	var req dto.MovimentoCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	mov, err := h.svc.RegistrarMovimento(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMovimentoResponse(mov))
}

// Fechar godoc
// @Summary      Fechar caixa do dia
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FecharCaixaRequest true "Totais declarados"
// @Success      200  {object} dto.SessaoCaixaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sessao, err := h.svc.Fechar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessaoResponse(sessao))
}

// Snapshot godoc
// @Summary      Snapshot do dia
// @Description  Projeção recalculada das vendas, movimentos e pagamentos de dívida do dia. Nunca persistida.
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        filial_id query string true  "UUID da filial"
// @Param        data      query string false "Dia YYYY-MM-DD (default hoje)"
// @Success      200  {object} dto.SnapshotCaixaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/caixa/snapshot [get]
func (h *CaixaHandler) Snapshot(c *gin.Context) {
	filialID, err := uuid.Parse(c.Query("filial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "filial_id inválido"))
		return
	}
	dia := h.clock.Now()
	if dataStr := c.Query("data"); dataStr != "" {
		dia, err = time.ParseInLocation("2006-01-02", dataStr, h.clock.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "data inválida, use YYYY-MM-DD"))
			return
		}
	}

	snap, err := h.svc.Snapshot(c.Request.Context(), filialID, dia)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshotResponse(snap))
}

// Sessao godoc
// @Summary      Sessão de caixa do dia
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        filial_id query string true  "UUID da filial"
// @Param        data      query string false "Dia YYYY-MM-DD (default hoje)"
// @Success      200  {object} dto.SessaoCaixaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/caixa/sessao [get]
func (h *CaixaHandler) Sessao(c *gin.Context) {
	filialID, err := uuid.Parse(c.Query("filial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "filial_id inválido"))
		return
	}
	dia := h.clock.Now()
	if dataStr := c.Query("data"); dataStr != "" {
		dia, err = time.ParseInLocation("2006-01-02", dataStr, h.clock.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "data inválida, use YYYY-MM-DD"))
			return
		}
	}
	sessao, err := h.svc.SessaoDoDia(c.Request.Context(), filialID, dia)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessaoResponse(sessao))
}

// PagamentoDivida godoc
// @Summary      Registrar pagamento de dívida (fiado)
// @Description  Baixa condicional do saldo devedor: pagar mais do que se deve é rejeitado, nunca deixa saldo negativo.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PagamentoDividaRequest true "Pagamento"
// @Success      201  {object} dto.PagamentoDividaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caixa/pagamentos-divida [post]
func (h *CaixaHandler) PagamentoDivida(c *gin.Context) {
	var req dto.PagamentoDividaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, restante, err := h.svc.RegistrarPagamentoDivida(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PagamentoDividaResponse{
		ID:            p.ID.String(),
		ClienteID:     p.ClienteID.String(),
		Valor:         p.Valor,
		Metodo:        string(p.Metodo),
		Data:          p.Data.Format(time.RFC3339),
		SaldoRestante: restante,
	})
}
