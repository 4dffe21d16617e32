package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/middleware"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendasHandler struct {
	svc   service.VendaService
	clock infra.Clock
}

func NewVendasHandler(svc service.VendaService, clock infra.Clock) *VendasHandler {
	return &VendasHandler{svc: svc, clock: clock}
}

// Registrar godoc
// @Summary      Registrar venda
// @Description  Comete uma venda ACID: baixa estoque condicionalmente, lança fiado e crédito de loja, despacha recibo assíncrono.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVendaRequest true "Detalhe da venda"
// @Success      201  {object} dto.VendaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/vendas [post]
func (h *VendasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	vendedorID, _ := uuid.Parse(claims.UserID)

	venda, err := h.svc.Registrar(c.Request.Context(), vendedorID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVendaResponse(venda))
}

// Estornar godoc
// @Summary      Estornar venda
// @Description  Reverte uma venda exatamente uma vez: restaura estoque, reduz dívida (piso em zero) e devolve crédito de loja.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      200  {object} dto.EstornoResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/vendas/{id}/estorno [post]
func (h *VendasHandler) Estornar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	actorID, _ := uuid.Parse(claims.UserID)

	res, err := h.svc.Estornar(c.Request.Context(), id, actorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toEstornoResponse(res))
}

// Buscar godoc
// @Summary      Buscar venda
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      200  {object} dto.VendaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/vendas/{id} [get]
func (h *VendasHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	venda, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toVendaResponse(venda))
}

// Listar godoc
// @Summary      Listar vendas
// @Description  Vendas de uma filial; com ?data=YYYY-MM-DD restringe ao dia (fuso da filial).
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        filial_id query string true  "UUID da filial"
// @Param        data      query string false "Dia YYYY-MM-DD"
// @Param        limit     query int    false "Máximo de registros (default 100)"
// @Success      200  {array}  dto.VendaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/vendas [get]
func (h *VendasHandler) Listar(c *gin.Context) {
	filialID, err := uuid.Parse(c.Query("filial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "filial_id inválido"))
		return
	}

	var vendas []model.Venda
	if dataStr := c.Query("data"); dataStr != "" {
		dia, err := time.ParseInLocation("2006-01-02", dataStr, h.clock.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "data inválida, use YYYY-MM-DD"))
			return
		}
		vendas, err = h.svc.ListDia(c.Request.Context(), filialID, dia)
		if err != nil {
			respondErr(c, err)
			return
		}
	} else {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		vendas, err = h.svc.List(c.Request.Context(), filialID, limit)
		if err != nil {
			respondErr(c, err)
			return
		}
	}

	out := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		out = append(out, toVendaResponse(&vendas[i]))
	}
	c.JSON(http.StatusOK, out)
}
