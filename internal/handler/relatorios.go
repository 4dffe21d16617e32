package handler

import (
	"net/http"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RelatoriosHandler serves the read-only dashboard projections. Everything
// here is derived on demand, nothing is persisted.
type RelatoriosHandler struct {
	vendas   service.VendaService
	produtos service.ProdutoService
	clock    infra.Clock
}

func NewRelatoriosHandler(vendas service.VendaService, produtos service.ProdutoService, clock infra.Clock) *RelatoriosHandler {
	return &RelatoriosHandler{vendas: vendas, produtos: produtos, clock: clock}
}

// VendasPorVendedor godoc
// @Summary      Vendas do dia por vendedora
// @Description  Agrupa as vendas efetivas do dia (sem estornos e trocas) por vendedora, maior total primeiro.
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Param        filial_id query string true  "UUID da filial"
// @Param        data      query string false "Dia YYYY-MM-DD (default hoje)"
// @Success      200  {array}  dto.ResumoVendedorResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/relatorios/vendas-por-vendedor [get]
func (h *RelatoriosHandler) VendasPorVendedor(c *gin.Context) {
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

	resumo, err := h.vendas.ResumoVendedoresDia(c.Request.Context(), filialID, dia)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resumo)
}

// ValorEstoque godoc
// @Summary      Valor do estoque da filial
// @Description  Soma quantidade × preço de custo dos produtos ativos.
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Param        filial_id query string true "UUID da filial"
// @Success      200  {object} dto.ValorEstoqueResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/relatorios/valor-estoque [get]
func (h *RelatoriosHandler) ValorEstoque(c *gin.Context) {
	filialID, err := uuid.Parse(c.Query("filial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "filial_id inválido"))
		return
	}
	resp, err := h.produtos.ValorEstoque(c.Request.Context(), filialID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
