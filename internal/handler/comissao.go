package handler

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComissaoHandler struct {
	svc     service.ComissaoService
	clock   infra.Clock
	pdfPath string
}

func NewComissaoHandler(svc service.ComissaoService, clock infra.Clock, pdfPath string) *ComissaoHandler {
	return &ComissaoHandler{svc: svc, clock: clock, pdfPath: pdfPath}
}

func (h *ComissaoHandler) periodo(c *gin.Context) (int, int, bool) {
	now := h.clock.Now()
	mes, err := strconv.Atoi(c.DefaultQuery("mes", strconv.Itoa(int(now.Month()))))
	if err != nil || mes < 1 || mes > 12 {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "mes inválido"))
		return 0, 0, false
	}
	ano, err := strconv.Atoi(c.DefaultQuery("ano", strconv.Itoa(now.Year())))
	if err != nil || ano < 2000 {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ano inválido"))
		return 0, 0, false
	}
	return mes, ano, true
}

// Calcular godoc
// @Summary      Comissão de uma vendedora
// @Description  Cálculo derivado (nunca persistido): vendas realizadas × percentual + bônus por faixa − vales do período. Estornos e trocas ficam de fora.
// @Tags         comissoes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string true  "UUID da vendedora"
// @Param        mes query int    false "Mês (default atual)"
// @Param        ano query int    false "Ano (default atual)"
// @Success      200  {object} dto.ComissaoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/comissoes/{id} [get]
func (h *ComissaoHandler) Calcular(c *gin.Context) {
	vendedorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	mes, ano, ok := h.periodo(c)
	if !ok {
		return
	}
	resp, err := h.svc.Calcular(c.Request.Context(), vendedorID, mes, ano)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CalcularFilial godoc
// @Summary      Comissões de toda a filial
// @Tags         comissoes
// @Produce      json
// @Security     BearerAuth
// @Param        filial_id query string true  "UUID da filial"
// @Param        mes       query int    false "Mês (default atual)"
// @Param        ano       query int    false "Ano (default atual)"
// @Success      200  {array}  dto.ComissaoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/comissoes [get]
func (h *ComissaoHandler) CalcularFilial(c *gin.Context) {
	filialID, err := uuid.Parse(c.Query("filial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "filial_id inválido"))
		return
	}
	mes, ano, ok := h.periodo(c)
	if !ok {
		return
	}
	resp, err := h.svc.CalcularFilial(c.Request.Context(), filialID, mes, ano)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Relatorio godoc
// @Summary      Folha de comissões em PDF
// @Description  Gera o PDF de fechamento do mês com uma linha por vendedora.
// @Tags         comissoes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        filial_id query string true  "UUID da filial"
// @Param        mes       query int    false "Mês (default atual)"
// @Param        ano       query int    false "Ano (default atual)"
// @Success      200
// @Failure      400  {object} apierror.APIError
// @Router       /v1/comissoes/relatorio [get]
func (h *ComissaoHandler) Relatorio(c *gin.Context) {
	filialID, err := uuid.Parse(c.Query("filial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "filial_id inválido"))
		return
	}
	mes, ano, ok := h.periodo(c)
	if !ok {
		return
	}
	comissoes, err := h.svc.CalcularFilial(c.Request.Context(), filialID, mes, ano)
	if err != nil {
		respondErr(c, err)
		return
	}
	path, err := infra.GenerateComissaoPDF(comissoes, mes, ano, h.pdfPath)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
