package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GestaoHandler groups the back-office management surface: metas, vales,
// commission configuration and filiais.
type GestaoHandler struct {
	metas   service.MetaService
	filiais service.FilialService
	clock   infra.Clock
}

func NewGestaoHandler(metas service.MetaService, filiais service.FilialService, clock infra.Clock) *GestaoHandler {
	return &GestaoHandler{metas: metas, filiais: filiais, clock: clock}
}

// ─── Metas ───────────────────────────────────────────────────────────────────

// CriarMeta godoc
// @Summary      Criar meta mensal
// @Tags         gestao
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MetaRequest true "Meta"
// @Success      201
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/metas [post]
func (h *GestaoHandler) CriarMeta(c *gin.Context) {
	var req dto.MetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m, err := h.metas.CriarMeta(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          m.ID.String(),
		"vendedor_id": m.VendedorID.String(),
		"mes":         m.Mes,
		"ano":         m.Ano,
		"meta_vendas": m.MetaVendas,
		"meta_pecas":  m.MetaPecas,
	})
}

// ListarMetas godoc
// @Summary      Listar metas do período
// @Tags         gestao
// @Produce      json
// @Security     BearerAuth
// @Param        mes query int false "Mês (default atual)"
// @Param        ano query int false "Ano (default atual)"
// @Success      200
// @Router       /v1/metas [get]
func (h *GestaoHandler) ListarMetas(c *gin.Context) {
	now := h.clock.Now()
	mes, _ := strconv.Atoi(c.DefaultQuery("mes", strconv.Itoa(int(now.Month()))))
	ano, _ := strconv.Atoi(c.DefaultQuery("ano", strconv.Itoa(now.Year())))

	metas, err := h.metas.ListarMetas(c.Request.Context(), mes, ano)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, metas)
}

// ─── Vales ───────────────────────────────────────────────────────────────────

// CriarVale godoc
// @Summary      Registrar vale
// @Description  Adiantamento descontado do líquido da comissão do período.
// @Tags         gestao
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ValeRequest true "Vale"
// @Success      201
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/vales [post]
func (h *GestaoHandler) CriarVale(c *gin.Context) {
	var req dto.ValeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v, err := h.metas.CriarVale(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":           v.ID.String(),
		"vendedora_id": v.VendedoraID.String(),
		"valor":        v.Valor,
		"mes":          v.Mes,
		"ano":          v.Ano,
		"data":         v.Data.Format(time.RFC3339),
	})
}

// ListarVales godoc
// @Summary      Listar vales de uma vendedora no período
// @Tags         gestao
// @Produce      json
// @Security     BearerAuth
// @Param        vendedora_id query string true  "UUID da vendedora"
// @Param        mes          query int    false "Mês (default atual)"
// @Param        ano          query int    false "Ano (default atual)"
// @Success      200
// @Router       /v1/vales [get]
func (h *GestaoHandler) ListarVales(c *gin.Context) {
	vendedoraID, err := uuid.Parse(c.Query("vendedora_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "vendedora_id inválido"))
		return
	}
	now := h.clock.Now()
	mes, _ := strconv.Atoi(c.DefaultQuery("mes", strconv.Itoa(int(now.Month()))))
	ano, _ := strconv.Atoi(c.DefaultQuery("ano", strconv.Itoa(now.Year())))

	vales, err := h.metas.ListarVales(c.Request.Context(), vendedoraID, mes, ano)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vales)
}

// ─── Configuração de comissão ────────────────────────────────────────────────

// SalvarConfiguracao godoc
// @Summary      Salvar configuração de comissão da filial
// @Description  Substitui percentual e faixas de bônus atomicamente.
// @Tags         gestao
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ConfiguracaoComissaoRequest true "Configuração"
// @Success      200
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/comissoes/configuracao [put]
func (h *GestaoHandler) SalvarConfiguracao(c *gin.Context) {
	var req dto.ConfiguracaoComissaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cfg, err := h.metas.SalvarConfiguracao(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// BuscarConfiguracao godoc
// @Summary      Configuração de comissão da filial
// @Tags         gestao
// @Produce      json
// @Security     BearerAuth
// @Param        filial_id query string true "UUID da filial"
// @Success      200
// @Failure      404  {object} apierror.APIError
// @Router       /v1/comissoes/configuracao [get]
func (h *GestaoHandler) BuscarConfiguracao(c *gin.Context) {
	filialID, err := uuid.Parse(c.Query("filial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "filial_id inválido"))
		return
	}
	cfg, err := h.metas.BuscarConfiguracao(c.Request.Context(), filialID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// ─── Filiais ─────────────────────────────────────────────────────────────────

// CriarFilial godoc
// @Summary      Criar filial
// @Tags         gestao
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FilialRequest true "Filial"
// @Success      201
// @Router       /v1/filiais [post]
func (h *GestaoHandler) CriarFilial(c *gin.Context) {
	var req dto.FilialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	f, err := h.filiais.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// ListarFiliais godoc
// @Summary      Listar filiais
// @Tags         gestao
// @Produce      json
// @Security     BearerAuth
// @Success      200
// @Router       /v1/filiais [get]
func (h *GestaoHandler) ListarFiliais(c *gin.Context) {
	filiais, err := h.filiais.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, filiais)
}

// AtualizarFilial godoc
// @Summary      Atualizar filial
// @Tags         gestao
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string            true "UUID da filial"
// @Param        body body dto.FilialRequest true "Filial"
// @Success      200
// @Failure      404  {object} apierror.APIError
// @Router       /v1/filiais/{id} [put]
func (h *GestaoHandler) AtualizarFilial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	var req dto.FilialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	f, err := h.filiais.Update(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DesativarFilial godoc
// @Summary      Desativar filial
// @Tags         gestao
// @Security     BearerAuth
// @Param        id path string true "UUID da filial"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/filiais/{id} [delete]
func (h *GestaoHandler) DesativarFilial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	if err := h.filiais.Desativar(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
