package handler

import (
	"net/http"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BalancoHandler struct{ svc service.BalancoService }

func NewBalancoHandler(svc service.BalancoService) *BalancoHandler {
	return &BalancoHandler{svc: svc}
}

// Iniciar godoc
// @Summary      Iniciar balanço
// @Description  Abre um balanço com amostra aleatória (semanal=15, mensal=50, completo=tudo), evitando repetir os produtos do balanço anterior. Só um balanço em andamento por vez.
// @Tags         balancos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.IniciarBalancoRequest true "Tipo e filial"
// @Success      201  {object} dto.BalancoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/balancos [post]
func (h *BalancoHandler) Iniciar(c *gin.Context) {
	var req dto.IniciarBalancoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.svc.Iniciar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBalancoResponse(b))
}

// Contagem godoc
// @Summary      Registrar contagem física
// @Description  Registra (ou revisa) a contagem de um item do balanço; a diferença é derivada no servidor.
// @Tags         balancos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string              true "UUID do balanço"
// @Param        body body dto.ContagemRequest true "Contagem"
// @Success      200  {object} dto.BalancoItemResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/balancos/{id}/contagens [post]
func (h *BalancoHandler) Contagem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	var req dto.ContagemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.RegistrarContagem(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toBalancoItemResponse(item))
}

// Concluir godoc
// @Summary      Concluir balanço
// @Description  Sela o balanço; com aplicar_estoque as quantidades contadas viram as quantidades do sistema (apenas itens conferidos).
// @Tags         balancos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                     true "UUID do balanço"
// @Param        body body dto.ConcluirBalancoRequest true "Opções de conclusão"
// @Success      200  {object} dto.BalancoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/balancos/{id}/concluir [post]
func (h *BalancoHandler) Concluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	var req dto.ConcluirBalancoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.svc.Concluir(c.Request.Context(), id, req.AplicarEstoque)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toBalancoResponse(b))
}

// Buscar godoc
// @Summary      Buscar balanço
// @Tags         balancos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do balanço"
// @Success      200  {object} dto.BalancoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/balancos/{id} [get]
func (h *BalancoHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	b, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toBalancoResponse(b))
}

// EmAndamento godoc
// @Summary      Balanço em andamento
// @Tags         balancos
// @Produce      json
// @Security     BearerAuth
// @Param        filial_id query string true "UUID da filial"
// @Success      200  {object} dto.BalancoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/balancos/em-andamento [get]
func (h *BalancoHandler) EmAndamento(c *gin.Context) {
	filialID, err := uuid.Parse(c.Query("filial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "filial_id inválido"))
		return
	}
	b, err := h.svc.EmAndamento(c.Request.Context(), filialID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toBalancoResponse(b))
}
