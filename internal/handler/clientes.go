package handler

import (
	"net/http"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Criar godoc
// @Summary      Criar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ClienteRequest true "Cliente"
// @Success      201  {object} dto.ClienteResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/clientes [post]
func (h *ClientesHandler) Criar(c *gin.Context) {
	var req dto.ClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cliente, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClienteResponse(cliente))
}

// Atualizar godoc
// @Summary      Atualizar cliente
// @Description  Atualiza cadastro e limite. Saldo devedor e crédito de loja nunca mudam por aqui.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string             true "UUID do cliente"
// @Param        body body dto.ClienteRequest true "Cliente"
// @Success      200  {object} dto.ClienteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/clientes/{id} [put]
func (h *ClientesHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	var req dto.ClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cliente, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toClienteResponse(cliente))
}

// Buscar godoc
// @Summary      Buscar cliente
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do cliente"
// @Success      200  {object} dto.ClienteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/clientes/{id} [get]
func (h *ClientesHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	cliente, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toClienteResponse(cliente))
}

// Listar godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ClienteResponse
// @Router       /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	clientes, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, toClienteResponse(&clientes[i]))
	}
	c.JSON(http.StatusOK, out)
}
