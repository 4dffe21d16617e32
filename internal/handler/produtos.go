package handler

import (
	"net/http"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Criar godoc
// @Summary      Criar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ProdutoRequest true "Produto"
// @Success      201  {object} dto.ProdutoResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/produtos [post]
func (h *ProdutosHandler) Criar(c *gin.Context) {
	var req dto.ProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProdutoResponse(p))
}

// Atualizar godoc
// @Summary      Atualizar produto
// @Description  Atualiza cadastro e preços. A quantidade nunca muda por aqui: estoque só se move por venda, estorno ou balanço.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string             true "UUID do produto"
// @Param        body body dto.ProdutoRequest true "Produto"
// @Success      200  {object} dto.ProdutoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/produtos/{id} [put]
func (h *ProdutosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	var req dto.ProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toProdutoResponse(p))
}

// Listar godoc
// @Summary      Listar produtos da filial
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        filial_id query string true  "UUID da filial"
// @Param        codigo    query string false "Busca exata por código"
// @Success      200  {array}  dto.ProdutoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	filialID, err := uuid.Parse(c.Query("filial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "filial_id inválido"))
		return
	}

	if codigo := c.Query("codigo"); codigo != "" {
		p, err := h.svc.FindByCodigo(c.Request.Context(), filialID, codigo)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, []dto.ProdutoResponse{toProdutoResponse(p)})
		return
	}

	produtos, err := h.svc.ListByFilial(c.Request.Context(), filialID)
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, toProdutoResponse(&produtos[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Buscar godoc
// @Summary      Buscar produto
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      200  {object} dto.ProdutoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/produtos/{id} [get]
func (h *ProdutosHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	p, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toProdutoResponse(p))
}

// Desativar godoc
// @Summary      Desativar produto
// @Tags         produtos
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/produtos/{id} [delete]
func (h *ProdutosHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "ID inválido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
