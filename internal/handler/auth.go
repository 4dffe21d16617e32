package handler

import (
	"net/http"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/middleware"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary      Autenticar usuário
// @Description  Valida credenciais e emite o token de acesso.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciais"
// @Success      200  {object} dto.LoginResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	token, user, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

// Register godoc
// @Summary      Criar usuário
// @Description  Cria um usuário (somente admin).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegisterRequest true "Dados do usuário"
// @Success      201  {object} dto.UserResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Me godoc
// @Summary      Usuário autenticado
// @Description  Retorna o cadastro do portador do token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.UserResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(apierror.CodeUnauthorized, "Token inválido"))
		return
	}
	user, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
