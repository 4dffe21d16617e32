package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const segredoTeste = "segredo-de-teste"

func novoRouterProtegido() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegido",
		middleware.JWTAuth(segredoTeste),
		middleware.RequireRole("admin"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func tokenCom(t *testing.T, role string) string {
	t.Helper()
	claims := &middleware.JWTClaims{
		UserID: "7b0c1a62-0000-0000-0000-000000000001",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(segredoTeste))
	require.NoError(t, err)
	return signed
}

func codigoDoBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apierror.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestJWTAuthSemTokenRespondeUnauthorized(t *testing.T) {
	r := novoRouterProtegido()

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apierror.CodeUnauthorized, codigoDoBody(t, rec))
}

func TestJWTAuthTokenInvalidoRespondeUnauthorized(t *testing.T) {
	r := novoRouterProtegido()

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-jwt")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apierror.CodeUnauthorized, codigoDoBody(t, rec))
}

func TestRequireRoleNegadoRespondeForbidden(t *testing.T) {
	r := novoRouterProtegido()

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+tokenCom(t, "vendedora"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// 403 mantém o código forbidden; só os 401 usam unauthorized.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apierror.CodeForbidden, codigoDoBody(t, rec))
}

func TestRequireRolePermitido(t *testing.T) {
	r := novoRouterProtegido()

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+tokenCom(t, "admin"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
