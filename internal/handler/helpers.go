package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondErr translates service sentinels into the stable HTTP + code space.
// Anything unrecognized becomes an opaque 500.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProdutoNaoEncontrado),
		errors.Is(err, service.ErrClienteNaoEncontrado),
		errors.Is(err, service.ErrVendaNaoEncontrada),
		errors.Is(err, service.ErrFilialNaoEncontrada),
		errors.Is(err, service.ErrBalancoNaoEncontrado),
		errors.Is(err, service.ErrMetaNaoEncontrada),
		errors.Is(err, service.ErrCaixaNaoAberto):
		c.JSON(http.StatusNotFound, apierror.New(apierror.CodeNotFound, err.Error()))

	case errors.Is(err, service.ErrEstoqueInsuficiente):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeInsufficientStock, err.Error()))

	case errors.Is(err, service.ErrSaldoInsuficiente),
		errors.Is(err, service.ErrCreditoInsuficiente):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeInsufficientBalance, err.Error()))

	case errors.Is(err, service.ErrVendaJaEstornada),
		errors.Is(err, service.ErrCaixaJaAberto),
		errors.Is(err, service.ErrCaixaJaFechado),
		errors.Is(err, service.ErrBalancoEmAndamento),
		errors.Is(err, service.ErrBalancoConcluido),
		errors.Is(err, service.ErrUsuarioJaExiste):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeConflict, err.Error()))

	case errors.Is(err, service.ErrModalidadeInvalida),
		errors.Is(err, service.ErrPagamentosInvalidos),
		errors.Is(err, service.ErrProdutoInativo),
		errors.Is(err, service.ErrValeInvalido),
		errors.Is(err, service.ErrItemForaDoBalanco):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, err.Error()))

	case errors.Is(err, service.ErrCredenciaisInvalidas):
		c.JSON(http.StatusUnauthorized, apierror.New(apierror.CodeUnauthorized, err.Error()))

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.Internal("Erro interno do servidor"))
	}
}
