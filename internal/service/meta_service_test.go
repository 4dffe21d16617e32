package service_test

import (
	"context"
	"testing"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetaService() service.MetaService {
	return service.NewMetaService(newStubMetaRepo(), &stubValeRepo{}, newStubUsuarioRepo(), fixedClock())
}

func TestCriarValeRegistraData(t *testing.T) {
	svc := newMetaService()

	vale, err := svc.CriarVale(context.Background(), dto.ValeRequest{
		VendedoraID: uuid.NewString(),
		Valor:       decimal.NewFromFloat(50.00),
		Mes:         8,
		Ano:         2026,
	})
	require.NoError(t, err)
	assert.True(t, vale.Data.Equal(fixedClock().Instant))
}

func TestCriarValeValorNaoPositivo(t *testing.T) {
	svc := newMetaService()

	for _, valor := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-10.00)} {
		_, err := svc.CriarVale(context.Background(), dto.ValeRequest{
			VendedoraID: uuid.NewString(),
			Valor:       valor,
			Mes:         8,
			Ano:         2026,
		})
		require.ErrorIs(t, err, service.ErrValeInvalido, "valor = %s", valor)
	}
}
