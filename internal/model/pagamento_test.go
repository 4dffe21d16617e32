package model_test

import (
	"testing"

	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModalidade(t *testing.T) {
	for _, s := range []string{"Dinheiro", "Pix", "Cartao", "Credito", "Misto"} {
		m, err := model.ParseModalidade(s)
		require.NoError(t, err, s)
		assert.Equal(t, model.Modalidade(s), m)
	}

	for _, s := range []string{"", "dinheiro", "PIX", "Cheque", "misto"} {
		_, err := model.ParseModalidade(s)
		assert.Error(t, err, s)
	}
}

func TestParseModalidadeSimples(t *testing.T) {
	for _, s := range []string{"Dinheiro", "Pix", "Cartao"} {
		m, err := model.ParseModalidadeSimples(s)
		require.NoError(t, err, s)
		assert.Equal(t, model.Modalidade(s), m)
	}

	// Misto não aninha e fiado não quita fiado.
	for _, s := range []string{"Misto", "Credito", "cartao"} {
		_, err := model.ParseModalidadeSimples(s)
		assert.Error(t, err, s)
	}
}
