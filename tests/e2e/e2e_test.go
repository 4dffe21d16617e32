//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/config"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Setup ────────────────────────────────────────────────────────────────────

type testEnv struct {
	server   *httptest.Server
	token    string // admin JWT
	filialID string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("explotrack_test"),
		tcPostgres.WithUsername("explotrack"),
		tcPostgres.WithPassword("explotrack"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		Timezone:           "America/Sao_Paulo",
		CaixaTolerancia:    "0.50",
		BalancoScope:       "global",
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("explotrack2026"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Username:  "admin.e2e",
		Nome:      "Admin E2E",
		Role:      "admin",
		SenhaHash: string(hash),
		Ativo:     true,
	}).Error)

	clock := infra.NewClock(cfg.Timezone)
	srv := httptest.NewServer(router.New(cfg, db, rdb, clock))
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin.e2e", "password": "explotrack2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	env := &testEnv{server: srv, token: loginBody.AccessToken}

	filialResp := do(t, srv, "POST", "/v1/filiais",
		jsonBody(t, map[string]any{"nome": "Filial Centro"}), env.token)
	require.Equal(t, http.StatusCreated, filialResp.StatusCode)
	var filial struct {
		ID string `json:"ID"`
	}
	decodeJSON(t, filialResp, &filial)
	env.filialID = filial.ID

	return env
}

func (env *testEnv) criarProduto(t *testing.T, codigo string, qtd int, preco float64) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/produtos",
		jsonBody(t, map[string]any{
			"filial_id":   env.filialID,
			"codigo":      codigo,
			"descricao":   "Produto " + codigo,
			"quantidade":  qtd,
			"preco_custo": preco / 2,
			"preco_venda": preco,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

func (env *testEnv) quantidade(t *testing.T, produtoID string) int {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/produtos/"+produtoID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prod struct {
		Quantidade int `json:"quantidade"`
	}
	decodeJSON(t, resp, &prod)
	return prod.Quantidade
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloCompletoDeVenda(t *testing.T) {
	env := setupTestEnv(t)
	produtoID := env.criarProduto(t, "VEST-E2E-1", 20, 120.00)

	abrirResp := do(t, env.server, "POST", "/v1/caixa/abrir",
		jsonBody(t, map[string]any{"filial_id": env.filialID, "saldo_abertura": 100.00}),
		env.token)
	require.Equal(t, http.StatusCreated, abrirResp.StatusCode)

	vendaResp := do(t, env.server, "POST", "/v1/vendas",
		jsonBody(t, map[string]any{
			"filial_id":  env.filialID,
			"items":      []map[string]any{{"produto_id": produtoID, "quantidade": 3}},
			"total":      360.00,
			"modalidade": "Dinheiro",
		}), env.token)
	require.Equal(t, http.StatusCreated, vendaResp.StatusCode)
	var venda struct {
		ID        string `json:"id"`
		Estornada bool   `json:"estornada"`
	}
	decodeJSON(t, vendaResp, &venda)
	assert.False(t, venda.Estornada)

	assert.Equal(t, 17, env.quantidade(t, produtoID))

	hoje := time.Now().Format("2006-01-02")
	listResp := do(t, env.server, "GET",
		fmt.Sprintf("/v1/vendas?filial_id=%s&data=%s", env.filialID, hoje),
		nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var vendas []struct {
		Items []struct {
			Quantidade int `json:"quantidade"`
		} `json:"items"`
	}
	decodeJSON(t, listResp, &vendas)
	require.Len(t, vendas, 1)
	// The day listing must hydrate items, not just payments.
	require.Len(t, vendas[0].Items, 1)
	assert.Equal(t, 3, vendas[0].Items[0].Quantidade)

	resumoResp := do(t, env.server, "GET",
		fmt.Sprintf("/v1/relatorios/vendas-por-vendedor?filial_id=%s&data=%s", env.filialID, hoje),
		nil, env.token)
	require.Equal(t, http.StatusOK, resumoResp.StatusCode)
	var resumo []struct {
		NumVendas int `json:"num_vendas"`
		Pecas     int `json:"pecas"`
	}
	decodeJSON(t, resumoResp, &resumo)
	require.Len(t, resumo, 1)
	assert.Equal(t, 1, resumo[0].NumVendas)
	assert.Equal(t, 3, resumo[0].Pecas)
}

func TestE2E_EstornoRestauraEstoque(t *testing.T) {
	env := setupTestEnv(t)
	produtoID := env.criarProduto(t, "VEST-E2E-2", 10, 80.00)

	vendaResp := do(t, env.server, "POST", "/v1/vendas",
		jsonBody(t, map[string]any{
			"filial_id":  env.filialID,
			"items":      []map[string]any{{"produto_id": produtoID, "quantidade": 4}},
			"total":      320.00,
			"modalidade": "Pix",
		}), env.token)
	require.Equal(t, http.StatusCreated, vendaResp.StatusCode)
	var venda struct {
		ID string `json:"id"`
	}
	decodeJSON(t, vendaResp, &venda)
	require.Equal(t, 6, env.quantidade(t, produtoID))

	estornoResp := do(t, env.server, "POST", "/v1/vendas/"+venda.ID+"/estorno", nil, env.token)
	require.Equal(t, http.StatusOK, estornoResp.StatusCode)
	var estorno struct {
		ItensRestaurados int `json:"itens_restaurados"`
	}
	decodeJSON(t, estornoResp, &estorno)
	assert.Equal(t, 4, estorno.ItensRestaurados)
	assert.Equal(t, 10, env.quantidade(t, produtoID))

	// Second estorno must hit the conditional flag flip and be rejected.
	dupResp := do(t, env.server, "POST", "/v1/vendas/"+venda.ID+"/estorno", nil, env.token)
	defer dupResp.Body.Close()
	assert.Equal(t, http.StatusConflict, dupResp.StatusCode)
}

func TestE2E_EstoqueInsuficienteRejeitado(t *testing.T) {
	env := setupTestEnv(t)
	produtoID := env.criarProduto(t, "VEST-E2E-3", 2, 50.00)

	vendaResp := do(t, env.server, "POST", "/v1/vendas",
		jsonBody(t, map[string]any{
			"filial_id":  env.filialID,
			"items":      []map[string]any{{"produto_id": produtoID, "quantidade": 5}},
			"total":      250.00,
			"modalidade": "Dinheiro",
		}), env.token)
	defer vendaResp.Body.Close()
	assert.Equal(t, http.StatusConflict, vendaResp.StatusCode)
	assert.Equal(t, 2, env.quantidade(t, produtoID))
}

func TestE2E_CaixaDuplicadoRejeitado(t *testing.T) {
	env := setupTestEnv(t)

	body := map[string]any{"filial_id": env.filialID, "saldo_abertura": 100.00}
	first := do(t, env.server, "POST", "/v1/caixa/abrir", jsonBody(t, body), env.token)
	defer first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := do(t, env.server, "POST", "/v1/caixa/abrir", jsonBody(t, body), env.token)
	defer second.Body.Close()
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func TestE2E_BalancoCorrigeEstoque(t *testing.T) {
	env := setupTestEnv(t)
	produtoID := env.criarProduto(t, "VEST-E2E-4", 12, 60.00)

	iniciarResp := do(t, env.server, "POST", "/v1/balancos",
		jsonBody(t, map[string]any{"filial_id": env.filialID, "tipo": "completo"}), env.token)
	require.Equal(t, http.StatusCreated, iniciarResp.StatusCode)
	var balanco struct {
		ID string `json:"id"`
	}
	decodeJSON(t, iniciarResp, &balanco)

	contagemResp := do(t, env.server, "POST", "/v1/balancos/"+balanco.ID+"/contagens",
		jsonBody(t, map[string]any{"produto_id": produtoID, "qtd_contada": 9}), env.token)
	defer contagemResp.Body.Close()
	require.Equal(t, http.StatusOK, contagemResp.StatusCode)

	concluirResp := do(t, env.server, "POST", "/v1/balancos/"+balanco.ID+"/concluir",
		jsonBody(t, map[string]any{"aplicar_estoque": true}), env.token)
	defer concluirResp.Body.Close()
	require.Equal(t, http.StatusOK, concluirResp.StatusCode)

	assert.Equal(t, 9, env.quantidade(t, produtoID))
}
