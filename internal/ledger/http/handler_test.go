package ledgerhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balanza-erp/balanza/internal/ledger"
	_ "github.com/balanza-erp/balanza/internal/testing/guard"
)

type stubService struct {
	accounts      []ledger.Account
	accountByCode func(code string) (ledger.Account, error)
	assignFn      func(id int64, amount decimal.Decimal) (ledger.AssignmentResult, error)
	resetFn       func() (ledger.AssignmentResult, error)
	listErr       error
}

func (s *stubService) AccountByCode(ctx context.Context, code string) (ledger.Account, error) {
	if s.accountByCode != nil {
		return s.accountByCode(code)
	}
	return ledger.Account{}, ledger.ErrAccountNotFound
}

func (s *stubService) Accounts(ctx context.Context) ([]ledger.Account, error) {
	return s.accounts, s.listErr
}

func (s *stubService) AssignAmount(ctx context.Context, id int64, amount decimal.Decimal) (ledger.AssignmentResult, error) {
	if s.assignFn != nil {
		return s.assignFn(id, amount)
	}
	return ledger.AssignmentResult{}, ledger.ErrAccountNotFound
}

func (s *stubService) Catalog(ctx context.Context) (ledger.Catalog, error) {
	var cat ledger.Catalog
	for _, acc := range s.accounts {
		entry := ledger.CatalogEntry{Code: acc.Code, Name: acc.Name, Type: acc.Type}
		switch acc.Type {
		case ledger.TypeAsset:
			cat.Assets = append(cat.Assets, entry)
		case ledger.TypeLiability:
			cat.Liabilities = append(cat.Liabilities, entry)
		case ledger.TypeEquity:
			cat.Equity = append(cat.Equity, entry)
		}
	}
	return cat, s.listErr
}

func (s *stubService) GroupedCatalog(ctx context.Context) (ledger.GroupedTotals, error) {
	if s.listErr != nil {
		return ledger.GroupedTotals{}, s.listErr
	}
	return ledger.Aggregate(s.accounts), nil
}

func (s *stubService) Reset(ctx context.Context) (ledger.AssignmentResult, error) {
	if s.resetFn != nil {
		return s.resetFn()
	}
	return ledger.AssignmentResult{}, nil
}

func (s *stubService) ClassifierConfig() ledger.ClassifierConfig {
	return ledger.DefaultClassifierConfig()
}

var _ CatalogService = (*stubService)(nil)

func newTestRouter(svc CatalogService) chi.Router {
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func typedAccount(code, kind, group string, amount int64) ledger.Account {
	return ledger.Account{
		Code:   code,
		Name:   "Cuenta " + code,
		Type:   kind,
		Group:  group,
		Amount: decimal.NewNullDecimal(decimal.NewFromInt(amount)),
	}
}

func TestListAccounts(t *testing.T) {
	router := newTestRouter(&stubService{accounts: []ledger.Account{
		typedAccount("111", ledger.TypeAsset, "Activo Corriente", 100),
	}})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/cuentas", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var accounts []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, "111", accounts[0]["codigo"])
	assert.Equal(t, "Activo", accounts[0]["tipo"])
}

func TestAccountByCodeNotFound(t *testing.T) {
	router := newTestRouter(&stubService{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/cuentas/999", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "cuenta no encontrada")
}

func TestAssignAmount(t *testing.T) {
	var gotID int64
	var gotAmount decimal.Decimal
	svc := &stubService{assignFn: func(id int64, amount decimal.Decimal) (ledger.AssignmentResult, error) {
		gotID, gotAmount = id, amount
		return ledger.AssignmentResult{Field: ledger.FieldDepreciation}, nil
	}}
	router := newTestRouter(svc)

	body := bytes.NewBufferString(`{"monto": 120.50}`)
	req := httptest.NewRequest(http.MethodPut, "/cuentas/12221/monto", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(12221), gotID)
	assert.True(t, gotAmount.Equal(decimal.RequireFromString("120.50")))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "depreciacion", resp["campo"])
	assert.Equal(t, "ok", resp["recalculo"])
}

func TestAssignAmountRecomputeFailureStillSucceeds(t *testing.T) {
	svc := &stubService{assignFn: func(id int64, amount decimal.Decimal) (ledger.AssignmentResult, error) {
		return ledger.AssignmentResult{
			Field:          ledger.FieldGrossAmount,
			RecomputeError: ledger.ErrRecomputeFailed,
		}, nil
	}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/cuentas/1222/monto", strings.NewReader(`{"monto": 500}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "fallido", resp["recalculo"])
}

func TestAssignAmountBadID(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPut, "/cuentas/abc/monto", strings.NewReader(`{"monto": 1}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAssignAmountMissingBody(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPut, "/cuentas/1/monto", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAssignAmountUnknownAccount(t *testing.T) {
	svc := &stubService{assignFn: func(id int64, amount decimal.Decimal) (ledger.AssignmentResult, error) {
		return ledger.AssignmentResult{}, ledger.ErrAccountNotFound
	}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/cuentas/999/monto", strings.NewReader(`{"monto": 1}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCatalogByType(t *testing.T) {
	router := newTestRouter(&stubService{accounts: []ledger.Account{
		typedAccount("111", ledger.TypeAsset, "", 0),
		typedAccount("211", ledger.TypeLiability, "", 0),
		typedAccount("311", ledger.TypeEquity, "", 0),
	}})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/catalogo_cuentas", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var cat map[string][]map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cat))
	assert.Len(t, cat["Activo"], 1)
	assert.Len(t, cat["Pasivo"], 1)
	assert.Len(t, cat["PatrimonioNeto"], 1)
}

func TestBalanceEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{accounts: []ledger.Account{
		typedAccount("111", ledger.TypeAsset, "Activo Corriente", 1000),
		typedAccount("211", ledger.TypeLiability, "Pasivo Corriente", 600),
		typedAccount("311", ledger.TypeEquity, "", 400),
	}})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/balance", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Balanced                 bool            `json:"cuadrado"`
		TotalAsset               decimal.Decimal `json:"totalActivo"`
		TotalLiabilityPlusEquity decimal.Decimal `json:"totalPasivoPatrimonio"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Balanced)
	assert.True(t, resp.TotalAsset.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.TotalLiabilityPlusEquity.Equal(decimal.NewFromInt(1000)))
}

func TestBalanceStoreError(t *testing.T) {
	router := newTestRouter(&stubService{listErr: errors.New("pg down")})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/balance", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestExportCSV(t *testing.T) {
	router := newTestRouter(&stubService{accounts: []ledger.Account{
		typedAccount("111", ledger.TypeAsset, "Activo Corriente", 100),
	}})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/balance/export.csv", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rr.Body.String(), "Cuenta 111")
}

func TestExportPDFRequiresHeaderParams(t *testing.T) {
	router := newTestRouter(&stubService{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/balance/export.pdf", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExportPDF(t *testing.T) {
	router := newTestRouter(&stubService{accounts: []ledger.Account{
		typedAccount("111", ledger.TypeAsset, "Activo Corriente", 100),
	}})

	req := httptest.NewRequest(http.MethodGet, "/balance/export.pdf?empresa=Comercial+XYZ&anio=2025", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")), "payload must start with the PDF magic bytes")
}

func TestExportPDFUnknownLayout(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/balance/export.pdf?empresa=X&anio=2025&layout=triptico", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExportXLSX(t *testing.T) {
	router := newTestRouter(&stubService{accounts: []ledger.Account{
		typedAccount("111", ledger.TypeAsset, "Activo Corriente", 100),
	}})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/balance/export.xlsx", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.Bytes())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "balance_cuentas.xlsx")
}
