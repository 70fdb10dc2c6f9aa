package ledgerhttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/balanza-erp/balanza/internal/ledger"
	"github.com/balanza-erp/balanza/internal/ledger/export"
	"github.com/balanza-erp/balanza/internal/platform/httpx"
)

// CatalogService defines the ledger operations the handler depends on.
type CatalogService interface {
	AccountByCode(ctx context.Context, code string) (ledger.Account, error)
	Accounts(ctx context.Context) ([]ledger.Account, error)
	AssignAmount(ctx context.Context, id int64, amount decimal.Decimal) (ledger.AssignmentResult, error)
	Catalog(ctx context.Context) (ledger.Catalog, error)
	GroupedCatalog(ctx context.Context) (ledger.GroupedTotals, error)
	Reset(ctx context.Context) (ledger.AssignmentResult, error)
	ClassifierConfig() ledger.ClassifierConfig
}

// Handler wires HTTP endpoints for the account catalog and balance views.
type Handler struct {
	logger   *slog.Logger
	service  CatalogService
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service CatalogService) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.Accounts(r.Context())
	if err != nil {
		h.respondError(w, "list accounts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, accounts)
}

func (h *Handler) handleAccountByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "codigo")
	acc, err := h.service.AccountByCode(r.Context(), code)
	if err != nil {
		h.respondError(w, "account by code", err)
		return
	}
	httpx.JSON(w, http.StatusOK, acc)
}

type assignAmountRequest struct {
	Amount decimal.Decimal `json:"monto" validate:"required"`
}

type assignAmountResponse struct {
	Field     string `json:"campo,omitempty"`
	Recompute string `json:"recalculo"`
}

func (h *Handler) handleAssignAmount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid account id", httpx.ErrValidation))
		return
	}

	var req assignAmountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: monto is required", httpx.ErrValidation))
		return
	}

	result, err := h.service.AssignAmount(r.Context(), id, req.Amount)
	if err != nil {
		h.respondError(w, "assign amount", err)
		return
	}

	resp := assignAmountResponse{Field: string(result.Field), Recompute: "ok"}
	if result.RecomputeError != nil {
		// Non-fatal: the field write committed, only the rollup refresh failed.
		resp.Recompute = "fallido"
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Reset(r.Context())
	if err != nil {
		h.respondError(w, "reset accounts", err)
		return
	}
	resp := assignAmountResponse{Recompute: "ok"}
	if result.RecomputeError != nil {
		resp.Recompute = "fallido"
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Catalog(r.Context())
	if err != nil {
		h.respondError(w, "catalog", err)
		return
	}
	httpx.JSON(w, http.StatusOK, cat)
}

func (h *Handler) handleGroupedCatalog(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.GroupedCatalog(r.Context())
	if err != nil {
		h.respondError(w, "grouped catalog", err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

type balanceResponse struct {
	Balanced                 bool                 `json:"cuadrado"`
	TotalAsset               decimal.Decimal      `json:"totalActivo"`
	TotalLiability           decimal.Decimal      `json:"totalPasivo"`
	TotalEquity              decimal.Decimal      `json:"totalPatrimonio"`
	TotalLiabilityPlusEquity decimal.Decimal      `json:"totalPasivoPatrimonio"`
	Types                    []*ledger.TypeTotals `json:"tipos"`
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.GroupedCatalog(r.Context())
	if err != nil {
		h.respondError(w, "balance", err)
		return
	}
	liability := totals.TypeTotal(ledger.TypeLiability)
	equity := totals.TypeTotal(ledger.TypeEquity)
	httpx.JSON(w, http.StatusOK, balanceResponse{
		Balanced:                 totals.IsBalanced(),
		TotalAsset:               totals.TypeTotal(ledger.TypeAsset),
		TotalLiability:           liability,
		TotalEquity:              equity,
		TotalLiabilityPlusEquity: liability.Add(equity),
		Types:                    totals.Types,
	})
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.GroupedCatalog(r.Context())
	if err != nil {
		h.respondError(w, "export csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="balance_cuentas.csv"`)
	if err := export.WriteBalanceCSV(w, h.displayColumn(), totals); err != nil {
		h.logger.Error("write balance csv", slog.Any("error", err))
	}
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	header, err := parseReportHeader(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	totals, err := h.service.GroupedCatalog(r.Context())
	if err != nil {
		h.respondError(w, "export pdf", err)
		return
	}

	var payload []byte
	switch layout := r.URL.Query().Get("layout"); layout {
	case "", "detalle":
		payload, err = export.BuildBalancePDF(h.displayColumn(), totals, header)
	case "resumen":
		payload, err = export.BuildBalanceSummaryPDF(totals, header)
	default:
		httpx.RespondError(w, fmt.Errorf("%w: unknown layout %q", httpx.ErrValidation, layout))
		return
	}
	if err != nil {
		h.respondError(w, "render pdf", err)
		return
	}
	httpx.Attachment(w, "balance_cuentas.pdf", "application/pdf", payload)
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.GroupedCatalog(r.Context())
	if err != nil {
		h.respondError(w, "export xlsx", err)
		return
	}
	payload, err := export.BuildBalanceXLSX(h.displayColumn(), totals)
	if err != nil {
		h.respondError(w, "render xlsx", err)
		return
	}
	httpx.Attachment(w, "balance_cuentas.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

// displayColumn adapts the classifier config into the derivation rule the
// export adapters consume, keeping the code sets in one place.
func (h *Handler) displayColumn() export.DisplayFunc {
	cfg := h.service.ClassifierConfig()
	return func(acc ledger.Account) (decimal.Decimal, bool) {
		return ledger.DepreciableDisplay(cfg, acc)
	}
}

func parseReportHeader(r *http.Request) (export.ReportHeader, error) {
	q := r.URL.Query()
	header := export.ReportHeader{Company: q.Get("empresa"), Year: q.Get("anio")}
	if header.Company == "" || header.Year == "" {
		return export.ReportHeader{}, fmt.Errorf("%w: empresa and anio are required", httpx.ErrValidation)
	}
	return header, nil
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ledger.ErrAccountNotFound) {
		httpx.RespondError(w, fmt.Errorf("%w: cuenta no encontrada", httpx.ErrNotFound))
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
