package ledgerhttp

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers catalog and balance endpoints onto the router.
// Export endpoints get a tighter per-client rate limit because rendering
// is the most expensive thing this service does.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}

	r.Get("/cuentas", h.handleListAccounts)
	r.Get("/cuentas/{codigo}", h.handleAccountByCode)
	r.Put("/cuentas/{id}/monto", h.handleAssignAmount)
	r.Post("/cuentas/reset", h.handleReset)
	r.Get("/catalogo_cuentas", h.handleCatalog)
	r.Get("/catalogo_cuentas_tipo", h.handleGroupedCatalog)
	r.Get("/balance", h.handleBalance)

	r.Group(func(gr chi.Router) {
		gr.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		gr.Get("/balance/export.csv", h.handleExportCSV)
		gr.Get("/balance/export.pdf", h.handleExportPDF)
		gr.Get("/balance/export.xlsx", h.handleExportXLSX)
	})
}
