package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/demeco/devis-console/internal/console"
	"github.com/demeco/devis-console/internal/dashboard"
)

// DashboardHandler serves the aggregate statistics routes. Each request
// refreshes both collections and runs the pure aggregator over them.
type DashboardHandler struct {
	clients *console.ClientService
	devis   *console.DevisService
	now     func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(clients *console.ClientService, devis *console.DevisService) *DashboardHandler {
	return &DashboardHandler{
		clients: clients,
		devis:   devis,
		now:     time.Now,
	}
}

// refresh re-fetches both collections from the backend
func (h *DashboardHandler) refresh(ctx context.Context) error {
	if err := h.clients.Refresh(ctx); err != nil {
		return err
	}
	return h.devis.Refresh(ctx)
}

// Summary handles GET /api/dashboard/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.refresh(ctx); err != nil {
		respondServiceError(w, ctx, err)
		return
	}

	summary := dashboard.ComputeSummary(h.clients.All(), h.devis.All(), h.now())
	respondJSON(w, ctx, http.StatusOK, summary)
}

// Monthly handles GET /api/dashboard/monthly?months=
func (h *DashboardHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.devis.Refresh(ctx); err != nil {
		respondServiceError(w, ctx, err)
		return
	}

	months := queryInt(r, "months", dashboard.DefaultMonthsBack)
	series := dashboard.MonthlySeries(h.devis.All(), h.now(), months)
	respondJSON(w, ctx, http.StatusOK, series)
}

// Recent handles GET /api/dashboard/recent?limit=
func (h *DashboardHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.devis.Refresh(ctx); err != nil {
		respondServiceError(w, ctx, err)
		return
	}

	limit := queryInt(r, "limit", dashboard.DefaultRecentLimit)
	respondJSON(w, ctx, http.StatusOK, dashboard.RecentDevis(h.devis.All(), limit))
}

// Repartition handles GET /api/dashboard/repartition
func (h *DashboardHandler) Repartition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.devis.Refresh(ctx); err != nil {
		respondServiceError(w, ctx, err)
		return
	}

	respondJSON(w, ctx, http.StatusOK, dashboard.StatusDistribution(h.devis.All()))
}

// queryInt reads a positive integer query parameter with a default
func queryInt(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
