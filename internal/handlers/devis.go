package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/demeco/devis-console/internal/console"
	"github.com/demeco/devis-console/internal/logger"
	"github.com/demeco/devis-console/internal/models"
)

// DevisHandler serves the devis resource and lifecycle routes
type DevisHandler struct {
	devis *console.DevisService
}

// NewDevisHandler creates a new DevisHandler
func NewDevisHandler(devis *console.DevisService) *DevisHandler {
	return &DevisHandler{devis: devis}
}

// List handles GET /api/devis
func (h *DevisHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Every read is a fresh fetch from the backend
	if err := h.devis.Refresh(ctx); err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, h.devis.All())
}

// Get handles GET /api/devis/{id}
func (h *DevisHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, id, ok := h.devisID(w, r)
	if !ok {
		return
	}

	devis, err := h.devis.Get(ctx, id)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, devis)
}

// Create handles POST /api/devis
func (h *DevisHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var devis models.Devis
	if err := decodeBody(r, &devis); err != nil {
		logger.LogError(ctx, "Malformed devis payload", err)
		respondError(w, ctx, http.StatusBadRequest, "malformed JSON payload")
		return
	}

	created, err := h.devis.Create(ctx, &devis)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusCreated, created)
}

// Update handles PUT /api/devis/{id}
func (h *DevisHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, id, ok := h.devisID(w, r)
	if !ok {
		return
	}

	var devis models.Devis
	if err := decodeBody(r, &devis); err != nil {
		logger.LogError(ctx, "Malformed devis payload", err)
		respondError(w, ctx, http.StatusBadRequest, "malformed JSON payload")
		return
	}

	updated, err := h.devis.Update(ctx, id, &devis)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, updated)
}

// Delete handles DELETE /api/devis/{id}
func (h *DevisHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, id, ok := h.devisID(w, r)
	if !ok {
		return
	}

	if err := h.devis.Delete(ctx, id); err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusNoContent, nil)
}

// ByClient handles GET /api/devis/client/{clientId}
func (h *DevisHandler) ByClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID, err := pathID(r, "clientId")
	if err != nil {
		respondError(w, ctx, http.StatusBadRequest, "invalid client id")
		return
	}

	devis, err := h.devis.ByClient(ctx, clientID)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, devis)
}

// ByStatus handles GET /api/devis/statut/{statut}
func (h *DevisHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	statut := models.Statut(mux.Vars(r)["statut"])
	if !statut.IsValid() {
		respondError(w, ctx, http.StatusBadRequest, "statut inconnu")
		return
	}

	devis, err := h.devis.ByStatus(ctx, statut)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, devis)
}

// Statuses handles GET /api/devis/statuts
func (h *DevisHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statuts, err := h.devis.Statuses(ctx)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, statuts)
}

// UpdateStatus handles PATCH /api/devis/{id}/statut?statut=
func (h *DevisHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, id, ok := h.devisID(w, r)
	if !ok {
		return
	}

	statut := models.Statut(r.URL.Query().Get("statut"))
	if !statut.IsValid() {
		respondError(w, ctx, http.StatusBadRequest, "statut inconnu")
		return
	}

	updated, err := h.devis.SetStatus(ctx, id, statut)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, updated)
}

// SendEmail handles POST /api/devis/{id}/envoyer-email?email=
func (h *DevisHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	ctx, id, ok := h.devisID(w, r)
	if !ok {
		return
	}

	updated, err := h.devis.SendByEmail(ctx, id, r.URL.Query().Get("email"))
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, updated)
}

// SendSms handles POST /api/devis/{id}/envoyer-sms?numeroTelephone=
func (h *DevisHandler) SendSms(w http.ResponseWriter, r *http.Request) {
	ctx, id, ok := h.devisID(w, r)
	if !ok {
		return
	}

	updated, err := h.devis.SendBySms(ctx, id, r.URL.Query().Get("numeroTelephone"))
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, updated)
}

// Actions handles GET /api/devis/{id}/actions: the actions currently legal
// for the devis, so every rendering surface shares one eligibility source
func (h *DevisHandler) Actions(w http.ResponseWriter, r *http.Request) {
	ctx, id, ok := h.devisID(w, r)
	if !ok {
		return
	}

	devis, err := h.devis.Get(ctx, id)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, h.devis.Policy().AvailableActions(devis))
}

// devisID extracts the devis identifier and tags the logging context with it
func (h *DevisHandler) devisID(w http.ResponseWriter, r *http.Request) (context.Context, int64, bool) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, ctx, http.StatusBadRequest, "invalid devis id")
		return ctx, 0, false
	}
	return context.WithValue(ctx, logger.DevisIDKey, id), id, true
}
