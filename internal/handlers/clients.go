package handlers

import (
	"net/http"

	"github.com/demeco/devis-console/internal/console"
	"github.com/demeco/devis-console/internal/logger"
	"github.com/demeco/devis-console/internal/models"
)

// ClientHandler serves the client resource routes
type ClientHandler struct {
	clients *console.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients *console.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// List handles GET /api/clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Every read is a fresh fetch from the backend
	if err := h.clients.Refresh(ctx); err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, h.clients.All())
}

// Get handles GET /api/clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, ctx, http.StatusBadRequest, "invalid client id")
		return
	}

	client, err := h.clients.Get(ctx, id)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, client)
}

// Create handles POST /api/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var client models.Client
	if err := decodeBody(r, &client); err != nil {
		logger.LogError(ctx, "Malformed client payload", err)
		respondError(w, ctx, http.StatusBadRequest, "malformed JSON payload")
		return
	}

	created, err := h.clients.Create(ctx, &client)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusCreated, created)
}

// Update handles PUT /api/clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, ctx, http.StatusBadRequest, "invalid client id")
		return
	}

	var client models.Client
	if err := decodeBody(r, &client); err != nil {
		logger.LogError(ctx, "Malformed client payload", err)
		respondError(w, ctx, http.StatusBadRequest, "malformed JSON payload")
		return
	}

	updated, err := h.clients.Update(ctx, id, &client)
	if err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusOK, updated)
}

// Delete handles DELETE /api/clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, false)
}

// ForceDelete handles DELETE /api/clients/{id}/force
func (h *ClientHandler) ForceDelete(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, true)
}

func (h *ClientHandler) delete(w http.ResponseWriter, r *http.Request, force bool) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, ctx, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := h.clients.Delete(ctx, id, force); err != nil {
		respondServiceError(w, ctx, err)
		return
	}
	respondJSON(w, ctx, http.StatusNoContent, nil)
}
