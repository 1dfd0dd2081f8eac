package gateway

import (
	"context"
	"net/http"

	"github.com/demeco/devis-console/internal/models"
)

// ListClients fetches all clients
func (g *Gateway) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := g.get(ctx, "/clients", &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// GetClient fetches one client by identifier
func (g *Gateway) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	if err := g.get(ctx, idPath("/clients", id, ""), &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateClient creates a client and returns the server-assigned record
func (g *Gateway) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	var created models.Client
	if err := g.do(ctx, http.MethodPost, "/clients", nil, client, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateClient updates a client in place by identifier
func (g *Gateway) UpdateClient(ctx context.Context, id int64, client *models.Client) (*models.Client, error) {
	var updated models.Client
	if err := g.do(ctx, http.MethodPut, idPath("/clients", id, ""), nil, client, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteClient deletes a client. The backend refuses when the client still
// has associated devis; ForceDeleteClient overrides that.
func (g *Gateway) DeleteClient(ctx context.Context, id int64) error {
	return g.do(ctx, http.MethodDelete, idPath("/clients", id, ""), nil, nil, nil)
}

// ForceDeleteClient deletes a client together with its associated devis
func (g *Gateway) ForceDeleteClient(ctx context.Context, id int64) error {
	return g.do(ctx, http.MethodDelete, idPath("/clients", id, "/force"), nil, nil, nil)
}
