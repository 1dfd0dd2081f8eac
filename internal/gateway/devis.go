package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/demeco/devis-console/internal/models"
)

// ListDevis fetches all devis
func (g *Gateway) ListDevis(ctx context.Context) ([]models.Devis, error) {
	var devis []models.Devis
	if err := g.get(ctx, "/devis", &devis); err != nil {
		return nil, err
	}
	return devis, nil
}

// GetDevis fetches one devis by identifier
func (g *Gateway) GetDevis(ctx context.Context, id int64) (*models.Devis, error) {
	var devis models.Devis
	if err := g.get(ctx, idPath("/devis", id, ""), &devis); err != nil {
		return nil, err
	}
	return &devis, nil
}

// CreateDevis creates a devis and returns the server-assigned record
func (g *Gateway) CreateDevis(ctx context.Context, devis *models.Devis) (*models.Devis, error) {
	var created models.Devis
	if err := g.do(ctx, http.MethodPost, "/devis", nil, devis, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDevis updates a devis in place by identifier
func (g *Gateway) UpdateDevis(ctx context.Context, id int64, devis *models.Devis) (*models.Devis, error) {
	var updated models.Devis
	if err := g.do(ctx, http.MethodPut, idPath("/devis", id, ""), nil, devis, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDevis deletes a devis
func (g *Gateway) DeleteDevis(ctx context.Context, id int64) error {
	return g.do(ctx, http.MethodDelete, idPath("/devis", id, ""), nil, nil, nil)
}

// ListDevisByClient fetches the devis owned by one client
func (g *Gateway) ListDevisByClient(ctx context.Context, clientID int64) ([]models.Devis, error) {
	var devis []models.Devis
	if err := g.get(ctx, idPath("/devis/client", clientID, ""), &devis); err != nil {
		return nil, err
	}
	return devis, nil
}

// ListDevisByStatus fetches the devis currently in the given status
func (g *Gateway) ListDevisByStatus(ctx context.Context, statut models.Statut) ([]models.Devis, error) {
	var devis []models.Devis
	if err := g.get(ctx, "/devis/statut/"+url.PathEscape(statut.String()), &devis); err != nil {
		return nil, err
	}
	return devis, nil
}

// ListStatuses fetches the status values known to the backend
func (g *Gateway) ListStatuses(ctx context.Context) ([]models.Statut, error) {
	var statuts []models.Statut
	if err := g.get(ctx, "/devis/statuts", &statuts); err != nil {
		return nil, err
	}
	return statuts, nil
}

// UpdateStatus performs a manual status change and returns the updated devis
func (g *Gateway) UpdateStatus(ctx context.Context, id int64, statut models.Statut) (*models.Devis, error) {
	query := url.Values{"statut": {statut.String()}}
	var updated models.Devis
	if err := g.do(ctx, http.MethodPatch, idPath("/devis", id, "/statut"), query, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SendByEmail asks the backend to send the devis by email and returns the
// updated devis
func (g *Gateway) SendByEmail(ctx context.Context, id int64, email string) (*models.Devis, error) {
	query := url.Values{"email": {email}}
	var updated models.Devis
	if err := g.do(ctx, http.MethodPost, idPath("/devis", id, "/envoyer-email"), query, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SendBySms asks the backend to send the devis by SMS and returns the
// updated devis
func (g *Gateway) SendBySms(ctx context.Context, id int64, phone string) (*models.Devis, error) {
	query := url.Values{"numeroTelephone": {phone}}
	var updated models.Devis
	if err := g.do(ctx, http.MethodPost, idPath("/devis", id, "/envoyer-sms"), query, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
