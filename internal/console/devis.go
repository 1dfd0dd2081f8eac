// Package console holds the stateful services behind the HTTP surface.
// Each service owns its fetched collection exclusively and mutates it only
// by full entity replacement, mirroring what the rendering layer expects.
package console

import (
	"context"

	"github.com/demeco/devis-console/internal/gateway"
	"github.com/demeco/devis-console/internal/logger"
	"github.com/demeco/devis-console/internal/models"
	"github.com/demeco/devis-console/internal/policy"
	"github.com/demeco/devis-console/internal/store"
)

// DevisService coordinates the devis collection, the lifecycle policy and
// the backend gateway. Every read refreshes from the backend first; there
// is no cache surviving between requests.
type DevisService struct {
	gateway    *gateway.Gateway
	policy     *policy.Policy
	collection *store.DevisCollection
}

// NewDevisService creates a DevisService over the given gateway
func NewDevisService(gw *gateway.Gateway, p *policy.Policy) *DevisService {
	return &DevisService{
		gateway:    gw,
		policy:     p,
		collection: store.NewDevisCollection(),
	}
}

// Policy exposes the lifecycle policy for eligibility queries
func (s *DevisService) Policy() *policy.Policy {
	return s.policy
}

// Refresh replaces the collection with a fresh fetch from the backend
func (s *DevisService) Refresh(ctx context.Context) error {
	devis, err := s.gateway.ListDevis(ctx)
	if err != nil {
		return err
	}
	s.collection.ReplaceAll(devis)
	return nil
}

// All returns the devis currently held, in fetch order
func (s *DevisService) All() []models.Devis {
	return s.collection.All()
}

// Get returns the devis with the given identifier from the collection,
// falling back to a direct fetch when it is not held locally
func (s *DevisService) Get(ctx context.Context, id int64) (*models.Devis, error) {
	if d, ok := s.collection.Get(id); ok {
		return &d, nil
	}
	return s.gateway.GetDevis(ctx, id)
}

// Create validates and creates a devis. New devis always start as drafts;
// derived fields are recomputed locally so the payload is consistent
// before it leaves the process.
func (s *DevisService) Create(ctx context.Context, d *models.Devis) (*models.Devis, error) {
	d.NormalizeDates()
	d.RecomputeArrhes()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.Statut = models.StatutBrouillon

	created, err := s.gateway.CreateDevis(ctx, d)
	if err != nil {
		return nil, err
	}
	s.collection.Upsert(*created)
	logger.Info(ctx, "Created devis", "devis_id", created.ID, "client_id", created.ClientID)
	return created, nil
}

// Update validates and updates a devis in place. Content edits are only
// legal while the devis is a draft.
func (s *DevisService) Update(ctx context.Context, id int64, d *models.Devis) (*models.Devis, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanEdit(current) {
		return nil, models.NewInvalidTransitionError(id, current.Statut, string(policy.ActionEdit))
	}

	d.NormalizeDates()
	d.RecomputeArrhes()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.gateway.UpdateDevis(ctx, id, d)
	if err != nil {
		return nil, err
	}
	s.collection.Apply(*updated)
	return updated, nil
}

// Delete deletes a devis. Deletion is allowed in every status.
func (s *DevisService) Delete(ctx context.Context, id int64) error {
	if err := s.gateway.DeleteDevis(ctx, id); err != nil {
		return err
	}
	s.collection.Remove(id)
	logger.Info(ctx, "Deleted devis", "devis_id", id)
	return nil
}

// ByClient fetches the devis owned by one client
func (s *DevisService) ByClient(ctx context.Context, clientID int64) ([]models.Devis, error) {
	return s.gateway.ListDevisByClient(ctx, clientID)
}

// ByStatus fetches the devis currently in the given status
func (s *DevisService) ByStatus(ctx context.Context, statut models.Statut) ([]models.Devis, error) {
	return s.gateway.ListDevisByStatus(ctx, statut)
}

// Statuses fetches the status values known to the backend
func (s *DevisService) Statuses(ctx context.Context) ([]models.Statut, error) {
	return s.gateway.ListStatuses(ctx)
}

// SendByEmail sends a devis by email through the lifecycle policy and
// applies the updated record to the collection. The response is dropped
// when the devis was deleted while the request was in flight.
func (s *DevisService) SendByEmail(ctx context.Context, id int64, email string) (*models.Devis, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.policy.SendByEmail(ctx, current, email)
	if err != nil {
		return nil, err
	}
	s.applyTransition(ctx, updated)
	return updated, nil
}

// SendBySms sends a devis by SMS through the lifecycle policy and applies
// the updated record to the collection
func (s *DevisService) SendBySms(ctx context.Context, id int64, phone string) (*models.Devis, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.policy.SendBySms(ctx, current, phone)
	if err != nil {
		return nil, err
	}
	s.applyTransition(ctx, updated)
	return updated, nil
}

// SetStatus records a manual decision through the lifecycle policy and
// applies the updated record to the collection
func (s *DevisService) SetStatus(ctx context.Context, id int64, target models.Statut) (*models.Devis, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.policy.SetStatus(ctx, current, target)
	if err != nil {
		return nil, err
	}
	s.applyTransition(ctx, updated)
	return updated, nil
}

// applyTransition replaces the local record with the server's version,
// unless the record disappeared while the request was pending
func (s *DevisService) applyTransition(ctx context.Context, updated *models.Devis) {
	if !s.collection.Apply(*updated) {
		logger.Warn(ctx, "Dropped stale transition response for deleted devis", "devis_id", updated.ID)
	}
}
