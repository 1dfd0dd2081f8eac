package console

import (
	"context"

	"github.com/demeco/devis-console/internal/gateway"
	"github.com/demeco/devis-console/internal/logger"
	"github.com/demeco/devis-console/internal/models"
	"github.com/demeco/devis-console/internal/store"
)

// ClientService coordinates the client collection and the backend gateway
type ClientService struct {
	gateway    *gateway.Gateway
	collection *store.ClientCollection
}

// NewClientService creates a ClientService over the given gateway
func NewClientService(gw *gateway.Gateway) *ClientService {
	return &ClientService{
		gateway:    gw,
		collection: store.NewClientCollection(),
	}
}

// Refresh replaces the collection with a fresh fetch from the backend
func (s *ClientService) Refresh(ctx context.Context) error {
	clients, err := s.gateway.ListClients(ctx)
	if err != nil {
		return err
	}
	s.collection.ReplaceAll(clients)
	return nil
}

// All returns the clients currently held, in fetch order
func (s *ClientService) All() []models.Client {
	return s.collection.All()
}

// Get returns the client with the given identifier from the collection,
// falling back to a direct fetch when it is not held locally
func (s *ClientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	if c, ok := s.collection.Get(id); ok {
		return &c, nil
	}
	return s.gateway.GetClient(ctx, id)
}

// Create validates and creates a client
func (s *ClientService) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	created, err := s.gateway.CreateClient(ctx, c)
	if err != nil {
		return nil, err
	}
	s.collection.Upsert(*created)
	logger.Info(ctx, "Created client", "client_id", created.ID)
	return created, nil
}

// Update validates and updates a client in place
func (s *ClientService) Update(ctx context.Context, id int64, c *models.Client) (*models.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.gateway.UpdateClient(ctx, id, c)
	if err != nil {
		return nil, err
	}
	s.collection.Apply(*updated)
	return updated, nil
}

// Delete deletes a client. With force set, associated devis are deleted
// with it; otherwise the backend decides whether the deletion is allowed.
func (s *ClientService) Delete(ctx context.Context, id int64, force bool) error {
	var err error
	if force {
		err = s.gateway.ForceDeleteClient(ctx, id)
	} else {
		err = s.gateway.DeleteClient(ctx, id)
	}
	if err != nil {
		return err
	}
	s.collection.Remove(id)
	logger.Info(ctx, "Deleted client", "client_id", id, "force", force)
	return nil
}
