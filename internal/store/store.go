// Package store holds the in-memory collections of clients and devis that
// a consumer owns after fetching them. Mutation is always by full
// replacement of the affected entity, never partial field update, and a
// server response is applied only while the entity still exists locally:
// a record deleted while a request was in flight simply drops the stale
// response.
package store

import (
	"sync"

	"github.com/demeco/devis-console/internal/models"
)

// DevisCollection is an identifier-keyed set of devis preserving fetch order
type DevisCollection struct {
	mu    sync.RWMutex
	byID  map[int64]models.Devis
	order []int64
}

// NewDevisCollection creates an empty devis collection
func NewDevisCollection() *DevisCollection {
	return &DevisCollection{
		byID: make(map[int64]models.Devis),
	}
}

// ReplaceAll swaps the whole collection for a freshly fetched list
func (c *DevisCollection) ReplaceAll(devis []models.Devis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = make(map[int64]models.Devis, len(devis))
	c.order = c.order[:0]
	for _, d := range devis {
		if _, seen := c.byID[d.ID]; !seen {
			c.order = append(c.order, d.ID)
		}
		c.byID[d.ID] = d
	}
}

// Get returns a copy of the devis with the given identifier
func (c *DevisCollection) Get(id int64) (models.Devis, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.byID[id]
	return d, ok
}

// All returns the devis in fetch order
func (c *DevisCollection) All() []models.Devis {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Devis, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of devis held
func (c *DevisCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.byID)
}

// Upsert replaces the devis at its identifier, appending it when new
func (c *DevisCollection) Upsert(d models.Devis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[d.ID]; !exists {
		c.order = append(c.order, d.ID)
	}
	c.byID[d.ID] = d
}

// Apply replaces the devis at its identifier only when it is still present.
// It returns false when the record was removed while the response that
// produced d was in flight.
func (c *DevisCollection) Apply(d models.Devis) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[d.ID]; !exists {
		return false
	}
	c.byID[d.ID] = d
	return true
}

// Remove deletes the devis with the given identifier
func (c *DevisCollection) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[id]; !exists {
		return
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// ClientCollection is an identifier-keyed set of clients preserving fetch order
type ClientCollection struct {
	mu    sync.RWMutex
	byID  map[int64]models.Client
	order []int64
}

// NewClientCollection creates an empty client collection
func NewClientCollection() *ClientCollection {
	return &ClientCollection{
		byID: make(map[int64]models.Client),
	}
}

// ReplaceAll swaps the whole collection for a freshly fetched list
func (c *ClientCollection) ReplaceAll(clients []models.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = make(map[int64]models.Client, len(clients))
	c.order = c.order[:0]
	for _, client := range clients {
		if _, seen := c.byID[client.ID]; !seen {
			c.order = append(c.order, client.ID)
		}
		c.byID[client.ID] = client
	}
}

// Get returns a copy of the client with the given identifier
func (c *ClientCollection) Get(id int64) (models.Client, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	client, ok := c.byID[id]
	return client, ok
}

// All returns the clients in fetch order
func (c *ClientCollection) All() []models.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Client, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of clients held
func (c *ClientCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.byID)
}

// Upsert replaces the client at its identifier, appending it when new
func (c *ClientCollection) Upsert(client models.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[client.ID]; !exists {
		c.order = append(c.order, client.ID)
	}
	c.byID[client.ID] = client
}

// Apply replaces the client at its identifier only when it is still present
func (c *ClientCollection) Apply(client models.Client) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[client.ID]; !exists {
		return false
	}
	c.byID[client.ID] = client
	return true
}

// Remove deletes the client with the given identifier
func (c *ClientCollection) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[id]; !exists {
		return
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
