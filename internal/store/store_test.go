package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demeco/devis-console/internal/models"
)

func devisWith(id int64, statut models.Statut) models.Devis {
	return models.Devis{
		ID:        id,
		Statut:    statut,
		DateDevis: models.NewDateOnly(2024, time.March, int(id%28)+1),
	}
}

func TestDevisCollection_ReplaceAllKeepsFetchOrder(t *testing.T) {
	c := NewDevisCollection()
	c.ReplaceAll([]models.Devis{
		devisWith(3, models.StatutEnvoye),
		devisWith(1, models.StatutBrouillon),
		devisWith(2, models.StatutAccepte),
	})

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, 3, c.Len())
}

func TestDevisCollection_ApplyReplacesOnlyWhenPresent(t *testing.T) {
	c := NewDevisCollection()
	c.ReplaceAll([]models.Devis{devisWith(1, models.StatutBrouillon)})

	updated := devisWith(1, models.StatutEnvoye)
	require.True(t, c.Apply(updated))

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.StatutEnvoye, got.Statut)

	// A record deleted while a request was in flight drops the stale response
	c.Remove(1)
	assert.False(t, c.Apply(devisWith(1, models.StatutAccepte)))
	assert.Equal(t, 0, c.Len())
}

func TestDevisCollection_UpsertAppendsNewAndReplacesExisting(t *testing.T) {
	c := NewDevisCollection()
	c.Upsert(devisWith(1, models.StatutBrouillon))
	c.Upsert(devisWith(2, models.StatutBrouillon))
	c.Upsert(devisWith(1, models.StatutEnvoye))

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, models.StatutEnvoye, all[0].Statut)
}

func TestDevisCollection_RemovePreservesOrder(t *testing.T) {
	c := NewDevisCollection()
	c.ReplaceAll([]models.Devis{
		devisWith(1, models.StatutBrouillon),
		devisWith(2, models.StatutBrouillon),
		devisWith(3, models.StatutBrouillon),
	})

	c.Remove(2)
	c.Remove(42) // unknown id is harmless

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, []int64{1, 3}, []int64{all[0].ID, all[1].ID})
}

func TestClientCollection_Basics(t *testing.T) {
	c := NewClientCollection()
	c.ReplaceAll([]models.Client{
		{ID: 1, Nom: "Dupont", Email: "dupont@example.com"},
		{ID: 2, Nom: "Martin", Email: "martin@example.com"},
	})

	got, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Martin", got.Nom)

	require.True(t, c.Apply(models.Client{ID: 2, Nom: "Martin-Durand", Email: "martin@example.com"}))
	got, _ = c.Get(2)
	assert.Equal(t, "Martin-Durand", got.Nom)

	c.Remove(1)
	assert.False(t, c.Apply(models.Client{ID: 1, Nom: "Dupont"}))
	assert.Equal(t, 1, c.Len())

	c.Upsert(models.Client{ID: 3, Nom: "Petit", Email: "petit@example.com"})
	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, []int64{2, 3}, []int64{all[0].ID, all[1].ID})
}
