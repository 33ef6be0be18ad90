package catalog

import (
	"testing"

	"leaf-and-fork/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	items := cat.Items()
	require.Len(t, items, 6)

	item, err := cat.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Quinoa Power Bowl", item.Name)
	assert.Equal(t, 12.99, item.Price)
	assert.Equal(t, 420, item.Calories)
}

func TestItemsSkipsInactiveEntries(t *testing.T) {
	cat := New([]domain.MenuItem{
		{ID: 1, Name: "Quinoa Power Bowl", Price: 12.99, Active: true},
		{ID: 2, Name: "Seasonal Special", Price: 9.99, Active: false},
	})

	items := cat.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)

	// Inactive items stay resolvable by id for old carts.
	_, err := cat.Get(2)
	assert.NoError(t, err)
}

func TestGetUnknownItem(t *testing.T) {
	cat := Default()

	_, err := cat.Get(999)
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
}
