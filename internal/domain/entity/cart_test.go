package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddLine_MergesQuantities(t *testing.T) {
	t.Parallel()

	item := &Item{ID: uuid.New(), Name: "Desk Lamp", Price: 40, ImageURL: "/img/lamp.png"}
	cart := NewCart(uuid.New())

	cart.AddLine(item, 2)
	cart.AddLine(item, 3)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, "Desk Lamp", cart.Items[0].Name)
	assert.InDelta(t, 200, cart.Total, 1e-9)
}

func TestCartAddLine_SnapshotsItemFields(t *testing.T) {
	t.Parallel()

	item := &Item{ID: uuid.New(), Name: "Mug", Price: 12.5, ImageURL: "/img/mug.png"}
	cart := NewCart(uuid.New())

	cart.AddLine(item, 1)

	// Later catalog changes must not alter the snapshot
	item.Price = 99
	item.Name = "Renamed"

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Mug", cart.Items[0].Name)
	assert.InDelta(t, 12.5, cart.Items[0].Price, 1e-9)
	assert.InDelta(t, 12.5, cart.Total, 1e-9)
}

func TestCartSetLineQuantity(t *testing.T) {
	t.Parallel()

	item := &Item{ID: uuid.New(), Name: "Mug", Price: 10}
	cart := NewCart(uuid.New())
	cart.AddLine(item, 2)

	ok := cart.SetLineQuantity(item.ID, 4)

	assert.True(t, ok)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.InDelta(t, 40, cart.Total, 1e-9)
}

func TestCartSetLineQuantity_ZeroRemovesLine(t *testing.T) {
	t.Parallel()

	item := &Item{ID: uuid.New(), Name: "Mug", Price: 10}
	cart := NewCart(uuid.New())
	cart.AddLine(item, 2)

	ok := cart.SetLineQuantity(item.ID, 0)

	assert.True(t, ok)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCartSetLineQuantity_UnknownItem(t *testing.T) {
	t.Parallel()

	cart := NewCart(uuid.New())

	assert.False(t, cart.SetLineQuantity(uuid.New(), 3))
}

func TestCartRemoveLine_AbsentItemIsNoop(t *testing.T) {
	t.Parallel()

	item := &Item{ID: uuid.New(), Name: "Mug", Price: 10}
	cart := NewCart(uuid.New())
	cart.AddLine(item, 1)

	cart.RemoveLine(uuid.New())

	assert.Len(t, cart.Items, 1)
	assert.InDelta(t, 10, cart.Total, 1e-9)
}

func TestCartClear(t *testing.T) {
	t.Parallel()

	item := &Item{ID: uuid.New(), Name: "Mug", Price: 10}
	cart := NewCart(uuid.New())
	cart.AddLine(item, 3)

	cart.Clear()

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCartRecalculate_RoundsToCents(t *testing.T) {
	t.Parallel()

	cart := NewCart(uuid.New())
	cart.Items = []CartLine{
		{ItemID: uuid.New(), Quantity: 3, Price: 0.1},
	}

	cart.Recalculate()

	assert.InDelta(t, 0.3, cart.Total, 1e-9)
}
