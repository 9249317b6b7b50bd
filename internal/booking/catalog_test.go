package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tuammar/seatplace-cli/internal/dto"
)

// mockSeatLister is a mock implementation of SeatLister
type mockSeatLister struct {
	seats []dto.SeatPlace
	err   error
	calls int
}

func (m *mockSeatLister) SeatPlaces(ctx context.Context) ([]dto.SeatPlace, error) {
	m.calls++
	return m.seats, m.err
}

func TestCatalogRefreshGroupsSpaces(t *testing.T) {
	lister := &mockSeatLister{seats: []dto.SeatPlace{
		{ID: "cw1-s1", Name: "Seat 1", SpaceID: "cw1", SpaceName: "Coworking 1"},
		{ID: "cw1-s2", Name: "Seat 2", SpaceID: "cw1", SpaceName: "Coworking 1"},
		{ID: "lib1-s1", Name: "Seat 1", SpaceID: "lib1", SpaceName: "Library 1"},
	}}
	c := NewCatalog(lister)
	require.NoError(t, c.Refresh(context.Background()))

	spaces := c.Spaces()
	require.Len(t, spaces, 2)
	assert.Equal(t, "cw1", spaces[0].ID)
	assert.Len(t, spaces[0].Seats, 2)
	assert.Equal(t, "lib1", spaces[1].ID)
	assert.Len(t, spaces[1].Seats, 1)

	assert.Len(t, c.SeatsIn("cw1"), 2)
	assert.Len(t, c.SeatsIn(""), 3, "empty space filter returns every seat")
	assert.Empty(t, c.SeatsIn("unknown"))
}

func TestCatalogFlatSeatListFallback(t *testing.T) {
	// Older backends return seats without space fields
	lister := &mockSeatLister{seats: []dto.SeatPlace{
		{ID: "1", Name: "Coworking 1"},
		{ID: "2", Name: "Library 1"},
	}}
	c := NewCatalog(lister)
	require.NoError(t, c.Refresh(context.Background()))

	spaces := c.Spaces()
	require.Len(t, spaces, 2, "each flat seat forms its own space")
	assert.Equal(t, "Coworking 1", spaces[0].Name)

	seat, ok := c.Seat("1")
	require.True(t, ok)
	assert.Equal(t, "1", seat.SpaceID)
}

func TestCatalogRefreshError(t *testing.T) {
	lister := &mockSeatLister{err: errors.New("backend down")}
	c := NewCatalog(lister)

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, c.Empty())
}
