package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/Tuammar/seatplace-cli/internal/domain"
	"github.com/Tuammar/seatplace-cli/internal/dto"
)

// SeatLister is the backend query the catalog is built from
type SeatLister interface {
	SeatPlaces(ctx context.Context) ([]dto.SeatPlace, error)
}

// Catalog holds the seat places known to the backend, grouped into
// spaces. Seat lookup is a collaborator query, not embedded data.
type Catalog struct {
	api SeatLister

	mu    sync.RWMutex
	seats []domain.Seat
}

// NewCatalog creates an empty catalog over the given API
func NewCatalog(api SeatLister) *Catalog {
	return &Catalog{api: api}
}

// Refresh reloads the seat list from the backend. A seat entry
// without space fields forms a single-seat space of its own.
func (c *Catalog) Refresh(ctx context.Context) error {
	places, err := c.api.SeatPlaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to load seat places: %w", err)
	}

	seats := make([]domain.Seat, 0, len(places))
	for _, p := range places {
		seat := domain.Seat{
			ID:        p.ID,
			Name:      p.Name,
			SpaceID:   p.SpaceID,
			SpaceName: p.SpaceName,
		}
		if seat.SpaceID == "" {
			seat.SpaceID = p.ID
			seat.SpaceName = p.Name
		}
		seats = append(seats, seat)
	}

	c.mu.Lock()
	c.seats = seats
	c.mu.Unlock()
	return nil
}

// Seats returns every known seat
func (c *Catalog) Seats() []domain.Seat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Seat(nil), c.seats...)
}

// SeatsIn returns the seats belonging to a space. An empty spaceID
// returns every seat.
func (c *Catalog) SeatsIn(spaceID string) []domain.Seat {
	if spaceID == "" {
		return c.Seats()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []domain.Seat
	for _, s := range c.seats {
		if s.SpaceID == spaceID {
			out = append(out, s)
		}
	}
	return out
}

// Spaces returns the known spaces in first-seen order
func (c *Catalog) Spaces() []domain.Space {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var spaces []domain.Space
	index := make(map[string]int)
	for _, s := range c.seats {
		i, ok := index[s.SpaceID]
		if !ok {
			i = len(spaces)
			index[s.SpaceID] = i
			spaces = append(spaces, domain.Space{ID: s.SpaceID, Name: s.SpaceName})
		}
		spaces[i].Seats = append(spaces[i].Seats, s)
	}
	return spaces
}

// Seat looks a seat up by ID
func (c *Catalog) Seat(id string) (domain.Seat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.seats {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Seat{}, false
}

// Empty reports whether the catalog has been loaded
func (c *Catalog) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.seats) == 0
}
