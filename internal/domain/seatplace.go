package domain

// Seat is the smallest bookable unit within a space
type Seat struct {
	ID        string
	Name      string
	SpaceID   string
	SpaceName string
}

// Space is a bookable area (coworking area, library room)
// containing zero or more seats
type Space struct {
	ID    string
	Name  string
	Seats []Seat
}
