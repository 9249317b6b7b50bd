// Package booking owns the booking draft: the transient date, time
// range, space and seat selections, the validation gate in front of
// the submit call, and the in-flight guard that keeps one user action
// from producing more than one request.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Tuammar/seatplace-cli/internal/domain"
	"github.com/Tuammar/seatplace-cli/internal/dto"
	"github.com/Tuammar/seatplace-cli/internal/logger"
)

const (
	dayLength = 24 * time.Hour
	roundStep = 30 * time.Minute

	defaultMinDuration = time.Hour
	defaultWindow      = 2 * time.Hour
)

// Notifier surfaces transient user-facing messages
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Submitter is the backend call the form makes on submit
type Submitter interface {
	CreateBooking(ctx context.Context, req dto.BookingRequest) (dto.Booking, error)
}

// Session is the part of the session manager the form depends on
type Session interface {
	IsAuthenticated() bool
}

// Config holds form settings
type Config struct {
	// MinDuration is the shortest allowed booking window
	MinDuration time.Duration
	// DefaultWindow is the window length after a reset
	DefaultWindow time.Duration
	// Clock overrides time.Now in tests
	Clock func() time.Time
}

// Draft is a snapshot of the current form state
type Draft struct {
	Date    time.Time
	Start   time.Duration
	End     time.Duration
	SpaceID string
	SeatID  string
}

// Form is the booking form controller
type Form struct {
	api     Submitter
	session Session
	catalog *Catalog
	notify  Notifier
	log     *logger.Logger

	clock       func() time.Time
	minDuration time.Duration
	window      time.Duration

	mu       sync.Mutex
	date     time.Time
	start    time.Duration
	end      time.Duration
	spaceID  string
	seatID   string
	inFlight bool
}

// NewForm creates a form with the draft reset to defaults
func NewForm(api Submitter, session Session, catalog *Catalog, notify Notifier, log *logger.Logger, cfg Config) *Form {
	if cfg.MinDuration <= 0 || cfg.MinDuration > dayLength {
		cfg.MinDuration = defaultMinDuration
	}
	if cfg.DefaultWindow <= 0 {
		cfg.DefaultWindow = defaultWindow
	}
	if cfg.DefaultWindow < cfg.MinDuration {
		cfg.DefaultWindow = cfg.MinDuration
	}
	if cfg.DefaultWindow > dayLength {
		cfg.DefaultWindow = dayLength
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if log == nil {
		log = logger.Get()
	}
	f := &Form{
		api:         api,
		session:     session,
		catalog:     catalog,
		notify:      notify,
		log:         log,
		clock:       cfg.Clock,
		minDuration: cfg.MinDuration,
		window:      cfg.DefaultWindow,
	}
	f.resetLocked()
	return f
}

// Reset restores the draft defaults: today, the current time rounded
// up, and the default window
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Form) resetLocked() {
	now := f.clock()
	f.date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	start := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute
	if rem := start % roundStep; rem != 0 {
		start += roundStep - rem
	}
	if start+f.window > dayLength {
		start = dayLength - f.window
	}
	f.start = start
	f.end = start + f.window

	f.spaceID = ""
	f.seatID = ""
}

// SetDate selects the booking date. The time-of-day part is dropped.
func (f *Form) SetDate(d time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d.IsZero() {
		f.date = time.Time{}
		return
	}
	f.date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// SetSpace selects a space filter, resets the seat selection and
// returns the seats now selectable. An empty id removes the filter.
func (f *Form) SetSpace(id string) []domain.Seat {
	f.mu.Lock()
	f.spaceID = id
	f.seatID = ""
	f.mu.Unlock()
	return f.catalog.SeatsIn(id)
}

// SetSeat selects the bookable unit. When the catalog is loaded the
// seat must exist and match the active space filter.
func (f *Form) SetSeat(id string) error {
	if id != "" && !f.catalog.Empty() {
		seat, ok := f.catalog.Seat(id)
		if !ok {
			return fmt.Errorf("unknown seat %q", id)
		}
		f.mu.Lock()
		spaceID := f.spaceID
		f.mu.Unlock()
		if spaceID != "" && seat.SpaceID != spaceID {
			return fmt.Errorf("seat %q is not in space %q", id, spaceID)
		}
	}
	f.mu.Lock()
	f.seatID = id
	f.mu.Unlock()
	return nil
}

// SetStart moves the start handle. When it crosses the end handle,
// the end is pushed forward by the minimal amount that keeps the
// minimum duration; the range never leaves [00:00, 24:00].
func (f *Form) SetStart(start time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.start = clampDuration(start, 0, dayLength-f.minDuration)
	if f.end < f.start+f.minDuration {
		f.end = f.start + f.minDuration
	}
}

// SetEnd moves the end handle, pulling the start back minimally when
// the handles would cross
func (f *Form) SetEnd(end time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.end = clampDuration(end, f.minDuration, dayLength)
	if f.start > f.end-f.minDuration {
		f.start = f.end - f.minDuration
	}
}

// SetTimeRange sets both handles at once. The start is authoritative:
// an end closer than the minimum duration is pushed forward.
func (f *Form) SetTimeRange(start, end time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.start = clampDuration(start, 0, dayLength-f.minDuration)
	f.end = clampDuration(end, f.start+f.minDuration, dayLength)
}

// wallClock resolves a clock offset against a date by calendar
// components. Adding the offset as an absolute duration onto midnight
// would drift by an hour on days with a DST transition.
func wallClock(date time.Time, at time.Duration) time.Time {
	h := int(at / time.Hour)
	m := int(at % time.Hour / time.Minute)
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

// Range returns the current time range
func (f *Form) Range() (start, end time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.start, f.end
}

// Draft returns a snapshot of the form state
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Draft{
		Date:    f.date,
		Start:   f.start,
		End:     f.end,
		SpaceID: f.spaceID,
		SeatID:  f.seatID,
	}
}

// Validate checks the draft is submittable
func (f *Form) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() error {
	if f.date.IsZero() {
		return fmt.Errorf("%w: date is not set", domain.ErrIncompleteDraft)
	}
	if f.seatID == "" {
		return fmt.Errorf("%w: seat is not set", domain.ErrIncompleteDraft)
	}
	if f.end <= f.start {
		return domain.ErrInvalidRange
	}
	return nil
}

// Submit validates the draft and issues exactly one POST /bookings.
// While a submission is outstanding further submits are rejected
// without touching the network. On success the draft resets to
// defaults; on failure it is preserved so the user can retry.
func (f *Form) Submit(ctx context.Context) (*dto.Booking, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		f.notify.Failure("A booking is already being submitted")
		return nil, domain.ErrSubmitInFlight
	}
	if err := f.validateLocked(); err != nil {
		f.mu.Unlock()
		if errors.Is(err, domain.ErrInvalidRange) {
			f.notify.Failure("End time must be after start time")
		} else {
			f.notify.Failure("Please fill in all fields")
		}
		return nil, err
	}
	if !f.session.IsAuthenticated() {
		f.mu.Unlock()
		f.notify.Failure("You are not logged in")
		return nil, domain.ErrNotAuthenticated
	}
	req := dto.NewBookingRequest(f.seatID, wallClock(f.date, f.start), wallClock(f.date, f.end))
	f.inFlight = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
	}()

	booking, err := f.api.CreateBooking(ctx, req)
	if err != nil {
		f.log.Warn("Booking submission failed", zap.Error(err))
		f.notify.Failure("Failed to create booking")
		return nil, err
	}

	f.notify.Success("Booking created")
	f.mu.Lock()
	f.resetLocked()
	f.mu.Unlock()
	return &booking, nil
}
