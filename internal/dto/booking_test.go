package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingRequestFormat(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	end := time.Date(2024, 5, 1, 11, 0, 0, 0, time.Local)

	req := NewBookingRequest("cw1-s1", start, end)

	assert.Equal(t, "cw1-s1", req.SeatplaceID)
	assert.Equal(t, "2024-05-01T09:00:00", req.StartTime)
	assert.Equal(t, "2024-05-01T11:00:00", req.EndTime)
}

func TestBookingRequestWireNames(t *testing.T) {
	req := NewBookingRequest("cw1-s1",
		time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local),
		time.Date(2024, 5, 1, 11, 0, 0, 0, time.Local),
	)

	payload, err := json.Marshal(req)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, map[string]string{
		"seatplaceId": "cw1-s1",
		"startTime":   "2024-05-01T09:00:00",
		"endTime":     "2024-05-01T11:00:00",
	}, body)
}

func TestBookingRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		req    BookingRequest
		wantOK bool
	}{
		{
			name:   "valid interval",
			req:    BookingRequest{SeatplaceID: "s1", StartTime: "2024-05-01T09:00:00", EndTime: "2024-05-01T11:00:00"},
			wantOK: true,
		},
		{
			name:   "missing seat",
			req:    BookingRequest{StartTime: "2024-05-01T09:00:00", EndTime: "2024-05-01T11:00:00"},
			wantOK: false,
		},
		{
			name:   "end before start",
			req:    BookingRequest{SeatplaceID: "s1", StartTime: "2024-05-01T11:00:00", EndTime: "2024-05-01T09:00:00"},
			wantOK: false,
		},
		{
			name:   "zero-length interval",
			req:    BookingRequest{SeatplaceID: "s1", StartTime: "2024-05-01T09:00:00", EndTime: "2024-05-01T09:00:00"},
			wantOK: false,
		},
		{
			name:   "garbage start",
			req:    BookingRequest{SeatplaceID: "s1", StartTime: "yesterday", EndTime: "2024-05-01T09:00:00"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := tt.req.Validate()
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestBookingStartEnd(t *testing.T) {
	b := Booking{StartTime: "2024-05-01T09:00:00", EndTime: "2024-05-01T11:00:00"}

	start, err := b.Start()
	require.NoError(t, err)
	end, err := b.End()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local), start)
	assert.Equal(t, 2*time.Hour, end.Sub(start))
}
