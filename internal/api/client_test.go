package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tuammar/seatplace-cli/internal/api"
	"github.com/Tuammar/seatplace-cli/internal/api/apitest"
	"github.com/Tuammar/seatplace-cli/internal/dto"
	"github.com/Tuammar/seatplace-cli/internal/session"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newClientAndSession(t *testing.T, srv *apitest.Server) (*api.Client, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(session.NewMemoryStore(), nil)
	client := api.New(api.Config{
		BaseURL:       srv.URL(),
		Timeout:       5 * time.Second,
		Tokens:        sessions,
		OnAuthFailure: sessions.HandleAuthFailure,
	})
	return client, sessions
}

func TestLoginSetsBearerOnNextCall(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SetToken(signedToken(t, jwt.MapClaims{"sub": "alice", "name": "Alice"}))
	client, sessions := newClientAndSession(t, srv)

	resp, err := client.Login(context.Background(), dto.LoginRequest{Alias: "alice", Password: "Secret123"})
	require.NoError(t, err)
	require.NoError(t, sessions.Login(resp.Token))

	_, err = client.SeatPlaces(context.Background())
	require.NoError(t, err)

	calls := srv.Calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Authorization, "login itself carries no credentials")
	assert.Equal(t, "Bearer "+srv.Token(), calls[1].Authorization)
}

func TestCreateBookingWire(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SetToken(signedToken(t, jwt.MapClaims{"sub": "alice"}))
	client, sessions := newClientAndSession(t, srv)
	require.NoError(t, sessions.Login(srv.Token()))

	req := dto.NewBookingRequest("cw1-s1",
		time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local),
		time.Date(2024, 5, 1, 11, 0, 0, 0, time.Local),
	)
	booking, err := client.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, srv.CallCount(http.MethodPost, "/api/bookings"))
	calls := srv.Calls()
	require.NotNil(t, calls[0].Booking)
	assert.Equal(t, dto.BookingRequest{
		SeatplaceID: "cw1-s1",
		StartTime:   "2024-05-01T09:00:00",
		EndTime:     "2024-05-01T11:00:00",
	}, *calls[0].Booking)

	assert.NotEmpty(t, booking.ID)
	assert.NotEmpty(t, booking.UserID)
	assert.Equal(t, "cw1-s1", booking.SeatplaceID)
}

func TestAuthFailureAnywhereForcesLogout(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SetToken(signedToken(t, jwt.MapClaims{"sub": "alice"}))
	client, sessions := newClientAndSession(t, srv)
	require.NoError(t, sessions.Login(srv.Token()))
	require.True(t, sessions.IsAuthenticated())

	srv.SetRejectAll(true)
	_, err := client.UserBookings(context.Background())

	require.Error(t, err)
	assert.True(t, api.IsAuthFailure(err))
	assert.False(t, sessions.IsAuthenticated(), "401 from any endpoint tears the session down")
	assert.Empty(t, sessions.Token())
}

func TestRequestIDHeaderSent(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	client, _ := newClientAndSession(t, srv)

	_, err := client.Login(context.Background(), dto.LoginRequest{Alias: "alice", Password: "pw"})
	require.NoError(t, err)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	_, err = uuid.Parse(calls[0].RequestID)
	assert.NoError(t, err, "X-Request-ID is a uuid")
}

func TestServerErrorMessageSurfaced(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SetToken(signedToken(t, jwt.MapClaims{"sub": "alice"}))
	srv.SetCreateStatus(http.StatusInternalServerError)
	client, sessions := newClientAndSession(t, srv)
	require.NoError(t, sessions.Login(srv.Token()))

	_, err := client.CreateBooking(context.Background(), dto.BookingRequest{
		SeatplaceID: "cw1-s1",
		StartTime:   "2024-05-01T09:00:00",
		EndTime:     "2024-05-01T11:00:00",
	})

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "booking rejected", apiErr.Message)
	assert.False(t, api.IsAuthFailure(err))
	assert.True(t, sessions.IsAuthenticated(), "non-auth failures keep the session")
}

func TestDeleteBooking(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SetToken(signedToken(t, jwt.MapClaims{"sub": "alice"}))
	client, sessions := newClientAndSession(t, srv)
	require.NoError(t, sessions.Login(srv.Token()))

	booking, err := client.CreateBooking(context.Background(), dto.BookingRequest{
		SeatplaceID: "cw1-s1",
		StartTime:   "2024-05-01T09:00:00",
		EndTime:     "2024-05-01T11:00:00",
	})
	require.NoError(t, err)

	require.NoError(t, client.DeleteBooking(context.Background(), booking.ID))
	assert.Empty(t, srv.Bookings())

	err = client.DeleteBooking(context.Background(), booking.ID)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestUnauthenticatedCallCarriesNoHeader(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	client, _ := newClientAndSession(t, srv)

	_, err := client.SeatPlaces(context.Background())

	assert.True(t, api.IsAuthFailure(err))
	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Authorization)
}
