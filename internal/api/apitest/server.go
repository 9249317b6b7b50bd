// Package apitest provides an in-process fake of the booking backend
// for tests. It mirrors the wire contract of the real API: bearer-token
// auth, /api route prefix, {"message": ...} error bodies.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Tuammar/seatplace-cli/internal/dto"
)

// Call records one request the fake backend received
type Call struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Booking       *dto.BookingRequest
}

// Server is a fake booking backend
type Server struct {
	// Seats is the catalog served by GET /seatplaces
	Seats []dto.SeatPlace

	srv *httptest.Server

	mu           sync.Mutex
	token        string
	rejectAll    bool
	createStatus int
	calls        []Call
	bookings     []dto.Booking
}

// New starts a fake backend with sane defaults
func New() *Server {
	s := &Server{
		token: "test-token",
		Seats: []dto.SeatPlace{
			{ID: "cw1-s1", Name: "Coworking 1, seat 1", SpaceID: "cw1", SpaceName: "Coworking 1"},
			{ID: "cw1-s2", Name: "Coworking 1, seat 2", SpaceID: "cw1", SpaceName: "Coworking 1"},
			{ID: "lib1-s1", Name: "Library 1, seat 1", SpaceID: "lib1", SpaceName: "Library 1"},
		},
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	apiGroup := engine.Group("/api")
	apiGroup.Use(s.record)

	apiGroup.POST("/auth/register", s.handleRegister)
	apiGroup.POST("/auth/login", s.handleLogin)

	protected := apiGroup.Group("")
	protected.Use(s.requireAuth)
	protected.GET("/seatplaces", s.handleSeatPlaces)
	protected.POST("/bookings", s.handleCreateBooking)
	protected.GET("/bookings/user", s.handleUserBookings)
	protected.GET("/bookings", s.handleAllBookings)
	protected.DELETE("/bookings/:id", s.handleDeleteBooking)

	s.srv = httptest.NewServer(engine)
	return s
}

// URL returns the base URL the client should use, /api prefix included
func (s *Server) URL() string {
	return s.srv.URL + "/api"
}

// Close shuts the fake backend down
func (s *Server) Close() {
	s.srv.Close()
}

// SetToken sets the token returned by login and register; it is the
// only bearer token the protected routes accept
func (s *Server) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetRejectAll forces 401 on every request, including auth
func (s *Server) SetRejectAll(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectAll = reject
}

// SetCreateStatus overrides the status of POST /bookings when >= 400
func (s *Server) SetCreateStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createStatus = status
}

// Token returns the currently accepted bearer token
func (s *Server) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Server) rejecting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejectAll
}

// Calls returns a copy of every recorded request
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount counts recorded requests matching method and path
func (s *Server) CallCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Bookings returns bookings created so far
func (s *Server) Bookings() []dto.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dto.Booking(nil), s.bookings...)
}

func (s *Server) record(c *gin.Context) {
	call := Call{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Authorization: c.GetHeader("Authorization"),
		RequestID:     c.GetHeader("X-Request-ID"),
	}
	if c.Request.Method == http.MethodPost && c.Request.URL.Path == "/api/bookings" {
		var req dto.BookingRequest
		if err := c.ShouldBindBodyWithJSON(&req); err == nil {
			call.Booking = &req
		}
	}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
	c.Next()
}

func (s *Server) requireAuth(c *gin.Context) {
	if s.rejecting() {
		s.unauthorized(c)
		return
	}
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token != s.Token() {
		s.unauthorized(c)
		return
	}
	c.Next()
}

func (s *Server) unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
}

func (s *Server) handleRegister(c *gin.Context) {
	if s.rejecting() {
		s.unauthorized(c)
		return
	}
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request"})
		return
	}
	if req.Alias == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "alias and password are required"})
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{Token: s.Token()})
}

func (s *Server) handleLogin(c *gin.Context) {
	if s.rejecting() {
		s.unauthorized(c)
		return
	}
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request"})
		return
	}
	if req.Alias == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{Token: s.Token()})
}

func (s *Server) handleSeatPlaces(c *gin.Context) {
	c.JSON(http.StatusOK, s.Seats)
}

func (s *Server) handleCreateBooking(c *gin.Context) {
	s.mu.Lock()
	createStatus := s.createStatus
	s.mu.Unlock()
	if createStatus >= http.StatusBadRequest {
		c.JSON(createStatus, gin.H{"message": "booking rejected"})
		return
	}
	var req dto.BookingRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request"})
		return
	}
	if ok, reason := req.Validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": reason})
		return
	}
	booking := dto.Booking{
		ID:          uuid.New().String(),
		SeatplaceID: req.SeatplaceID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		UserID:      uuid.New().String(),
	}
	s.mu.Lock()
	s.bookings = append(s.bookings, booking)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, booking)
}

func (s *Server) handleUserBookings(c *gin.Context) {
	c.JSON(http.StatusOK, s.Bookings())
}

func (s *Server) handleAllBookings(c *gin.Context) {
	c.JSON(http.StatusOK, s.Bookings())
}

func (s *Server) handleDeleteBooking(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	kept := s.bookings[:0]
	for _, b := range s.bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	removed := len(kept) != len(s.bookings)
	s.bookings = kept
	s.mu.Unlock()
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
