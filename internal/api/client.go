// Package api is the typed client for the booking backend REST API.
// Credentials are injected per request from a TokenSource, and any
// 401 reply is reported to the AuthFailureHandler regardless of
// which endpoint produced it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tuammar/seatplace-cli/internal/dto"
	"github.com/Tuammar/seatplace-cli/internal/logger"
	"github.com/Tuammar/seatplace-cli/internal/telemetry"
)

const (
	// RequestIDHeader carries the client-generated request ID
	RequestIDHeader = "X-Request-ID"
)

// TokenSource supplies the current bearer token, empty when logged out
type TokenSource interface {
	Token() string
}

// AuthFailureHandler is called whenever any endpoint replies 401
type AuthFailureHandler func()

// Config holds client settings
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	Tokens        TokenSource
	OnAuthFailure AuthFailureHandler
	Logger        *logger.Logger
}

// Client talks to the booking backend
type Client struct {
	baseURL       string
	http          *http.Client
	tokens        TokenSource
	onAuthFailure AuthFailureHandler
	log           *logger.Logger
}

// New creates a backend API client
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		http:          newHTTPClient(timeout),
		tokens:        cfg.Tokens,
		onAuthFailure: cfg.OnAuthFailure,
		log:           log,
	}
}

// Register creates a new account and returns its token
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp)
	return resp, err
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp)
	return resp, err
}

// CreateBooking books a seat for the given interval
func (c *Client) CreateBooking(ctx context.Context, req dto.BookingRequest) (dto.Booking, error) {
	var resp dto.Booking
	err := c.do(ctx, http.MethodPost, "/bookings", req, &resp)
	return resp, err
}

// SeatPlaces lists all bookable seat places
func (c *Client) SeatPlaces(ctx context.Context) ([]dto.SeatPlace, error) {
	var resp []dto.SeatPlace
	err := c.do(ctx, http.MethodGet, "/seatplaces", nil, &resp)
	return resp, err
}

// UserBookings lists the current user's bookings
func (c *Client) UserBookings(ctx context.Context) ([]dto.Booking, error) {
	var resp []dto.Booking
	err := c.do(ctx, http.MethodGet, "/bookings/user", nil, &resp)
	return resp, err
}

// AllBookings lists every booking (admin only)
func (c *Client) AllBookings(ctx context.Context) ([]dto.Booking, error) {
	var resp []dto.Booking
	err := c.do(ctx, http.MethodGet, "/bookings", nil, &resp)
	return resp, err
}

// DeleteBooking cancels a booking by ID
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(id), nil, nil)
}

// do performs one request against the backend. A nil out skips
// response decoding.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	ctx, span := telemetry.Get().StartRequestSpan(ctx, method, path)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		telemetry.EndRequestSpan(span, 0, err)
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}

	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		telemetry.EndRequestSpan(span, 0, err)
		c.log.Warn("Request failed",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("Request completed",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := c.parseError(resp)
		telemetry.EndRequestSpan(span, resp.StatusCode, apiErr)
		if resp.StatusCode == http.StatusUnauthorized && c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return apiErr
	}
	telemetry.EndRequestSpan(span, resp.StatusCode, nil)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) parseError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(payload, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
