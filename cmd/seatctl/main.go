package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Tuammar/seatplace-cli/internal/api"
	"github.com/Tuammar/seatplace-cli/internal/booking"
	"github.com/Tuammar/seatplace-cli/internal/config"
	"github.com/Tuammar/seatplace-cli/internal/logger"
	"github.com/Tuammar/seatplace-cli/internal/session"
	"github.com/Tuammar/seatplace-cli/internal/telemetry"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-v", "--version":
		fmt.Printf("seatctl %s\n", Version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: "seatctl",
		Development: cfg.IsDevelopment(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = telemetry.Shutdown(ctx) }()

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "login":
		err = a.cmdLogin(ctx, os.Args[2:])
	case "register":
		err = a.cmdRegister(ctx, os.Args[2:])
	case "logout":
		err = a.cmdLogout()
	case "whoami":
		err = a.cmdWhoami()
	case "seats":
		err = a.cmdSeats(ctx, os.Args[2:])
	case "book":
		err = a.cmdBook(ctx, os.Args[2:])
	case "bookings":
		err = a.cmdBookings(ctx, os.Args[2:])
	case "cancel":
		err = a.cmdCancel(ctx, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app wires the session manager, API client and booking form together
type app struct {
	cfg      *config.Config
	sessions *session.Manager
	client   *api.Client
	catalog  *booking.Catalog
	form     *booking.Form
}

func newApp(cfg *config.Config) (*app, error) {
	log := logger.Get()

	sessions := session.NewManager(session.NewFileStore(cfg.Auth.TokenPath), log)
	if err := sessions.Initialize(); err != nil {
		return nil, err
	}

	client := api.New(api.Config{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		Tokens:        sessions,
		OnAuthFailure: sessions.HandleAuthFailure,
		Logger:        log,
	})

	catalog := booking.NewCatalog(client)
	notify := &consoleNotifier{}
	form := booking.NewForm(client, sessions, catalog, notify, log, booking.Config{
		MinDuration:   cfg.Booking.MinDuration,
		DefaultWindow: cfg.Booking.DefaultWindow,
	})

	return &app{
		cfg:      cfg,
		sessions: sessions,
		client:   client,
		catalog:  catalog,
		form:     form,
	}, nil
}

// requireAuth is the CLI analogue of the login redirect: commands
// that need a session point the user at seatctl login
func (a *app) requireAuth() error {
	if !a.sessions.IsAuthenticated() {
		return fmt.Errorf("not logged in, run 'seatctl login' first")
	}
	return nil
}

// consoleNotifier prints transient booking notifications
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Println(msg) }
func (consoleNotifier) Failure(msg string) { fmt.Fprintln(os.Stderr, msg) }

func printUsage() {
	fmt.Println(`seatctl - book a seat from the terminal

Usage:
  seatctl <command> [arguments]

Account Commands:
  register        Create an account and log in
  login           Log in with alias and password
  logout          Log out and forget the stored session
  whoami          Show the current session identity

Booking Commands:
  seats           List bookable spaces and seats
  book            Book a seat for a time range
  bookings        List your bookings
  cancel          Cancel a booking by ID

Other Commands:
  version         Print the version
  help            Show this help`)
}
