package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/Tuammar/seatplace-cli/internal/booking"
	"github.com/Tuammar/seatplace-cli/internal/dto"
)

func (a *app) cmdSeats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seats", flag.ExitOnError)
	space := fs.String("space", "", "only list seats in this space")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.catalog.Refresh(ctx); err != nil {
		return err
	}

	if *space != "" {
		seats := a.catalog.SeatsIn(*space)
		if len(seats) == 0 {
			fmt.Printf("No seats in space %q\n", *space)
			return nil
		}
		for _, s := range seats {
			fmt.Printf("  %s  %s\n", s.ID, s.Name)
		}
		return nil
	}

	for _, sp := range a.catalog.Spaces() {
		fmt.Printf("%s  %s\n", sp.ID, sp.Name)
		for _, s := range sp.Seats {
			fmt.Printf("  %s  %s\n", s.ID, s.Name)
		}
	}
	return nil
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	date := fs.String("date", "", "booking date (YYYY-MM-DD), defaults to today")
	space := fs.String("space", "", "space to pick the seat from")
	seat := fs.String("seat", "", "seat place ID")
	from := fs.String("from", "", "start time (HH:MM), defaults to now rounded up")
	to := fs.String("to", "", "end time (HH:MM), defaults to start plus the default window")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.catalog.Refresh(ctx); err != nil {
		return err
	}

	if *date != "" {
		d, err := time.ParseInLocation(dto.DateLayout, *date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -date %q, expected YYYY-MM-DD", *date)
		}
		a.form.SetDate(d)
	}
	if *space != "" {
		a.form.SetSpace(*space)
	}
	if *from != "" {
		start, err := booking.ParseClock(*from)
		if err != nil {
			return fmt.Errorf("invalid -from: %w", err)
		}
		a.form.SetStart(start)
	}
	if *to != "" {
		end, err := booking.ParseClock(*to)
		if err != nil {
			return fmt.Errorf("invalid -to: %w", err)
		}
		a.form.SetEnd(end)
	}
	if *seat == "" {
		return errors.New("book requires -seat, run 'seatctl seats' to list them")
	}
	if err := a.form.SetSeat(*seat); err != nil {
		return err
	}

	draft := a.form.Draft()
	b, err := a.form.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Booked %s on %s from %s to %s (booking %s)\n",
		draft.SeatID,
		draft.Date.Format(dto.DateLayout),
		booking.FormatClock(draft.Start),
		booking.FormatClock(draft.End),
		b.ID,
	)
	return nil
}

func (a *app) cmdBookings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ExitOnError)
	all := fs.Bool("all", false, "list every booking (admin only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	var (
		bookings []dto.Booking
		err      error
	)
	if *all {
		bookings, err = a.client.AllBookings(ctx)
	} else {
		bookings, err = a.client.UserBookings(ctx)
	}
	if err != nil {
		return err
	}

	if len(bookings) == 0 {
		fmt.Println("No bookings")
		return nil
	}
	for _, b := range bookings {
		fmt.Printf("%s  seat %s  %s - %s\n", b.ID, b.SeatplaceID, b.StartTime, b.EndTime)
	}
	return nil
}

func (a *app) cmdCancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := fs.String("id", "", "booking ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("cancel requires -id")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.client.DeleteBooking(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Cancelled booking %s\n", *id)
	return nil
}
