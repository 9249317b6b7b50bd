package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Tuammar/seatplace-cli/internal/dto"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	alias := fs.String("alias", "", "account alias")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *alias == "" {
		return errors.New("login requires -alias")
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	req := dto.LoginRequest{Alias: *alias, Password: password}
	if ok, reason := req.Validate(); !ok {
		return errors.New(reason)
	}

	resp, err := a.client.Login(ctx, req)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := a.sessions.Login(resp.Token); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	identity, _ := a.sessions.Identity()
	fmt.Printf("Logged in as %s (%s)\n", identity.FullName(), identity.Alias)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "first name")
	surname := fs.String("surname", "", "surname")
	patronymic := fs.String("patronymic", "", "patronymic (optional)")
	alias := fs.String("alias", "", "account alias")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	req := dto.RegisterRequest{
		Name:       *name,
		Surname:    *surname,
		Patronymic: *patronymic,
		Alias:      *alias,
		Password:   password,
	}
	if ok, reason := req.Validate(); !ok {
		return errors.New(reason)
	}

	resp, err := a.client.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	if err := a.sessions.Login(resp.Token); err != nil {
		return fmt.Errorf("registration succeeded but login failed: %w", err)
	}

	fmt.Printf("Registered and logged in as %s\n", *alias)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.sessions.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func (a *app) cmdWhoami() error {
	identity, ok := a.sessions.Identity()
	if !ok {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s (%s)\n", identity.FullName(), identity.Alias)
	if identity.Role != "" {
		fmt.Printf("Role: %s\n", identity.Role)
	}
	return nil
}

// readPassword prompts without echo when stdin is a terminal
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
