package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Tuammar/seatplace-cli/internal/domain"
)

// Placeholders used when the token payload lacks the optional
// name claims
const (
	placeholderName    = "User"
	placeholderSurname = ""
)

// Claims is the typed payload of a session token. The client never
// holds the signing key, so tokens are decoded without signature or
// expiry verification: a structurally valid but expired token stays
// usable until the server rejects it.
type Claims struct {
	Subject string
	Name    string
	Surname string
	Role    string
}

type tokenPayload struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeClaims decodes a token payload into Claims. Failure means
// the token is not structurally a JWT.
func DecodeClaims(token string) (*Claims, error) {
	payload := &tokenPayload{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return &Claims{
		Subject: payload.Subject,
		Name:    payload.Name,
		Surname: payload.Surname,
		Role:    payload.Role,
	}, nil
}

// Identity maps claims to a user identity, applying placeholders
// for missing name fields
func (c *Claims) Identity() domain.Identity {
	name := c.Name
	if name == "" {
		name = placeholderName
	}
	surname := c.Surname
	if surname == "" {
		surname = placeholderSurname
	}
	return domain.Identity{
		Name:    name,
		Surname: surname,
		Alias:   c.Subject,
		Role:    c.Role,
	}
}
