package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "valid request",
			req:    RegisterRequest{Name: "Alice", Surname: "Doe", Alias: "alice", Password: "Secret123"},
			wantOK: true,
		},
		{
			name:   "valid with patronymic",
			req:    RegisterRequest{Name: "Ivan", Surname: "Petrov", Patronymic: "Sergeevich", Alias: "ivan", Password: "Secret123"},
			wantOK: true,
		},
		{
			name:    "missing name",
			req:     RegisterRequest{Surname: "Doe", Alias: "alice", Password: "Secret123"},
			wantOK:  false,
			wantMsg: "Name is required",
		},
		{
			name:    "missing surname",
			req:     RegisterRequest{Name: "Alice", Alias: "alice", Password: "Secret123"},
			wantOK:  false,
			wantMsg: "Surname is required",
		},
		{
			name:    "missing alias",
			req:     RegisterRequest{Name: "Alice", Surname: "Doe", Password: "Secret123"},
			wantOK:  false,
			wantMsg: "Alias is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := tt.req.Validate()
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, tt.wantMsg, msg)
			}
		})
	}
}

func TestRegisterRequestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"strong password", "Secret123", true},
		{"too short", "Sec1", false},
		{"no uppercase", "secret123", false},
		{"no lowercase", "SECRET123", false},
		{"no digit", "SecretPass", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RegisterRequest{Password: tt.password}
			ok, _ := req.ValidatePassword()
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	ok, _ := (&LoginRequest{Alias: "alice", Password: "Secret123"}).Validate()
	assert.True(t, ok)

	ok, msg := (&LoginRequest{Password: "Secret123"}).Validate()
	assert.False(t, ok)
	assert.Equal(t, "Alias is required", msg)

	ok, msg = (&LoginRequest{Alias: "alice"}).Validate()
	assert.False(t, ok)
	assert.Equal(t, "Password is required", msg)
}
