package dto

import "unicode"

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Patronymic string `json:"patronymic,omitempty"`
	Alias      string `json:"alias"`
	Password   string `json:"password"`
}

// Validate checks required registration fields
func (r *RegisterRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Name is required"
	}
	if r.Surname == "" {
		return false, "Surname is required"
	}
	if r.Alias == "" {
		return false, "Alias is required"
	}
	return r.ValidatePassword()
}

// ValidatePassword validates password strength requirements:
// - At least 8 characters
// - At least one uppercase letter
// - At least one lowercase letter
// - At least one digit
func (r *RegisterRequest) ValidatePassword() (bool, string) {
	password := r.Password

	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	if len(password) > 72 {
		return false, "Password must not exceed 72 characters"
	}

	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	if !hasUpper {
		return false, "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return false, "Password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return false, "Password must contain at least one digit"
	}

	return true, ""
}

// LoginRequest represents a login request
type LoginRequest struct {
	Alias    string `json:"alias"`
	Password string `json:"password"`
}

// Validate checks required login fields
func (r *LoginRequest) Validate() (bool, string) {
	if r.Alias == "" {
		return false, "Alias is required"
	}
	if r.Password == "" {
		return false, "Password is required"
	}
	return true, ""
}

// AuthResponse represents the backend reply to login and register
type AuthResponse struct {
	Token string `json:"token"`
}
