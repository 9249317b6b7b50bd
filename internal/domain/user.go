package domain

// Identity holds the user fields decoded from the session token.
// Alias is the token subject claim.
type Identity struct {
	Name    string
	Surname string
	Alias   string
	Role    string
}

// FullName returns the display name for the identity
func (i Identity) FullName() string {
	if i.Surname == "" {
		return i.Name
	}
	return i.Name + " " + i.Surname
}
