package domain

// Caller is the resolved identity of the current request. A zero Caller
// (no email) is anonymous.
type Caller struct {
	Email       string
	Username    string
	DisplayName string
	Roles       []string
}

// Authenticated reports whether the caller carries a stable identifier.
func (c Caller) Authenticated() bool {
	return c.Email != ""
}

func (c Caller) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (c Caller) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}

// Owns reports whether the caller is the author identified by email.
func (c Caller) Owns(authorEmail string) bool {
	return c.Authenticated() && SameEmail(c.Email, authorEmail)
}
