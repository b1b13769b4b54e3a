package domain

import "strings"

const RoleAdmin = "admin"

// Custom directory attributes projected into the profile view.
const (
	AttrDepartment     = "department"
	AttrPosition       = "position"
	AttrPhoneExtension = "phoneExtension"
	AttrOfficeLocation = "officeLocation"
)

// Account is a user record owned by the identity directory. The core never
// persists it; every mutation is a remote call.
type Account struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	Email      string              `json:"email"`
	Enabled    bool                `json:"enabled"`
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	Attributes map[string][]string `json:"attributes,omitempty"`
	Roles      []string            `json:"roles,omitempty"`
}

// FullName joins first and last name with a single space.
func (a *Account) FullName() string {
	return FullName(a.FirstName, a.LastName)
}

// Attribute returns the first value of a custom attribute, or "".
func (a *Account) Attribute(name string) string {
	if vals := a.Attributes[name]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// SetAttribute replaces a custom attribute with a single value.
func (a *Account) SetAttribute(name, value string) {
	if a.Attributes == nil {
		a.Attributes = make(map[string][]string)
	}
	a.Attributes[name] = []string{value}
}

// DefaultProfileAttributes are written on every personal-info update,
// replacing whatever the directory held before.
func DefaultProfileAttributes() map[string]string {
	return map[string]string{
		AttrDepartment:     "General",
		AttrPosition:       "Member",
		AttrPhoneExtension: "",
		AttrOfficeLocation: "",
	}
}

// FullName builds a display name out of its parts, tolerating blanks.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// SameEmail compares two addresses case-insensitively, ignoring surrounding space.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
