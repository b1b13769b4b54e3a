package domain

// Profile view keys.
const (
	ProfileEmail     = "email"
	ProfileFirstName = "firstName"
	ProfileLastName  = "lastName"
	ProfileFullName  = "fullName"
)

// ProfileView is the flat projection of an Account shown on the profile page.
// An empty view means the caller could not be resolved.
type ProfileView map[string]string

// NewProfileView projects an account into a profile view.
func NewProfileView(a *Account) ProfileView {
	v := ProfileView{
		ProfileEmail:     a.Email,
		ProfileFirstName: a.FirstName,
		ProfileLastName:  a.LastName,
		ProfileFullName:  a.FullName(),
	}
	for _, attr := range []string{AttrDepartment, AttrPosition, AttrPhoneExtension, AttrOfficeLocation} {
		v[attr] = a.Attribute(attr)
	}
	return v
}

func (v ProfileView) Empty() bool {
	return len(v) == 0
}
