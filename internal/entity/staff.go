package entity

const (
	RoleAdministrator = "Administrator"
	RoleLibrarian     = "Librarian"
)

// StaffLoginData is what the token middleware stores for an authenticated request.
type StaffLoginData struct {
	Username string
	Role     string
}

func (s StaffLoginData) IsAdministrator() bool {
	return s.Role == RoleAdministrator
}
