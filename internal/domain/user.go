package domain

// Role values issued by the backend session token.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// User is the identity extracted from the backend's session cookie.
// It is view state only; the backend remains the authority on accounts.
type User struct {
	Email string
	Role  string
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
