package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// PasswordHash is the stored form of a derived password key.
type PasswordHash struct {
	Algorithm  string `json:"algorithm"`
	Iterations int    `json:"iterations"`
	Salt       string `json:"salt"`
	Hash       string `json:"hash"`
}

// User models an account in the credential store.
type User struct {
	Username     string       `json:"username"`
	Role         string       `json:"role"`
	PasswordHash PasswordHash `json:"passwordHash"`
}

// PublicUser is the view of a user that may leave the server.
type PublicUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{Username: u.Username, Role: u.Role}
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
