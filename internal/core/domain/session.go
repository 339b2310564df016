package domain

// Session binds an opaque token to an identity. Sessions are never persisted.
type Session struct {
	Token    string
	Username string
	Role     string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
