package ports

import "github.com/panaderia/bread-orders/internal/core/domain"

// SessionStore is the process-scoped session table. Implementations must not
// persist sessions: a restart invalidates every login.
type SessionStore interface {
	Put(s domain.Session)
	Get(token string) (domain.Session, bool)
	Delete(token string)
	// DeleteUser drops every session belonging to username and reports how
	// many were removed.
	DeleteUser(username string) int
	Len() int
	Clear()
}
