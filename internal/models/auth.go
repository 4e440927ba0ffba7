package models

// Principal is the request-scoped authorization context resolved from the session.
type Principal struct {
	IsAdmin bool
}

// Admin reports whether the principal may mutate data. A nil principal is anonymous.
func (p *Principal) Admin() bool {
	return p != nil && p.IsAdmin
}

// AuthStatus is returned by the status and login endpoints.
type AuthStatus struct {
	IsAdmin bool `json:"isAdmin"`
}

// LoginResult acknowledges a successful login.
type LoginResult struct {
	Success bool `json:"success"`
	IsAdmin bool `json:"isAdmin"`
}
