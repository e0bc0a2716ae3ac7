package domain

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is the identity record returned by the canteen backend on login or
// registration. The backend owns the canonical copy; the console only
// round-trips it between the auth response and the durable session store.
type User struct {
	ID         string  `json:"_id,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	EmployeeID string  `json:"employeeId,omitempty"`
	Balance    float64 `json:"balance,omitempty"`
}

// Session is the in-memory record of the currently authenticated user plus
// the bearer token used for upstream calls. The zero value is anonymous.
type Session struct {
	User  *User
	Token string
}

// IsAuthenticated reports whether the session carries a user. A session is
// only populated together with a non-empty token, so an authenticated
// session always has a usable credential.
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// Role returns the session's role, or "" for an anonymous session.
func (s Session) Role() string {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// HomePath returns the default landing path for a role: admins land on the
// admin dashboard, everyone else on the employee dashboard.
func HomePath(role string) string {
	if role == RoleAdmin {
		return "/admin"
	}
	return "/employee"
}

// AuthResult is the uniform outcome of a login or registration attempt.
// Transport and server failures are normalized into Message; they never
// surface as raw errors to a screen.
type AuthResult struct {
	Success    bool
	Message    string
	RedirectTo string
}
