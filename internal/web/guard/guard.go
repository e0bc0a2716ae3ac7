// Package guard implements the navigation decision function: given the
// current session state and the role a view requires, decide whether to
// render, redirect to login, or redirect to the role's home.
//
// Evaluate is pure and keeps no memory between navigations; there is no
// "remember last attempted URL".
package guard

import "github.com/canteen-system/canteen-console/internal/core/domain"

// Action is the kind of decision a navigation attempt resolves to.
type Action int

const (
	// Pending means session restoration has not finished; render a
	// loading indicator and re-evaluate when it has.
	Pending Action = iota
	// Allow renders the requested view.
	Allow
	// RedirectToLogin sends an unauthenticated visitor to the login page.
	RedirectToLogin
	// RedirectToRoleHome sends an authenticated visitor with the wrong
	// role to their own dashboard, never to login.
	RedirectToRoleHome
)

// Decision is the outcome of one navigation evaluation. Target is the
// redirect path for the two redirect actions and empty otherwise.
type Decision struct {
	Action Action
	Target string
}

// State is the slice of session state a decision depends on.
type State struct {
	Loading       bool
	Authenticated bool
	Role          string
}

// LoginPath is where unauthenticated navigations land.
const LoginPath = "/login"

// Evaluate decides a single navigation attempt. requiredRole may be empty,
// in which case only authentication is checked and role never causes a
// redirect. The checks apply strictly in order: loading shadows
// everything, authentication shadows role.
func Evaluate(state State, requiredRole string) Decision {
	if state.Loading {
		return Decision{Action: Pending}
	}
	if !state.Authenticated {
		return Decision{Action: RedirectToLogin, Target: LoginPath}
	}
	if requiredRole != "" && state.Role != requiredRole {
		return Decision{Action: RedirectToRoleHome, Target: domain.HomePath(state.Role)}
	}
	return Decision{Action: Allow}
}
