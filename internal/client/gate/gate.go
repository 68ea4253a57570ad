// Package gate implements declarative role-based access control for client
// views. Evaluate is a pure decision function: it is re-run on every
// navigation, caches nothing, and has no side effects beyond telling the
// caller where to send the user.
package gate

import "github.com/parishportal/parishportal/internal/client/models"

// Requirement is the capability level a view demands.
type Requirement string

const (
	RequireAdmin  Requirement = "admin"
	RequireMember Requirement = "member"
	RequireGuest  Requirement = "guest"
)

// DefaultRequirement applies when a view does not state one.
const DefaultRequirement = RequireMember

// Well-known navigation targets.
const (
	LoginRoute  = "/login"
	PortalRoute = "/member-portal"
	HomeRoute   = "/"
)

// Action is the outcome kind of a gate evaluation.
type Action int

const (
	// Render grants access to the protected content.
	Render Action = iota
	// ShowLoading defers the decision until the session check completes.
	ShowLoading
	// RedirectLogin sends an unauthenticated user to the login view,
	// preserving the requested path for the return trip. The redirect
	// replaces history so the back button does not loop.
	RedirectLogin
	// RedirectPortal sends a non-admin away from an admin view.
	RedirectPortal
	// RedirectHome sends a guest away from a member view.
	RedirectHome
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectPortal:
		return "redirect-portal"
	case RedirectHome:
		return "redirect-home"
	}
	return "unknown"
}

// Decision is the result of one gate evaluation.
type Decision struct {
	Action Action
	// Target is the navigation destination for redirect actions.
	Target string
	// ReturnTo carries the originally requested path on RedirectLogin.
	ReturnTo string
}

// Session is the read-only view of auth state the gate consumes. The
// auth service satisfies it.
type Session interface {
	Loading() bool
	CurrentUser() *models.User
}

// Evaluate runs the access state machine for a view at requestedPath that
// demands the given capability. An empty requirement means
// DefaultRequirement.
//
// Invariants:
//   - an admin view renders only for the admin role;
//   - a guest-role user reaches member content only when the view
//     explicitly requires just guest.
func Evaluate(s Session, required Requirement, requestedPath string) Decision {
	if required == "" {
		required = DefaultRequirement
	}

	if s.Loading() {
		return Decision{Action: ShowLoading}
	}

	user := s.CurrentUser()
	if user == nil {
		return Decision{Action: RedirectLogin, Target: LoginRoute, ReturnTo: requestedPath}
	}

	if required == RequireAdmin && user.Role != models.RoleAdmin {
		return Decision{Action: RedirectPortal, Target: PortalRoute}
	}

	if required == RequireMember && user.Role == models.RoleGuest {
		return Decision{Action: RedirectHome, Target: HomeRoute}
	}

	return Decision{Action: Render}
}
