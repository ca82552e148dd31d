package sessiongate

import "time"

// Role is a user's authorization level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

// User is the identity a resolved session carries.
type User struct {
	ID    uint
	Email string
	Name  string
	Role  Role
}

// Status is the session lifecycle state.
type Status int

const (
	// StatusUnknown means the stored credential has not been resolved yet.
	StatusUnknown Status = iota
	StatusAnonymous
	StatusAuthenticated
)

// State is the current session-gate state. User is set only when
// Status == StatusAuthenticated.
type State struct {
	Status Status
	User   *User
}

func Unknown() State   { return State{Status: StatusUnknown} }
func Anonymous() State { return State{Status: StatusAnonymous} }

func Authenticated(u User) State {
	return State{Status: StatusAuthenticated, User: &u}
}

// Credential is a stored login credential: issued at login, cleared at logout
// or once its absolute expiry has passed.
type Credential struct {
	ExpiresAt time.Time
}

// Expired reports whether the credential's validity window has closed.
func (c Credential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Resolve turns a stored credential (or its absence) into a terminal state.
// A missing or expired credential resolves to Anonymous; an expired one must
// also be cleared from storage by the caller. A live credential that cannot
// be matched to a user resolves to Anonymous rather than failing.
func Resolve(cred *Credential, user *User, now time.Time) State {
	if cred == nil || cred.Expired(now) {
		return Anonymous()
	}
	if user == nil {
		return Anonymous()
	}
	return Authenticated(*user)
}

// Decision is the route guard's verdict for a protected view.
type Decision int

const (
	// DecisionWait blocks the protected content while the credential check is
	// still in flight.
	DecisionWait Decision = iota
	// DecisionLogin redirects to the login view, preserving the requested
	// location for post-login return.
	DecisionLogin
	// DecisionUnauthorized redirects to the unauthorized view.
	DecisionUnauthorized
	// DecisionAllow renders the protected content.
	DecisionAllow
)

// Decide is the route guard: a pure function of the gate state and the roles
// a view requires. No required roles means any authenticated user passes.
func Decide(s State, required ...Role) Decision {
	switch s.Status {
	case StatusUnknown:
		return DecisionWait
	case StatusAnonymous:
		return DecisionLogin
	}

	if len(required) == 0 {
		return DecisionAllow
	}
	for _, r := range required {
		if s.User != nil && s.User.Role == r {
			return DecisionAllow
		}
	}
	return DecisionUnauthorized
}
