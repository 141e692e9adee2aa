package application

import "mate-storefront-layer/internal/domain"

// GateDecision is the single rendering outcome for a protected request.
type GateDecision int

const (
	// GateLoading: the session is still resolving. Highest precedence;
	// blocks every other outcome, including "must log in".
	GateLoading GateDecision = iota
	// GateLoginRequired: the session resolved anonymous.
	GateLoginRequired
	// GateForbidden: authenticated but lacking the required role.
	GateForbidden
	// GateAllow: render the real content.
	GateAllow
)

func (d GateDecision) String() string {
	switch d {
	case GateLoading:
		return "loading"
	case GateLoginRequired:
		return "login_required"
	case GateForbidden:
		return "forbidden"
	default:
		return "allow"
	}
}

// Decide evaluates the gate for a session. The precedence order is fixed
// and every protected route goes through this one implementation:
//
//  1. loading wins over everything
//  2. unauthenticated wins over the role check
//  3. role check (staff or superuser) when requireAdmin is set
//  4. allow
func Decide(session domain.Session, requireAdmin bool) GateDecision {
	if session.IsLoading() {
		return GateLoading
	}
	if !session.IsAuthenticated() {
		return GateLoginRequired
	}
	if requireAdmin && !session.IsAdmin() {
		return GateForbidden
	}
	return GateAllow
}
