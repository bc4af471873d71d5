// Package gate decides, per navigation, whether a destination requires an
// active session.
package gate

// Route identifies a navigable destination in the client.
type Route string

const (
	RouteLanding       Route = "landing"
	RouteLogin         Route = "login"
	RouteRegister      Route = "register"
	RouteUpload        Route = "upload"
	RouteHistoryList   Route = "history"
	RouteHistoryDetail Route = "history-detail"
)

// protected is the fixed classification of routes that require a session.
// Everything not listed here is public.
var protected = map[Route]bool{
	RouteUpload:        true,
	RouteHistoryList:   true,
	RouteHistoryDetail: true,
}

// Action is the gate's verdict for a navigation.
type Action int

const (
	Allow Action = iota
	RedirectToLogin
)

// Decision carries the verdict plus the originally requested route, so a
// caller may return there after a successful login.
type Decision struct {
	Action Action
	From   Route
}

// IsProtected reports whether a route requires an active session.
func IsProtected(route Route) bool {
	return protected[route]
}

// Decide is a pure function of the requested route and the current token.
// A route is allowed iff it is public, or it is protected and a token is
// present.
func Decide(route Route, token string) Decision {
	if protected[route] && token == "" {
		return Decision{Action: RedirectToLogin, From: route}
	}
	return Decision{Action: Allow, From: route}
}
