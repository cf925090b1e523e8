package client

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hexanode/accounts/internal/dto"
)

// Well-known redirect targets handed back with a denial.
const (
	RedirectLogin = "/login"
	RedirectHome  = "/"
)

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Guard decides locally whether a protected action may proceed. The check
// reads the token's expiry without verifying the signature: the guard is a
// UX gate, the server remains the authority on every call.
type Guard struct {
	store Store

	mu            sync.Mutex
	intendedRoute string
}

func NewGuard(store Store) *Guard {
	return &Guard{store: store}
}

// tokenExpired decodes the exp claim without signature verification.
// An unparseable token counts as expired.
func tokenExpired(tokenString string, now time.Time) bool {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return true
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.After(exp.Time)
}

// Allow reports whether the stored session holds a usable token.
// A denied route is remembered for redirect after login.
func (g *Guard) Allow(route string) bool {
	return g.Check(route, nil).Allowed
}

// Check evaluates a navigation attempt. A nil requirement only demands a
// signed-in session; a non-nil one must also accept the session's user,
// otherwise the caller is sent home rather than to login.
func (g *Guard) Check(route string, requirement func(user dto.UserResponse) bool) Decision {
	// Contexts without credential storage are not gated at all.
	if _, ok := g.store.(*NoopStore); ok {
		return Decision{Allowed: true}
	}

	session, err := g.store.Load()
	if err != nil || !session.Authenticated() {
		g.remember(route)
		return Decision{Redirect: RedirectLogin}
	}

	// An expired access token denies outright, even with a refresh
	// token in hand: the user goes back through login and the route
	// is remembered for afterwards.
	if tokenExpired(session.AccessToken, time.Now()) {
		g.remember(route)
		return Decision{Redirect: RedirectLogin}
	}

	if requirement != nil && !requirement(session.User) {
		return Decision{Redirect: RedirectHome}
	}

	return Decision{Allowed: true}
}

func (g *Guard) remember(route string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intendedRoute = route
}

// ConsumeIntendedRoute returns the route that triggered the last denial
// and forgets it, for the post-login redirect.
func (g *Guard) ConsumeIntendedRoute() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	route := g.intendedRoute
	g.intendedRoute = ""
	return route
}
