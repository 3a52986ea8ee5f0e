// Package authz decides whether a navigation target may be shown to the
// current session.
package authz

import (
	"net/url"
	"strings"

	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/store"
)

type Decision int

const (
	Render Decision = iota
	RedirectToLogin
	RedirectToUnauthorized
	Redirect
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToUnauthorized:
		return "redirect-to-unauthorized"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not-found"
	}
	return "unknown"
}

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	DefaultLanding   = "/dashboard"
)

// Decide is the gate for a protected route. An empty allowed set admits
// any signed-in role.
func Decide(isAuthenticated bool, role model.Role, allowed []model.Role) Decision {
	if !isAuthenticated {
		return RedirectToLogin
	}
	if len(allowed) == 0 {
		return Render
	}
	for _, r := range allowed {
		if r == role {
			return Render
		}
	}
	return RedirectToUnauthorized
}

// Route is one entry of the navigation table. Pattern segments starting
// with ':' match any single segment.
type Route struct {
	Pattern    string
	Public     bool
	Roles      []model.Role
	RedirectTo string
}

// Routes is the application's navigation table.
var Routes = []Route{
	{Pattern: "/", RedirectTo: LoginPath},
	{Pattern: "/login", Public: true},
	{Pattern: "/register", Public: true},
	{Pattern: "/forgot-password", Public: true},
	{Pattern: "/reset-password/:token", Public: true},
	{Pattern: "/unauthorized", Public: true},
	{Pattern: "/dashboard"},
	{Pattern: "/profile"},
	{Pattern: "/resources", Roles: []model.Role{model.RoleProvider, model.RoleAdmin}},
	{Pattern: "/admin", Roles: []model.Role{model.RoleAdmin}},
}

func (r Route) matches(path string) bool {
	want := segments(r.Pattern)
	got := segments(path)
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, ":") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

func segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Outcome is the gate's answer for one location. From holds the requested
// location so a login can return to it.
type Outcome struct {
	Decision Decision
	Redirect string
	From     string
}

// StateReader is satisfied by *store.Store.
type StateReader interface {
	State() store.State
}

type Guard struct {
	state  StateReader
	routes []Route
}

func NewGuard(state StateReader) *Guard {
	return &Guard{state: state, routes: Routes}
}

// Lookup returns the route location resolves to.
func (g *Guard) Lookup(location string) (Route, bool) {
	path := location
	if u, err := url.Parse(location); err == nil {
		path = u.Path
	}
	if path == "" {
		path = "/"
	}
	for _, r := range g.routes {
		if r.matches(path) {
			return r, true
		}
	}
	return Route{}, false
}

func (g *Guard) Check(location string) Outcome {
	route, ok := g.Lookup(location)
	if !ok {
		return Outcome{Decision: NotFound, From: location}
	}
	if route.RedirectTo != "" {
		return Outcome{Decision: Redirect, Redirect: route.RedirectTo, From: location}
	}
	if route.Public {
		return Outcome{Decision: Render, From: location}
	}

	auth := g.state.State().Auth
	var role model.Role
	if auth.User != nil {
		role = auth.User.Role
	}

	out := Outcome{Decision: Decide(auth.IsAuthenticated, role, route.Roles), From: location}
	switch out.Decision {
	case RedirectToLogin:
		out.Redirect = LoginPath
	case RedirectToUnauthorized:
		out.Redirect = UnauthorizedPath
	}
	return out
}

// AfterLogin is where a successful login lands: the location the gate
// turned away, or the dashboard.
func AfterLogin(o Outcome) string {
	if o.Decision == RedirectToLogin && o.From != "" {
		return o.From
	}
	return DefaultLanding
}
