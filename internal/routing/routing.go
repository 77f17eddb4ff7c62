// Package routing holds the declarative route table types. Every plugin
// describes its endpoints as a list of Route values; internal/app mounts them
// and attaches the authentication and authorization middleware each route's
// Access demands. Keeping the declaration separate from the mounting means a
// route can never be registered without an explicit access decision.
package routing

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// Access is the authentication requirement of a route.
type Access int

const (
	// AccessPublic routes accept anonymous callers.
	AccessPublic Access = iota + 1

	// AccessAuthenticated routes accept any caller with a valid token.
	AccessAuthenticated

	// AccessGated routes require a valid token and a role the policy allows
	// for the route's Operation.
	AccessGated
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessAuthenticated:
		return "authenticated"
	case AccessGated:
		return "gated"
	default:
		return fmt.Sprintf("Access(%d)", int(a))
	}
}

// Operation names a gated action, e.g. "schools.create". The authorization
// policy maps each Operation to its allowed roles.
type Operation string

// Route is one entry of the route table.
type Route struct {
	Method    string
	Path      string
	Access    Access
	Operation Operation
	Handler   echo.HandlerFunc

	// Middleware runs before authentication, e.g. rate limiting.
	Middleware []echo.MiddlewareFunc
}

// Public declares a route open to anonymous callers.
func Public(method, path string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) Route {
	return Route{Method: method, Path: path, Access: AccessPublic, Handler: h, Middleware: mw}
}

// Authenticated declares a route open to any authenticated caller.
func Authenticated(method, path string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) Route {
	return Route{Method: method, Path: path, Access: AccessAuthenticated, Handler: h, Middleware: mw}
}

// Gated declares a route whose allowed roles are looked up by op.
func Gated(method, path string, op Operation, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) Route {
	return Route{Method: method, Path: path, Access: AccessGated, Operation: op, Handler: h, Middleware: mw}
}

// String renders the route as "METHOD /path".
func (r Route) String() string {
	return r.Method + " " + r.Path
}
