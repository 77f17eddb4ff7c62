package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/keyxmakerx/examboard/internal/middleware"
	"github.com/keyxmakerx/examboard/internal/plugins/answersheets"
	"github.com/keyxmakerx/examboard/internal/plugins/audit"
	"github.com/keyxmakerx/examboard/internal/plugins/auth"
	"github.com/keyxmakerx/examboard/internal/plugins/examiners"
	"github.com/keyxmakerx/examboard/internal/plugins/invigilation"
	"github.com/keyxmakerx/examboard/internal/plugins/schools"
	"github.com/keyxmakerx/examboard/internal/plugins/stats"
	"github.com/keyxmakerx/examboard/internal/plugins/students"
	"github.com/keyxmakerx/examboard/internal/plugins/subjects"
	"github.com/keyxmakerx/examboard/internal/routing"
)

// Credential endpoint throttles, per client IP.
const (
	loginRequests    = 10
	loginWindow      = time.Minute
	registerRequests = 5
	registerWindow   = time.Hour
)

// healthTimeout bounds the dependency pings behind /healthz.
const healthTimeout = 2 * time.Second

// RegisterRoutes collects every plugin's route table and mounts it on Echo.
// It refuses to start when a gated route names an operation the policy does
// not declare, when the policy declares an operation no route uses, or when
// two routes share a method and path.
func (a *App) RegisterRoutes(svc Services) error {
	var loginLimit, registerLimit echo.MiddlewareFunc
	if a.Redis != nil {
		loginLimit = middleware.RateLimit(a.Redis, "login", loginRequests, loginWindow)
		registerLimit = middleware.RateLimit(a.Redis, "register", registerRequests, registerWindow)
	}

	var table []routing.Route
	table = append(table,
		routing.Public(http.MethodGet, "/healthz", a.healthz),
		routing.Public(http.MethodGet, "/metrics",
			echo.WrapHandler(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))),
	)
	table = append(table, auth.Routes(
		auth.NewHandler(svc.Auth, a.Config.Auth.TokenTTL, a.Config.Auth.SecureCookies),
		loginLimit, registerLimit)...)
	table = append(table, schools.Routes(schools.NewHandler(svc.Schools))...)
	table = append(table, subjects.Routes(subjects.NewHandler(svc.Subjects))...)
	table = append(table, examiners.Routes(examiners.NewHandler(svc.Examiners))...)
	table = append(table, students.Routes(students.NewHandler(svc.Students))...)
	table = append(table, answersheets.Routes(answersheets.NewHandler(svc.AnswerSheets))...)
	table = append(table, invigilation.Routes(invigilation.NewHandler(svc.Invigilation))...)
	table = append(table, stats.Routes(stats.NewHandler(svc.Stats))...)
	table = append(table, audit.Routes(audit.NewHandler(svc.Audit))...)

	if err := a.checkTable(table); err != nil {
		return err
	}

	requireAuth := auth.RequireAuth(a.Tokens)
	for _, r := range table {
		a.Echo.Add(r.Method, r.Path, r.Handler, a.chain(r, requireAuth)...)
	}
	a.routes = table
	return nil
}

// chain builds the per-route middleware: the route's own middleware first
// (rate limits apply to anonymous callers too), then authentication, then
// the policy gate.
func (a *App) chain(r routing.Route, requireAuth echo.MiddlewareFunc) []echo.MiddlewareFunc {
	var mw []echo.MiddlewareFunc
	for _, m := range r.Middleware {
		if m != nil {
			mw = append(mw, m)
		}
	}
	switch r.Access {
	case routing.AccessAuthenticated:
		mw = append(mw, requireAuth)
	case routing.AccessGated:
		mw = append(mw, requireAuth, a.Policy.Require(r.Operation))
	}
	return mw
}

// checkTable validates the route table against the policy.
func (a *App) checkTable(table []routing.Route) error {
	seen := make(map[string]bool, len(table))
	used := make(map[routing.Operation]bool)

	for _, r := range table {
		if seen[r.String()] {
			return fmt.Errorf("duplicate route %s", r)
		}
		seen[r.String()] = true

		switch r.Access {
		case routing.AccessPublic, routing.AccessAuthenticated:
		case routing.AccessGated:
			if !a.Policy.Has(r.Operation) {
				return fmt.Errorf("route %s: operation %q missing from policy", r, r.Operation)
			}
			used[r.Operation] = true
		default:
			return fmt.Errorf("route %s: no access level declared", r)
		}
	}

	for _, op := range a.Policy.Operations() {
		if !used[op] {
			return fmt.Errorf("policy operation %q has no route", op)
		}
	}
	return nil
}

// Routes returns the mounted route table.
func (a *App) Routes() []routing.Route {
	return a.routes
}

// healthz reports whether MariaDB and Redis answer a ping.
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	if a.DB != nil {
		if err := a.DB.PingContext(ctx); err != nil {
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}
	if code != http.StatusOK {
		status["status"] = "degraded"
	}
	return c.JSON(code, status)
}
