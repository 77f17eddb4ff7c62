package auth

import (
	"fmt"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/routing"
)

// RoleSet is an explicit set of allowed roles.
type RoleSet map[Role]struct{}

// Roles builds a RoleSet.
func Roles(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Contains reports membership.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Authorize passes when role is in allowed. Admin gets no implicit rights.
func Authorize(role Role, allowed RoleSet) error {
	if allowed.Contains(role) {
		return nil
	}
	return apperror.NewForbidden("insufficient permissions")
}

// Policy maps every gated operation to its allowed roles.
type Policy struct {
	rules map[routing.Operation]RoleSet
}

// NewPolicy creates a policy from the operation table. Unknown roles in the
// table are a programming error.
func NewPolicy(rules map[routing.Operation]RoleSet) (*Policy, error) {
	for op, roles := range rules {
		if len(roles) == 0 {
			return nil, fmt.Errorf("operation %q allows no roles", op)
		}
		for r := range roles {
			if !r.Valid() {
				return nil, fmt.Errorf("operation %q: unknown role %q", op, r)
			}
		}
	}
	return &Policy{rules: rules}, nil
}

// Check authorizes role for op. Operations missing from the table are denied.
func (p *Policy) Check(role Role, op routing.Operation) error {
	allowed, ok := p.rules[op]
	if !ok {
		return apperror.NewForbidden("insufficient permissions")
	}
	return Authorize(role, allowed)
}

// Has reports whether op is declared.
func (p *Policy) Has(op routing.Operation) bool {
	_, ok := p.rules[op]
	return ok
}

// Operations returns every declared operation, sorted.
func (p *Policy) Operations() []routing.Operation {
	out := make([]routing.Operation, 0, len(p.rules))
	for op := range p.rules {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Allowed returns the sorted roles allowed for op.
func (p *Policy) Allowed(op routing.Operation) []Role {
	out := make([]Role, 0, len(p.rules[op]))
	for r := range p.rules[op] {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Require returns middleware gating a route on op. It must run after
// RequireAuth.
func (p *Policy) Require(op routing.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := GetIdentity(c)
			if id == nil {
				return apperror.NewUnauthorized("authentication required").WithType(TypeMissingCredential)
			}
			if err := p.Check(id.Role, op); err != nil {
				return err
			}
			return next(c)
		}
	}
}
