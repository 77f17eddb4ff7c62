package auth

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/examboard/internal/apperror"
)

// contextKeyIdentity stores the verified caller in the Echo context. Other
// plugins read it through GetIdentity.
const contextKeyIdentity = "auth_identity"

// TypeMissingCredential marks a request that carried no bearer token.
const TypeMissingCredential = "missing_credential"

// RequireAuth returns the authentication gateway. It extracts the bearer
// token, verifies it, and stores the resolved identity in the context. Both
// verification failure modes produce the same generic 401.
func RequireAuth(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return apperror.NewUnauthorized("authentication required").WithType(TypeMissingCredential)
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				slog.Debug("token rejected",
					slog.Bool("expired", errors.Is(err, ErrTokenExpired)),
					slog.String("path", c.Request().URL.Path),
				)
				return apperror.NewUnauthorized("invalid or expired token")
			}

			id := claims.Identity
			c.Set(contextKeyIdentity, &id)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetIdentity returns the verified caller, or nil when RequireAuth did not
// run for this route.
func GetIdentity(c echo.Context) *Identity {
	id, ok := c.Get(contextKeyIdentity).(*Identity)
	if !ok {
		return nil
	}
	return id
}

// SetIdentity stores id in the context. Used by tests of downstream handlers.
func SetIdentity(c echo.Context, id *Identity) {
	c.Set(contextKeyIdentity, id)
}
