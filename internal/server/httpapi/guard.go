package httpapi

import (
	"context"
	"net/http"
	"strings"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/logging"
	"github.com/dmitrijs2005/plantkeeper/internal/server/auth"
)

const (
	claimsKey = "claims"
	userIDKey = "user_id"
)

// TokenVerifier validates a compact token. *auth.TokenCodec satisfies it.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Guard authenticates requests carrying "Authorization: Bearer <token>".
type Guard struct {
	tokens TokenVerifier
}

func NewGuard(tokens TokenVerifier) *Guard {
	return &Guard{tokens: tokens}
}

// Extract returns the verified claims of r. The token must follow the
// "Bearer " prefix directly and contain no whitespace. A missing header,
// another scheme, a malformed or empty token and a failed verification
// all yield common.ErrorUnauthorized.
func (g *Guard) Extract(r *http.Request) (*auth.Claims, error) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return nil, common.ErrorUnauthorized
	}

	token := strings.TrimPrefix(header, common.BearerPrefix)
	if token == "" || strings.ContainsFunc(token, unicode.IsSpace) || g.tokens == nil {
		return nil, common.ErrorUnauthorized
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	return claims, nil
}

// Middleware rejects unauthenticated requests with 401 and stores the
// claims in the echo context otherwise.
func (g *Guard) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := g.Extract(c.Request())
		if err != nil {
			return writeError(c, logging.Nop{}, err)
		}
		c.Set(claimsKey, claims)
		return next(c)
	}
}

// resolveIdentity turns the token subject into the internal user id.
// It must run after Guard.Middleware.
func (s *Server) resolveIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsKey).(*auth.Claims)
		if !ok {
			return writeError(c, s.logger, common.ErrorUnauthorized)
		}

		id, err := s.deps.Auth.ResolveUserID(c.Request().Context(), claims.Subject)
		if err != nil {
			return writeError(c, s.logger, err)
		}
		c.Set(userIDKey, id)
		return next(c)
	}
}

func userID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

func requestContext(c echo.Context) context.Context {
	return c.Request().Context()
}
