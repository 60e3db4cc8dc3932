package middleware

import (
	"invoicedash/internal/common"
	"invoicedash/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

// ClaimsContextKey is the echo context key holding *services.SessionClaims after auth.
const ClaimsContextKey = "session"

// SessionAuth admits requests that carry a valid session token, either in the session
// cookie or as a Bearer token. The user is put on the request context.
func SessionAuth(tokens *services.TokenIssuer) echo.MiddlewareFunc {
	return echojwt.WithConfig(SessionConfig(tokens))
}

// SessionConfig is the echo-jwt configuration behind SessionAuth.
func SessionConfig(tokens *services.TokenIssuer) echojwt.Config {
	return echojwt.Config{
		ContextKey:  ClaimsContextKey,
		TokenLookup: "header:Authorization:Bearer ,cookie:" + SessionCookie,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.Parse(auth)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(ClaimsContextKey).(*services.SessionClaims)
			if !ok {
				return
			}
			ctx := common.WithUser(c.Request().Context(), claims.Subject, claims.Email)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorizedError(c)
		},
	}
}
