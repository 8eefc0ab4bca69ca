package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

var (
	jwtSigningMethod = jwt.SigningMethodHS256

	errTokenMissing = errors.New("authentication token is missing")
)

// Claims are the identity claims of an access token. sub carries the principal id.
type Claims struct {
	Name string      `json:"name"`
	Role access.Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies access tokens.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret)}, nil
}

// Principal validates the token and returns the caller it identifies.
func (a *Authenticator) Principal(token string) (access.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
	)
	if err != nil {
		return access.Principal{}, err
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return access.Principal{}, fmt.Errorf("subject: %w", err)
	}
	return access.NewPrincipal(id, claims.Name, claims.Role)
}

// Middleware authenticates the request from the Authorization header, or from the
// token query parameter which browsers use for WebSocket handshakes.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokenFrom(c)
			if err != nil {
				return unauthorized(err)
			}
			principal, err := a.Principal(token)
			if err != nil {
				return unauthorized(err)
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func tokenFrom(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		return strings.TrimSpace(token), nil
	}
	if token := c.QueryParam("token"); token != "" {
		return token, nil
	}
	return "", errTokenMissing
}

func unauthorized(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required").SetInternal(err)
}

// principalOf returns the caller set by Middleware.
func principalOf(c echo.Context) access.Principal {
	p, _ := c.Get(principalKey).(access.Principal)
	return p
}
