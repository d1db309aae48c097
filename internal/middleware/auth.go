package middleware

import (
	"net/http"
	"strings"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const callerContextKey = "caller"

// Authenticate checks for a valid JWT and stores the caller identity in the
// request context. Requests without a valid token are rejected.
func Authenticate(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, err := callerFromHeader(c, jwtSecret)
			if err != nil {
				return err
			}
			if caller == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}
			c.Set(callerContextKey, caller)
			return next(c)
		}
	}
}

// OptionalAuthenticate stores the caller identity when a valid token is
// present but lets anonymous requests through. Listing endpoints use it to
// annotate per-caller state.
func OptionalAuthenticate(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, err := callerFromHeader(c, jwtSecret)
			if err == nil && caller != nil {
				c.Set(callerContextKey, caller)
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects callers without the admin role. Must run after
// Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, _ := c.Get(callerContextKey).(*models.Caller)
			if !caller.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

// CallerFromContext returns the identity stored by the auth middleware, or
// nil for anonymous requests.
func CallerFromContext(c echo.Context) *models.Caller {
	caller, _ := c.Get(callerContextKey).(*models.Caller)
	return caller
}

func callerFromHeader(c echo.Context, jwtSecret string) (*models.Caller, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	tokenString := parts[1]

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return &models.Caller{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
