package middleware

import (
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/dmitryhil/vineweb/pkg/response"
	"github.com/dmitryhil/vineweb/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// IsLoggedIn validates the HS256 bearer token and stores it under "user".
// Both a missing and a rejected token answer 401.
func IsLoggedIn(jwtSecret string) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    []byte(jwtSecret),
		SigningMethod: middleware.AlgorithmHS256,
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			return response.WriteErrorResponse(c, errs.ErrInvalidToken, nil)
		},
	})
}

// RequireAdmin must run after IsLoggedIn.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := utils.ExtractTokenUser(c)
		if err != nil {
			return response.WriteErrorResponse(c, errs.ErrInvalidToken, nil)
		}

		if user.Role != domain.RoleAdmin {
			return response.WriteErrorResponse(c, errs.ErrUnauthorized, nil)
		}

		return next(c)
	}
}
