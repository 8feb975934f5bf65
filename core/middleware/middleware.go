package middleware

import (
	"net/http"
	"strings"
	"time"

	"wedding-rsvp/core/controller"
	"wedding-rsvp/core/errors"
	"wedding-rsvp/core/logger"
	"wedding-rsvp/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Middleware struct{}

func New() *Middleware {
	return &Middleware{}
}

// RequestLogger tags every request with an ID and logs method, path, status
// and latency on completion.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := uuid.NewString()
			c.Set("request_id", requestID)
			start := time.Now()

			err := next(c)

			logger.Info("request",
				"id", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency", time.Since(start).String(),
			)
			return err
		}
	}
}

// AuthMiddleware guards admin routes with a bearer token.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrMissingAuthorizationHeader, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrInvalidTokenFormat, "authorization header must be a bearer token")
			}

			claims, err := utils.ValidateAndParseToken(parts[1])
			if err != nil {
				code := errors.ErrUnauthorized
				msg := "invalid token"
				if ae, ok := err.(*errors.AppError); ok {
					code = ae.Code
					msg = ae.Message
				}
				return controller.NewErrorResponse(http.StatusUnauthorized, code, msg)
			}

			c.Set("token_data", claims)
			return next(c)
		}
	}
}
