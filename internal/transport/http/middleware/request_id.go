package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderRequestID is the header carrying the request correlation id.
const HeaderRequestID = "X-Request-Id"

// RequestID assigns a uuid to requests that arrive without one and echoes it
// back on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, id)
			c.Set(HeaderRequestID, id)
			return next(c)
		}
	}
}
