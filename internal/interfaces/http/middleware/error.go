package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// ErrorHandlingOption options for error handling
type ErrorHandlingOption struct {
	Handler func(c echo.Context, err error)
}

// ErrorHandling recover panics and catch errors escaping the handlers so the
// connection always gets a response
func ErrorHandling(options ...*ErrorHandlingOption) echo.MiddlewareFunc {
	handler := func(c echo.Context, err error) {}
	if len(options) > 0 && options[0].Handler != nil {
		handler = options[0].Handler
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if any := recover(); any != nil {
					err, ok := any.(error)
					if !ok {
						err = fmt.Errorf("%v", any)
					}
					handler(c, err)
				}
			}()
			if err := next(c); err != nil {
				handler(c, err)
			}
			return nil
		}
	}
}
