package domain

import (
	"net/url"

	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests that hit no registered route.
const unmatchedRoute = "unmatched"

// RequestRoute returns the route template of the request, such as /limit-orders/:id,
// so that metric labels do not grow with every order ID.
func RequestRoute(c echo.Context) string {
	if route := c.Path(); route != "" {
		return route
	}

	parsedURL, err := url.Parse(c.Request().RequestURI)
	if err != nil || parsedURL.Path == "" {
		return unmatchedRoute
	}
	return unmatchedRoute + ":" + parsedURL.Path
}
