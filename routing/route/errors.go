package route

import "errors"

var (
	// errEmptyRoute is returned by Validate when a route has no hops.
	errEmptyRoute = errors.New("route must contain at least one hop")

	// errRouteTooLong is returned by Validate when a route exceeds the
	// maximum onion hop count.
	errRouteTooLong = errors.New("route exceeds maximum hop count")
)
