package mux

import (
	"context"
	"errors"
	"net/http"
)

type contextKey int

const routeKey contextKey = iota

// CurrentRoute returns the matched route for the current request, if any.
// Only available inside handlers dispatched by a Router.
func CurrentRoute(r *http.Request) *Route {
	if rv, ok := r.Context().Value(routeKey).(*Route); ok {
		return rv
	}
	return nil
}

func setRouteContext(r *http.Request, route *Route) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), routeKey, route))
}

// RouteMatch stores information about a matched route.
type RouteMatch struct {
	// Route is the matched route, if any.
	Route *Route

	// Handler is the handler to dispatch, already wrapped with the
	// router middleware.
	Handler http.Handler

	// MatchErr is set to ErrMethodMismatch when the request method
	// does not match but the path does. This triggers a 405 response
	// per RFC 7231 Section 6.5.5.
	MatchErr error

	methodNotAllowed bool
}

// MiddlewareFunc is a function which receives an http.Handler and returns
// another http.Handler. Typically, the returned handler is a closure which
// does something with the http.ResponseWriter and http.Request passed to
// it, and then calls the handler passed as parameter to the MiddlewareFunc.
type MiddlewareFunc func(http.Handler) http.Handler

// Middleware allows MiddlewareFunc to implement the middleware interface.
func (mw MiddlewareFunc) Middleware(handler http.Handler) http.Handler {
	return mw(handler)
}

// ErrMethodMismatch is returned when the method in the request does not match
// the method defined against the route. Triggers 405 Method Not Allowed
// per RFC 7231 Section 6.5.5.
var ErrMethodMismatch = errors.New("method is not allowed")

// ErrNotFound is returned when no route match is found. Triggers 404 Not Found
// per RFC 7231 Section 6.5.4.
var ErrNotFound = errors.New("no matching route was found")
