package mux

import (
	"net/http"
	"strings"
)

// Route matches a request by path (exact or prefix) and, optionally, by
// method. Routes are static: the documentation server exposes a handful of
// fixed endpoints, so there are no path variables.
type Route struct {
	handler http.Handler
	path    string
	prefix  bool
	methods []string
}

// Match matches this route against the request.
func (r *Route) Match(req *http.Request, match *RouteMatch) bool {
	if !r.matchPath(req.URL.Path) {
		return false
	}

	if len(r.methods) > 0 && !matchInArray(r.methods, req.Method) {
		match.MatchErr = ErrMethodMismatch
		return false
	}

	// A previous route may have flagged a method mismatch; this one wins.
	if match.MatchErr == ErrMethodMismatch {
		match.MatchErr = nil
	}

	match.Route = r
	match.Handler = r.handler
	return true
}

func (r *Route) matchPath(p string) bool {
	if r.path == "" {
		return true
	}
	if r.prefix {
		return strings.HasPrefix(p, r.path)
	}
	return p == r.path
}

// Handler sets a handler for the route.
func (r *Route) Handler(handler http.Handler) *Route {
	r.handler = handler
	return r
}

// HandlerFunc sets a handler function for the route.
func (r *Route) HandlerFunc(f func(http.ResponseWriter, *http.Request)) *Route {
	return r.Handler(http.HandlerFunc(f))
}

// GetHandler returns the handler for the route, if any.
func (r *Route) GetHandler() http.Handler {
	return r.handler
}

// Path matches the URL path exactly.
func (r *Route) Path(tpl string) *Route {
	r.path = tpl
	r.prefix = false
	return r
}

// PathPrefix matches every URL path starting with tpl.
func (r *Route) PathPrefix(tpl string) *Route {
	r.path = tpl
	r.prefix = true
	return r
}

// Methods adds a matcher for HTTP methods. Methods are compared in upper
// case per RFC 7231 Section 4.1.
func (r *Route) Methods(methods ...string) *Route {
	for _, m := range methods {
		r.methods = append(r.methods, strings.ToUpper(m))
	}
	return r
}

// GetPathTemplate returns the path the route was registered with.
func (r *Route) GetPathTemplate() (string, error) {
	if r.path == "" {
		return "", ErrNotFound
	}
	return r.path, nil
}

// GetMethods returns the methods the route matches against.
func (r *Route) GetMethods() ([]string, error) {
	if len(r.methods) == 0 {
		return nil, ErrNotFound
	}
	return append([]string(nil), r.methods...), nil
}
