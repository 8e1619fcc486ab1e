package server

import "net/http"

type Matcher func(r *http.Request) bool

type route struct {
	match   Matcher
	handler http.Handler
}

// Router dispatches to the first route whose matcher accepts the request and
// to the fallback handler when none does.
type Router struct {
	routes   []route
	fallback http.Handler
}

func NewRouter(fallback http.Handler) *Router {
	return &Router{fallback: fallback}
}

func (rt *Router) Handle(match Matcher, h http.Handler) {
	rt.routes = append(rt.routes, route{match: match, handler: h})
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, route := range rt.routes {
		if route.match(r) {
			route.handler.ServeHTTP(w, r)
			return
		}
	}
	if rt.fallback == nil {
		http.NotFound(w, r)
		return
	}
	rt.fallback.ServeHTTP(w, r)
}

// Exact matches one method on exactly one path. A request carrying a query
// string, even an empty one, does not match.
func Exact(method, path string) Matcher {
	return func(r *http.Request) bool {
		return r.Method == method &&
			r.URL.Path == path &&
			r.URL.RawQuery == "" &&
			!r.URL.ForceQuery
	}
}
