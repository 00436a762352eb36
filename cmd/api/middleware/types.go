package middleware

import "net/http"

type MiddlewareConstructor func(http.Handler) http.Handler

// Chain composes multiple middleware constructors into one reusable wrapper.
func Chain(constructors ...MiddlewareConstructor) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		handler := h
		for i := len(constructors) - 1; i >= 0; i-- {
			handler = constructors[i](handler)
		}
		return handler
	}
}

// Wrap applies the provided middleware constructors to the given handler.
func Wrap(h http.Handler, constructors ...MiddlewareConstructor) http.Handler {
	return Chain(constructors...)(h)
}

// Group lets you register many routes with a shared middleware chain.
type Group struct {
	mux  *http.ServeMux
	wrap func(http.Handler) http.Handler
}

func NewGroup(mux *http.ServeMux, constructors ...MiddlewareConstructor) *Group {
	return &Group{
		mux:  mux,
		wrap: Chain(constructors...),
	}
}

func (g *Group) Handle(pattern string, h http.Handler) {
	g.mux.Handle(pattern, g.wrap(h))
}

func (g *Group) HandleFunc(pattern string, fn func(http.ResponseWriter, *http.Request)) {
	g.Handle(pattern, http.HandlerFunc(fn))
}
