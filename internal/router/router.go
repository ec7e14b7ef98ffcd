// Package router dispatches named operations to handlers one at a time and
// closes after its terminal operation.
package router

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrClosed           = errors.New("router closed")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Handler serves one request body and returns the response body.
type Handler func(ctx context.Context, body string) (string, error)

type route struct {
	h        Handler
	terminal bool
}

// Router is a fixed table of operations. Dispatch is serialized: a handler
// never runs concurrently with another one.
type Router struct {
	mu     sync.Mutex
	routes map[string]route
	order  []string
	closed bool
	done   chan struct{}
}

func New() *Router {
	return &Router{routes: map[string]route{}, done: make(chan struct{})}
}

// Handle registers h under name. Registering a name twice panics.
func (r *Router) Handle(name string, h Handler) {
	r.add(name, h, false)
}

// HandleTerminal registers the operation after which the router closes.
func (r *Router) HandleTerminal(name string, h Handler) {
	r.add(name, h, true)
}

func (r *Router) add(name string, h Handler, terminal bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.routes[name]; ok {
		panic("router: duplicate operation " + name)
	}
	r.routes[name] = route{h: h, terminal: terminal}
	r.order = append(r.order, name)
}

// Operations lists registered names in registration order.
func (r *Router) Operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Dispatch runs the handler for name. After the terminal operation has
// been handled, every call returns ErrClosed. A panicking handler is
// reported as an error.
func (r *Router) Dispatch(ctx context.Context, name, body string) (resp string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", ErrClosed
	}
	rt, ok := r.routes[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	if rt.terminal {
		defer r.close()
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s: handler panic: %v", name, p)
		}
	}()
	return rt.h(ctx, body)
}

func (r *Router) close() {
	r.closed = true
	close(r.done)
}

// Done is closed once the terminal operation has been handled.
func (r *Router) Done() <-chan struct{} { return r.done }
