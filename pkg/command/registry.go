package command

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Handler implements a single named command.
type Handler interface {
	Name() string
	Description() string
	Parameters() ParameterSchema
	Execute(ctx context.Context, params Params) (map[string]any, error)
}

// Registry routes command envelopes to handlers. Every dispatch yields
// exactly one Result; handler faults and panics never propagate to the
// caller.
type Registry struct {
	mu          sync.RWMutex
	handlers    map[string]Handler
	middlewares []Middleware
	executor    Executor
	logger      *slog.Logger
}

// RegistryOption configures registry construction.
type RegistryOption func(*Registry)

// WithLogger attaches a structured logger to the dispatch chain.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty command registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{handlers: make(map[string]Handler)}
	for _, opt := range opts {
		opt(r)
	}
	r.rebuildExecutor()
	return r
}

// Register adds a handler. The last registration for a name wins.
func (r *Registry) Register(h Handler) {
	if r == nil || h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Name()] = h
}

// Get returns a handler by name.
func (r *Registry) Get(name string) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// List returns all handlers sorted by name.
func (r *Registry) List() []Handler {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Use appends a middleware to the dispatch chain.
func (r *Registry) Use(mw Middleware) {
	if r == nil || mw == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw)
	r.rebuildExecutorLocked()
}

// Dispatch routes a command to its handler and wraps the outcome into
// the uniform envelope. Unknown names, validation failures, handler
// faults, and panics all surface as Failure results.
func (r *Registry) Dispatch(ctx context.Context, name string, params map[string]any) *Result {
	if ctx == nil {
		ctx = context.Background()
	}
	callID := ulid.Make().String()
	name = strings.TrimSpace(name)
	if name == "" {
		res := Fail(Errorf(CodeUnknown, "command name cannot be empty"))
		res.CallID = callID
		return res
	}
	h, ok := r.Get(name)
	if !ok {
		res := Fail(Errorf(CodeUnknown, "unknown command: %s", name))
		res.CallID = callID
		return res
	}
	execCtx := &ExecutionContext{
		Context:   ctx,
		Command:   name,
		Handler:   h,
		CallID:    callID,
		Params:    Params(params),
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
	}
	data, err := r.executorForCall()(execCtx)
	if err != nil {
		res := Fail(err)
		res.CallID = callID
		return res
	}
	res := Ok(data)
	res.CallID = callID
	return res
}

func (r *Registry) executorForCall() Executor {
	r.mu.RLock()
	exec := r.executor
	r.mu.RUnlock()
	if exec != nil {
		return exec
	}
	r.rebuildExecutor()
	r.mu.RLock()
	exec = r.executor
	r.mu.RUnlock()
	return exec
}

func (r *Registry) rebuildExecutor() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rebuildExecutorLocked()
}

func (r *Registry) rebuildExecutorLocked() {
	base := func(ctx *ExecutionContext) (map[string]any, error) {
		if err := ctx.Context.Err(); err != nil {
			return nil, err
		}
		if ctx.Params == nil {
			ctx.Params = Params{}
		}
		return ctx.Handler.Execute(ctx.Context, ctx.Params)
	}
	middlewares := make([]Middleware, 0, len(r.middlewares)+2)
	middlewares = append(middlewares, Recover(), Logging(r.logger))
	middlewares = append(middlewares, r.middlewares...)
	r.executor = Chain(middlewares...)(base)
}
