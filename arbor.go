package arbor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/render"
	"github.com/aretw0/arbor/pkg/sanitize"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/aretw0/arbor/pkg/session"
)

// Engine hosts form sessions: it rebuilds the record of a session from its stored
// values, applies input to the pending target and persists the result of each pass.
// It implements ports.SessionHost and is safe for concurrent use.
type Engine struct {
	registry  *registry.Registry
	store     ports.StateStore
	sessions  *session.Manager
	locker    ports.DistributedLocker
	sanitizer *sanitize.Sanitizer
	maxInput  int
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

var _ ports.SessionHost = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRegistry shares an existing schema registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithSessionManager injects a preconfigured session manager; WithStore and WithLocker
// are ignored when it is set.
func WithSessionManager(m *session.Manager) Option {
	return func(e *Engine) {
		e.sessions = m
	}
}

// WithLocker enables distributed locking of sessions.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxInputSize limits submitted values to n bytes.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.maxInput = n
	}
}

// New initializes an Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.registry == nil {
		eng.registry = registry.NewRegistry()
	}
	if eng.sessions == nil {
		if eng.store == nil {
			eng.store = memory.NewStore()
		}
		mopts := []session.Option{session.WithLogger(eng.logger)}
		if eng.locker != nil {
			mopts = append(mopts, session.WithLocker(eng.locker))
		}
		eng.sessions = session.NewManager(eng.store, mopts...)
	}
	eng.store = eng.sessions.Store()
	eng.sanitizer = sanitize.New(eng.maxInput)
	return eng, nil
}

// Registry returns the schema registry.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Sessions returns the session manager.
func (e *Engine) Sessions() *session.Manager { return e.sessions }

// Register adds a schema built from Go code.
func (e *Engine) Register(name string, factory func() *schema.Struct) error {
	if err := e.registry.Register(name, factory); err != nil {
		return err
	}
	e.logger.Debug("Schema registered", "schema", name)
	return nil
}

// RegisterDefinition compiles def and registers it under its name.
func (e *Engine) RegisterDefinition(def *dsl.Definition) error {
	factory, err := def.Compile()
	if err != nil {
		return fmt.Errorf("schema %s: %w", def.Name, err)
	}
	return e.Register(def.Name, factory)
}

// LoadSource registers every definition src holds and returns how many were loaded.
// Nothing is registered when any definition fails to compile.
func (e *Engine) LoadSource(ctx context.Context, src ports.SchemaSource) (int, error) {
	defs, err := src.Definitions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema source: %w", err)
	}
	factories := make(map[string]dsl.Factory, len(defs))
	var errs []error
	for _, def := range defs {
		f, err := def.Compile()
		if err != nil {
			errs = append(errs, fmt.Errorf("schema %s: %w", def.Name, err))
			continue
		}
		factories[def.Name] = f
	}
	if err := errors.Join(errs...); err != nil {
		return 0, err
	}
	for _, def := range defs {
		if err := e.Register(def.Name, factories[def.Name]); err != nil {
			return 0, err
		}
	}
	return len(defs), nil
}

// Schemas lists the registered schemas.
func (e *Engine) Schemas() []registry.Info {
	return e.registry.List()
}

// Create opens a session for the named schema and runs its first pass.
func (e *Engine) Create(ctx context.Context, schemaName string) (*domain.Response, error) {
	if !e.registry.Has(schemaName) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSchema, schemaName)
	}
	state, err := e.sessions.Create(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Session started", "session_id", state.SessionID, "schema", schemaName)
	return e.step(ctx, state.SessionID, nil)
}

// Get re-renders a session without changing it.
func (e *Engine) Get(ctx context.Context, sessionID string) (*domain.Response, error) {
	state, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	form, err := e.restore(state)
	if err != nil {
		return nil, err
	}
	return e.pass(ctx, state, form)
}

// Submit applies value to field and runs the next pass. Input the field rejects, or
// a field other than the pending one, leaves the session unchanged and is reported in
// Response.Notice.
func (e *Engine) Submit(ctx context.Context, sessionID, field, value string) (*domain.Response, error) {
	return e.step(ctx, sessionID, &submission{field: field, value: value})
}

// Invalidate removes the session.
func (e *Engine) Invalidate(ctx context.Context, sessionID string) error {
	if err := e.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	e.logger.Info("Session invalidated", "session_id", sessionID)
	return nil
}

// Record rebuilds the live record of a session so typed callers can read its values.
func (e *Engine) Record(ctx context.Context, sessionID string) (*schema.Struct, error) {
	state, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	form, err := e.restore(state)
	if err != nil {
		return nil, err
	}
	return form.Root(), nil
}

type submission struct {
	field string
	value string
}

// step runs one request under the session lock: restore, apply, render, save.
// Hooks fire only once the new state is stored.
func (e *Engine) step(ctx context.Context, sessionID string, in *submission) (*domain.Response, error) {
	var (
		before   *domain.State
		resp     *domain.Response
		rejected error
	)
	after, err := e.sessions.Update(ctx, sessionID, func(ctx context.Context, state *domain.State) error {
		before = state.Snapshot()
		rejected = nil

		form, err := e.restore(state)
		if err != nil {
			return err
		}
		if in != nil {
			if err := e.apply(form, in); err != nil {
				if !isRejection(err) {
					return err
				}
				rejected = err
			} else {
				state.History = append(state.History, in.field)
			}
		}

		rec := render.NewRecorder()
		target, err := form.Render(rec)
		if err != nil {
			return err
		}
		state.Values = form.Values()
		state.Pending = ""
		state.Status = domain.StatusComplete
		if target != nil {
			state.Pending = target.Field
			state.Status = domain.StatusActive
		}
		resp = &domain.Response{
			SessionID: state.SessionID,
			Schema:    state.Schema,
			Ops:       rec.Ops(),
			Target:    target,
			Complete:  target == nil,
			Values:    state.Values,
		}
		if rejected != nil {
			resp.Notice = rejected.Error()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	base := domain.EventBase{SessionID: after.SessionID, Schema: after.Schema}
	if in != nil {
		ev := &domain.InputEvent{EventBase: base, Field: in.field, Err: rejected}
		if rejected != nil {
			ev.Type, ev.Timestamp = domain.EventReject, time.Now()
			e.logger.Debug("Input rejected", "session_id", after.SessionID, "field", in.field, "err", rejected)
			if e.hooks.OnReject != nil {
				e.hooks.OnReject(ctx, ev)
			}
		} else {
			ev.Type, ev.Timestamp = domain.EventApply, time.Now()
			e.logger.Debug("Input applied", "session_id", after.SessionID, "field", in.field)
			if e.hooks.OnApply != nil {
				e.hooks.OnApply(ctx, ev)
			}
		}
	}
	e.firePass(ctx, base, resp)
	if after.Status == domain.StatusComplete && (before == nil || before.Status != domain.StatusComplete) {
		e.logger.Info("Session complete", "session_id", after.SessionID, "schema", after.Schema)
		if e.hooks.OnComplete != nil {
			done := base
			done.Type, done.Timestamp = domain.EventComplete, time.Now()
			e.hooks.OnComplete(ctx, &done)
		}
	}
	if e.hooks.OnChange != nil {
		if diff := domain.Diff(before, after); diff != nil {
			e.hooks.OnChange(ctx, diff)
		}
	}
	return resp, nil
}

// pass renders a restored form without touching the store.
func (e *Engine) pass(ctx context.Context, state *domain.State, form *schema.Form) (*domain.Response, error) {
	rec := render.NewRecorder()
	target, err := form.Render(rec)
	if err != nil {
		return nil, err
	}
	resp := &domain.Response{
		SessionID: state.SessionID,
		Schema:    state.Schema,
		Ops:       rec.Ops(),
		Target:    target,
		Complete:  target == nil,
		Values:    form.Values(),
	}
	e.firePass(ctx, domain.EventBase{SessionID: state.SessionID, Schema: state.Schema}, resp)
	return resp, nil
}

func (e *Engine) firePass(ctx context.Context, base domain.EventBase, resp *domain.Response) {
	if e.hooks.OnPass == nil {
		return
	}
	ev := &domain.PassEvent{EventBase: base, Ops: len(resp.Ops)}
	ev.Type, ev.Timestamp = domain.EventPass, time.Now()
	if resp.Target != nil {
		ev.Pending = resp.Target.Field
	}
	e.hooks.OnPass(ctx, ev)
}

// restore rebuilds the record of state and replays its values.
func (e *Engine) restore(state *domain.State) (*schema.Form, error) {
	root, err := e.registry.New(state.Schema)
	if err != nil {
		return nil, err
	}
	form := schema.NewForm(root)
	if err := form.Load(state.Values); err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", state.SessionID, err)
	}
	return form, nil
}

func (e *Engine) apply(form *schema.Form, in *submission) error {
	value, err := e.sanitizer.Clean(in.value)
	if err != nil {
		return err
	}
	return form.Apply(in.field, value)
}

// isRejection reports errors that are the user's to fix.
func isRejection(err error) bool {
	return domain.IsRejection(err) ||
		errors.Is(err, sanitize.ErrInputTooLarge) ||
		errors.Is(err, sanitize.ErrInvalidUTF8)
}
