package dispatcher

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// Registry is the default handler store: typed tables populated explicitly at
// startup and read per dispatch. It implements both Registrar and
// HandlerProvider; the scopes it hands out are views over itself with a no-op
// Close.
//
// Registry is concurrency-safe and contains no global state.
type Registry struct {
	mu sync.RWMutex

	void   map[reflect.Type]cmed.RequestFunc
	result map[reflect.Type]cmed.RequestFunc
	notif  map[reflect.Type][]cmed.NotificationFunc

	// shape-wide behaviors in registration order
	reqBehaviors []cmed.PipelineBehavior
	resBehaviors []cmed.PipelineBehavior
	// per request type, running inside the shape-wide ones
	typeBehaviors map[reflect.Type][]cmed.PipelineBehavior
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		void:          make(map[reflect.Type]cmed.RequestFunc),
		result:        make(map[reflect.Type]cmed.RequestFunc),
		notif:         make(map[reflect.Type][]cmed.NotificationFunc),
		typeBehaviors: make(map[reflect.Type][]cmed.PipelineBehavior),
	}
}

// BindRequestOf registers a void handler for a specific request type.
// Provide a zero value of the request type via sample. A request type holds
// exactly one handler across both shapes; rebinding is rejected.
func (r *Registry) BindRequestOf(sample any, fn cmed.RequestFunc) error {
	if sample == nil || fn == nil {
		return fmt.Errorf("bind request: %w", berr.ErrNilHandler)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := reflect.TypeOf(sample)
	if r.bound(t) {
		return fmt.Errorf("bind request %s: %w", t.String(), berr.ErrHandlerExists)
	}

	r.void[t] = fn

	return nil
}

// BindResultOf registers a result handler for a specific request type.
// A request type holds exactly one handler across both shapes; rebinding is
// rejected.
func (r *Registry) BindResultOf(sample any, fn cmed.RequestFunc) error {
	if sample == nil || fn == nil {
		return fmt.Errorf("bind result: %w", berr.ErrNilHandler)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := reflect.TypeOf(sample)
	if r.bound(t) {
		return fmt.Errorf("bind result %s: %w", t.String(), berr.ErrHandlerExists)
	}

	r.result[t] = fn

	return nil
}

// bound reports whether t already has a request handler in either shape.
// Callers must hold mu.
func (r *Registry) bound(t reflect.Type) bool {
	if _, exists := r.void[t]; exists {
		return true
	}

	_, exists := r.result[t]

	return exists
}

// BindNotificationOf appends a handler for a specific notification type.
// Multiple handlers per type are allowed; registration order is preserved.
func (r *Registry) BindNotificationOf(sample any, fn cmed.NotificationFunc) error {
	if sample == nil || fn == nil {
		return fmt.Errorf("bind notification: %w", berr.ErrNilHandler)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := reflect.TypeOf(sample)
	r.notif[t] = append(r.notif[t], fn)

	return nil
}

// Use registers behaviors for both request shapes, in registration order.
func (r *Registry) Use(behaviors ...cmed.PipelineBehavior) error {
	if err := noNils(behaviors); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reqBehaviors = append(r.reqBehaviors, behaviors...)
	r.resBehaviors = append(r.resBehaviors, behaviors...)

	return nil
}

// UseRequest registers behaviors for void requests only.
func (r *Registry) UseRequest(behaviors ...cmed.PipelineBehavior) error {
	if err := noNils(behaviors); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reqBehaviors = append(r.reqBehaviors, behaviors...)

	return nil
}

// UseResult registers behaviors for result requests only.
func (r *Registry) UseResult(behaviors ...cmed.PipelineBehavior) error {
	if err := noNils(behaviors); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.resBehaviors = append(r.resBehaviors, behaviors...)

	return nil
}

// UseFor registers behaviors for a single request type. They run inside the
// shape-wide behaviors, in registration order.
func (r *Registry) UseFor(sample any, behaviors ...cmed.PipelineBehavior) error {
	if sample == nil {
		return fmt.Errorf("use behavior: %w", berr.ErrNilHandler)
	}

	if err := noNils(behaviors); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := reflect.TypeOf(sample)
	r.typeBehaviors[t] = append(r.typeBehaviors[t], behaviors...)

	return nil
}

func noNils(behaviors []cmed.PipelineBehavior) error {
	for _, b := range behaviors {
		if b == nil {
			return fmt.Errorf("use behavior: %w", berr.ErrNilHandler)
		}
	}

	return nil
}

// Scoped returns a resolution view over the Registry itself. Bindings are
// process-wide here, so Close is a no-op; providers that build per-dispatch
// handler instances release them in Close instead.
func (r *Registry) Scoped(ctx context.Context) cmed.ResolutionScope {
	_ = ctx
	return registryScope{r: r}
}

type registryScope struct{ r *Registry }

func (s registryScope) Request(t reflect.Type, shape cmed.Shape) (cmed.RequestFunc, bool) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	if shape == cmed.ShapeResult {
		fn, ok := s.r.result[t]
		return fn, ok
	}

	fn, ok := s.r.void[t]

	return fn, ok
}

func (s registryScope) Behaviors(shape cmed.Shape, t reflect.Type) []cmed.PipelineBehavior {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	wide := s.r.reqBehaviors
	if shape == cmed.ShapeResult {
		wide = s.r.resBehaviors
	}

	scoped := s.r.typeBehaviors[t]

	out := make([]cmed.PipelineBehavior, 0, len(wide)+len(scoped))
	out = append(out, wide...)
	out = append(out, scoped...)

	return out
}

func (s registryScope) Notifications(t reflect.Type) []cmed.NotificationFunc {
	s.r.mu.RLock()
	fns := append([]cmed.NotificationFunc(nil), s.r.notif[t]...)
	s.r.mu.RUnlock()

	return fns
}

func (s registryScope) Close() error { return nil }
