package state

import (
	"context"
	"slices"

	"github.com/99minutos/backoffice/internal/core/ports"
)

// Snapshot is a point-in-time copy of a Resource.
type Snapshot[T any] struct {
	Items   []T
	Current *T
	Lifecycle
}

// Resource is a collection of entities keyed by id, the entity currently
// being viewed, and the lifecycle of the last operation.
type Resource[T any] struct {
	tracker
	idOf    func(T) string
	items   []T
	current *T
}

func newResource[T any](idOf func(T) string) *Resource[T] {
	return &Resource[T]{idOf: idOf}
}

func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := Snapshot[T]{Items: slices.Clone(r.items), Lifecycle: r.life}
	if r.current != nil {
		cur := *r.current
		snap.Current = &cur
	}
	return snap
}

func (r *Resource[T]) ClearCurrent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
	r.notifyLocked()
}

func (r *Resource[T]) begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.beginLocked()
}

// settle records the outcome of operation seq. apply runs under the lock
// and only on success.
func (r *Resource[T]) settle(seq uint64, err error, fallback string, apply func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil && apply != nil {
		apply()
	}
	r.settleLocked(seq, err, fallback)
}

func (r *Resource[T]) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(item T) bool { return r.idOf(item) == id })
}

// fetchAll replaces the collection.
func (r *Resource[T]) fetchAll(ctx context.Context, call func(context.Context) (ports.Envelope[[]T], error), fallback string) ([]T, error) {
	seq := r.begin()
	env, err := call(ctx)
	r.settle(seq, err, fallback, func() {
		r.items = slices.Clone(env.Data)
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// fetchOne sets the current entity.
func (r *Resource[T]) fetchOne(ctx context.Context, call func(context.Context) (ports.Envelope[T], error), fallback string) (T, error) {
	seq := r.begin()
	env, err := call(ctx)
	r.settle(seq, err, fallback, func() {
		item := env.Data
		r.current = &item
	})
	return env.Data, err
}

// create appends the created entity.
func (r *Resource[T]) create(ctx context.Context, call func(context.Context) (ports.Envelope[T], error), fallback string) (T, error) {
	seq := r.begin()
	env, err := call(ctx)
	r.settle(seq, err, fallback, func() {
		r.items = append(r.items, env.Data)
	})
	return env.Data, err
}

// update replaces the entity in place when it is held and makes it current.
// An entity missing from the collection is not added.
func (r *Resource[T]) update(ctx context.Context, call func(context.Context) (ports.Envelope[T], error), fallback string) (T, error) {
	seq := r.begin()
	env, err := call(ctx)
	r.settle(seq, err, fallback, func() {
		if i := r.indexOf(r.idOf(env.Data)); i >= 0 {
			r.items[i] = env.Data
		}
		item := env.Data
		r.current = &item
	})
	return env.Data, err
}

// remove drops id from the collection and clears current when it matches.
func (r *Resource[T]) remove(ctx context.Context, id string, call func(context.Context) error, fallback string) error {
	seq := r.begin()
	err := call(ctx)
	r.settle(seq, err, fallback, func() {
		r.items = slices.DeleteFunc(r.items, func(item T) bool { return r.idOf(item) == id })
		if r.current != nil && r.idOf(*r.current) == id {
			r.current = nil
		}
	})
	return err
}
