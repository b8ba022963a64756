// Package store holds the materialized state of one remote collection and
// drives it through lifecycle transitions of fetch and create calls.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Tiliavir/healthsync/internal/lifecycle"
)

// Endpoint is the remote side of one collection.
type Endpoint[T, C any] interface {
	FetchByOwner(ctx context.Context, ownerID string) ([]T, error)
	Create(ctx context.Context, payload C) (T, error)
}

// Operations names the two operations of a collection and their default
// failure messages.
type Operations struct {
	Fetch  lifecycle.Operation
	Create lifecycle.Operation
}

// Observer is notified of every transition applied to a store.
type Observer interface {
	Observe(collection string, kind OpKind, phase lifecycle.Phase)
}

// Option configures a Store.
type Option func(*options)

type options struct {
	log       *slog.Logger
	observers []Observer
}

// WithLogger sets the logger used for settle events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver registers an additional transition observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

type listener[T any] struct {
	id int
	fn func(State[T])
}

// Store is the collection store for records of type T created from payloads
// of type C. It is safe for concurrent use; transitions are applied one at a
// time.
type Store[T, C any] struct {
	name      string
	ops       Operations
	endpoint  Endpoint[T, C]
	strategy  Reconciler[T]
	table     map[tableKey]effect[T]
	log       *slog.Logger
	observers []Observer

	mu        sync.Mutex
	state     State[T]
	listeners []listener[T]
	nextID    int
	seq       uint64

	// deliverMu serializes listener calls; delivered is the seq of the last
	// snapshot handed to listeners.
	deliverMu sync.Mutex
	delivered uint64
}

// New creates an empty store. A nil strategy means Prepend.
func New[T, C any](name string, ops Operations, endpoint Endpoint[T, C], strategy Reconciler[T], opts ...Option) *Store[T, C] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}
	if strategy == nil {
		strategy = Prepend[T]()
	}
	return &Store[T, C]{
		name:      name,
		ops:       ops,
		endpoint:  endpoint,
		strategy:  strategy,
		table:     transitionTable[T](),
		log:       o.log.With("collection", name),
		observers: o.observers,
		state:     State[T]{Items: []T{}},
	}
}

// Name returns the collection name.
func (s *Store[T, C]) Name() string { return s.name }

// State returns a snapshot of the current state.
func (s *Store[T, C]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive the state after every applied
// transition. Listeners run outside the store lock, in registration order,
// and never concurrently with each other. A snapshot older than one already
// delivered is dropped, so the last state a listener sees is State().
// Listeners may call State but must not call FetchAll, Create or ClearErrors
// synchronously. The returned function removes the listener.
func (s *Store[T, C]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// FetchAll loads every record of ownerID and replaces the collection with
// them. It blocks until the call settles and returns the state right after
// its own settling transition. Failures end up in State.LastError; items
// loaded earlier are kept.
func (s *Store[T, C]) FetchAll(ctx context.Context, ownerID string) State[T] {
	var snap State[T]
	lifecycle.Run(ctx, s.ops.Fetch, s.endpoint.FetchByOwner, ownerID, func(tr lifecycle.Transition[[]T]) {
		st := s.apply(OpFetch, tr.Phase, tr.Payload, tr.Err, tr.RequestID)
		if tr.Settled() {
			snap = st
		}
	})
	return snap
}

// Create sends payload to the server and folds the returned record into the
// collection with the store's reconciliation strategy. A failed create
// leaves the items untouched.
func (s *Store[T, C]) Create(ctx context.Context, payload C) State[T] {
	var snap State[T]
	lifecycle.Run(ctx, s.ops.Create, s.endpoint.Create, payload, func(tr lifecycle.Transition[T]) {
		st := s.apply(OpCreate, tr.Phase, tr.Payload, tr.Err, tr.RequestID)
		if tr.Settled() {
			snap = st
		}
	})
	return snap
}

// ClearErrors resets LastError and nothing else.
func (s *Store[T, C]) ClearErrors() {
	s.mu.Lock()
	s.state.LastError = nil
	s.seq++
	seq, snap, ls := s.seq, s.state.clone(), s.snapshotListeners()
	s.mu.Unlock()
	s.deliver(seq, ls, snap)
}

func (s *Store[T, C]) apply(kind OpKind, phase lifecycle.Phase, payload any, errMsg, requestID string) State[T] {
	s.mu.Lock()
	s.state = reduce(s.table, s.state, kind, phase, payload, errMsg, s.strategy)
	s.seq++
	seq, snap, ls := s.seq, s.state.clone(), s.snapshotListeners()
	s.mu.Unlock()

	for _, obs := range s.observers {
		obs.Observe(s.name, kind, phase)
	}
	switch phase {
	case lifecycle.Fulfilled:
		s.log.Debug("operation fulfilled", "op", kind, "request_id", requestID, "items", len(snap.Items))
	case lifecycle.Rejected:
		s.log.Warn("operation rejected", "op", kind, "request_id", requestID, "error", errMsg)
	}
	s.deliver(seq, ls, snap)
	return snap
}

func (s *Store[T, C]) snapshotListeners() []listener[T] {
	return append([]listener[T](nil), s.listeners...)
}

// deliver hands the snapshot taken at seq to ls unless a newer one was
// delivered already.
func (s *Store[T, C]) deliver(seq uint64, ls []listener[T], st State[T]) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if seq <= s.delivered {
		return
	}
	s.delivered = seq
	for _, l := range ls {
		l.fn(st)
	}
}
