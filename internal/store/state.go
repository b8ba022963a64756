package store

import "github.com/Tiliavir/healthsync/internal/lifecycle"

// State is the observable state of one collection.
type State[T any] struct {
	// Items is in operation order, not sorted by any field.
	Items []T
	// IsLoading is true while any fetch or create is in flight. All
	// operations share this flag, so the last transition wins.
	IsLoading bool
	// LastError is the message of the most recent failed operation.
	LastError *string
}

// Err returns the last error message or "".
func (s State[T]) Err() string {
	if s.LastError == nil {
		return ""
	}
	return *s.LastError
}

func (s State[T]) clone() State[T] {
	c := s
	c.Items = append(make([]T, 0, len(s.Items)), s.Items...)
	if s.LastError != nil {
		msg := *s.LastError
		c.LastError = &msg
	}
	return c
}

// OpKind distinguishes the two operations a collection supports.
type OpKind string

const (
	OpFetch  OpKind = "fetchAll"
	OpCreate OpKind = "create"
)

type tableKey struct {
	kind  OpKind
	phase lifecycle.Phase
}

// effect applies one transition to a state. The payload of a fetch is
// []T, the payload of a create is T.
type effect[T any] func(s State[T], payload any, errMsg string, r Reconciler[T]) State[T]

func beginEffect[T any](s State[T], _ any, _ string, _ Reconciler[T]) State[T] {
	s.IsLoading = true
	s.LastError = nil
	return s
}

func replaceEffect[T any](s State[T], payload any, _ string, _ Reconciler[T]) State[T] {
	s.IsLoading = false
	items, _ := payload.([]T)
	if items == nil {
		items = []T{}
	}
	s.Items = items
	return s
}

func reconcileEffect[T any](s State[T], payload any, _ string, r Reconciler[T]) State[T] {
	s.IsLoading = false
	if rec, ok := payload.(T); ok {
		s.Items = r.Reconcile(s.Items, rec)
	}
	return s
}

func failEffect[T any](s State[T], _ any, errMsg string, _ Reconciler[T]) State[T] {
	s.IsLoading = false
	s.LastError = &errMsg
	return s
}

// transitionTable returns the (operation x phase) -> effect table shared by
// every collection. Only the create/fulfilled cell depends on the injected
// reconciler.
func transitionTable[T any]() map[tableKey]effect[T] {
	return map[tableKey]effect[T]{
		{OpFetch, lifecycle.Pending}:    beginEffect[T],
		{OpFetch, lifecycle.Fulfilled}:  replaceEffect[T],
		{OpFetch, lifecycle.Rejected}:   failEffect[T],
		{OpCreate, lifecycle.Pending}:   beginEffect[T],
		{OpCreate, lifecycle.Fulfilled}: reconcileEffect[T],
		{OpCreate, lifecycle.Rejected}:  failEffect[T],
	}
}

// ReduceFetch applies a fetch transition to s and returns the new state.
func ReduceFetch[T any](s State[T], tr lifecycle.Transition[[]T]) State[T] {
	return reduce(transitionTable[T](), s, OpFetch, tr.Phase, tr.Payload, tr.Err, nil)
}

// ReduceCreate applies a create transition to s using r for fulfilled
// transitions and returns the new state.
func ReduceCreate[T any](s State[T], tr lifecycle.Transition[T], r Reconciler[T]) State[T] {
	return reduce(transitionTable[T](), s, OpCreate, tr.Phase, tr.Payload, tr.Err, r)
}

func reduce[T any](table map[tableKey]effect[T], s State[T], kind OpKind, phase lifecycle.Phase, payload any, errMsg string, r Reconciler[T]) State[T] {
	eff, ok := table[tableKey{kind, phase}]
	if !ok {
		return s
	}
	if r == nil {
		r = Prepend[T]()
	}
	return eff(s.clone(), payload, errMsg, r)
}
