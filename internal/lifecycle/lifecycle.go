// Package lifecycle wraps a single asynchronous remote call in a
// pending/fulfilled/rejected transition contract that reducers consume.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Phase is one of the three lifecycle signals.
type Phase string

const (
	Pending   Phase = "pending"
	Fulfilled Phase = "fulfilled"
	Rejected  Phase = "rejected"
)

// Operation names a remote operation and the message reported when a failure
// carries no server-supplied text.
type Operation struct {
	// Name namespaces the generated signals, e.g. "diary/fetchAll".
	Name string
	// DefaultError is used verbatim when the failure has no server message.
	DefaultError string
}

// Transition is one lifecycle signal of one invocation.
type Transition[T any] struct {
	Operation string
	Phase     Phase
	// RequestID is shared by all transitions of the same invocation.
	RequestID string
	// Payload is set on Fulfilled only.
	Payload T
	// Err is set on Rejected only.
	Err string
}

// Type returns the namespaced signal name, e.g. "diary/fetchAll/pending".
func (t Transition[T]) Type() string {
	return t.Operation + "/" + string(t.Phase)
}

// Settled reports whether t is a terminal transition.
func (t Transition[T]) Settled() bool {
	return t.Phase == Fulfilled || t.Phase == Rejected
}

// ServerMessager is implemented by errors that carry a message supplied by
// the remote side, such as a decoded error response body.
type ServerMessager interface {
	ServerMessage() string
}

// Message extracts the string reported for err: the server message if err
// (or anything it wraps) carries a non-empty one, otherwise fallback.
func Message(err error, fallback string) string {
	var sm ServerMessager
	if errors.As(err, &sm) {
		if msg := sm.ServerMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}

// Run invokes run exactly once with args and reports its progress to emit:
// Pending before run starts, then Fulfilled or Rejected. It returns the
// settling transition. Errors and panics from run are never propagated; they
// are reduced to the rejection message.
//
// Run does not deduplicate, retry or cancel. Concurrent calls are independent
// and their transitions may interleave in any order.
func Run[A, T any](ctx context.Context, op Operation, run func(context.Context, A) (T, error), args A, emit func(Transition[T])) Transition[T] {
	id := uuid.NewString()
	emit(Transition[T]{Operation: op.Name, Phase: Pending, RequestID: id})

	payload, err := call(ctx, run, args)

	var settled Transition[T]
	if err != nil {
		settled = Transition[T]{
			Operation: op.Name,
			Phase:     Rejected,
			RequestID: id,
			Err:       Message(err, op.DefaultError),
		}
	} else {
		settled = Transition[T]{
			Operation: op.Name,
			Phase:     Fulfilled,
			RequestID: id,
			Payload:   payload,
		}
	}
	emit(settled)
	return settled
}

func call[A, T any](ctx context.Context, run func(context.Context, A) (T, error), args A) (payload T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in operation: %v", r)
		}
	}()
	return run(ctx, args)
}
