package store

import "github.com/Tiliavir/healthsync/internal/model"

// Reconciler folds a newly created record into the existing collection.
// Implementations must not mutate existing.
type Reconciler[T any] interface {
	Reconcile(existing []T, incoming T) []T
}

// ReconcileFunc adapts a plain function to Reconciler.
type ReconcileFunc[T any] func(existing []T, incoming T) []T

// Reconcile implements Reconciler.
func (f ReconcileFunc[T]) Reconcile(existing []T, incoming T) []T {
	return f(existing, incoming)
}

// Prepend inserts every created record at the front of the collection.
// It is the strategy for collections that allow several records per date.
func Prepend[T any]() Reconciler[T] {
	return ReconcileFunc[T](func(existing []T, incoming T) []T {
		out := make([]T, 0, len(existing)+1)
		out = append(out, incoming)
		return append(out, existing...)
	})
}

// ReplaceByDate keeps one record per date: the first record whose anchor
// date equals the incoming one is overwritten in place, otherwise the
// incoming record is prepended.
//
// The overwrite is total. Sub-records present only in the old value are
// dropped; the server is expected to have merged them already.
func ReplaceByDate[T model.Dated]() Reconciler[T] {
	return ReconcileFunc[T](func(existing []T, incoming T) []T {
		date := incoming.AnchorDate()
		for i := range existing {
			if existing[i].AnchorDate() == date {
				out := make([]T, len(existing))
				copy(out, existing)
				out[i] = incoming
				return out
			}
		}
		return Prepend[T]().Reconcile(existing, incoming)
	})
}
