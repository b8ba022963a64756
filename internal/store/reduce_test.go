package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/healthsync/internal/lifecycle"
	"github.com/Tiliavir/healthsync/internal/model"
	"github.com/Tiliavir/healthsync/internal/store"
)

// Interleaving of two concurrent fetches: A is rejected after B was
// fulfilled, so the store ends in A's state for the flags and keeps B's items.
func TestReduce_LastDeliveredWins(t *testing.T) {
	s := store.State[model.DiaryEntry]{Items: []model.DiaryEntry{}}
	items := []model.DiaryEntry{diary("b", "2024-01-02")}

	s = store.ReduceFetch(s, lifecycle.Transition[[]model.DiaryEntry]{Phase: lifecycle.Pending, RequestID: "A"})
	s = store.ReduceFetch(s, lifecycle.Transition[[]model.DiaryEntry]{Phase: lifecycle.Pending, RequestID: "B"})
	s = store.ReduceFetch(s, lifecycle.Transition[[]model.DiaryEntry]{Phase: lifecycle.Fulfilled, RequestID: "B", Payload: items})
	assert.False(t, s.IsLoading)
	assert.Nil(t, s.LastError)

	s = store.ReduceFetch(s, lifecycle.Transition[[]model.DiaryEntry]{Phase: lifecycle.Rejected, RequestID: "A", Err: "Failed to fetch diary entries"})
	assert.False(t, s.IsLoading)
	assert.Equal(t, "Failed to fetch diary entries", s.Err())
	assert.Equal(t, items, s.Items)
}

func TestReduce_PendingWhileAnotherSettles(t *testing.T) {
	s := store.State[model.DiaryEntry]{Items: []model.DiaryEntry{}}
	s = store.ReduceCreate(s, lifecycle.Transition[model.DiaryEntry]{Phase: lifecycle.Pending}, nil)
	s = store.ReduceFetch(s, lifecycle.Transition[[]model.DiaryEntry]{Phase: lifecycle.Pending})
	s = store.ReduceCreate(s, lifecycle.Transition[model.DiaryEntry]{Phase: lifecycle.Fulfilled, Payload: diary("n", "2024-01-01")}, nil)

	// The shared flag reports idle although the fetch is still in flight.
	assert.False(t, s.IsLoading)
	assert.Len(t, s.Items, 1)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	in := store.State[model.Measurement]{Items: []model.Measurement{measurement("m1", "2024-01-01", 70)}}
	out := store.ReduceCreate(in,
		lifecycle.Transition[model.Measurement]{Phase: lifecycle.Fulfilled, Payload: measurement("m1", "2024-01-01", 80)},
		store.ReplaceByDate[model.Measurement]())

	v, _ := in.Items[0].Readings[0].Value.Scalar()
	assert.Equal(t, 70.0, v)
	v, _ = out.Items[0].Readings[0].Value.Scalar()
	assert.Equal(t, 80.0, v)
}

func TestReplaceByDate(t *testing.T) {
	r := store.ReplaceByDate[model.Measurement]()
	a := measurement("a", "2024-01-01", 1)
	b := measurement("b", "2024-01-02", 2)

	tests := []struct {
		name     string
		existing []model.Measurement
		incoming model.Measurement
		want     []model.Measurement
	}{
		{"empty", nil, a, []model.Measurement{a}},
		{"new date", []model.Measurement{a}, b, []model.Measurement{b, a}},
		{"first match only", []model.Measurement{b, a, measurement("dup", "2024-01-01", 9)},
			measurement("a2", "2024-01-01", 3),
			[]model.Measurement{b, measurement("a2", "2024-01-01", 3), measurement("dup", "2024-01-01", 9)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Reconcile(tt.existing, tt.incoming))
		})
	}
}

func TestPrepend(t *testing.T) {
	r := store.Prepend[model.DiaryEntry]()
	a, b := diary("a", "2024-01-01"), diary("b", "2024-01-01")
	existing := []model.DiaryEntry{a}
	got := r.Reconcile(existing, b)
	assert.Equal(t, []model.DiaryEntry{b, a}, got)
	assert.Equal(t, []model.DiaryEntry{a}, existing)
}
