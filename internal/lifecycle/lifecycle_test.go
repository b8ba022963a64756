package lifecycle_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/healthsync/internal/lifecycle"
)

var fetchOp = lifecycle.Operation{Name: "diary/fetchAll", DefaultError: "Failed to fetch diary entries"}

type serverErr struct{ msg string }

func (e *serverErr) Error() string         { return "status 401: " + e.msg }
func (e *serverErr) ServerMessage() string { return e.msg }

type recorder[T any] struct {
	mu  sync.Mutex
	got []lifecycle.Transition[T]
}

func (r *recorder[T]) emit(tr lifecycle.Transition[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, tr)
}

func TestRun_Fulfilled(t *testing.T) {
	rec := &recorder[[]string]{}
	var sawPending bool
	run := func(_ context.Context, owner string) ([]string, error) {
		// Pending must already be delivered when run starts.
		sawPending = len(rec.got) == 1 && rec.got[0].Phase == lifecycle.Pending
		return []string{owner + "-a", owner + "-b"}, nil
	}

	settled := lifecycle.Run(context.Background(), fetchOp, run, "u1", rec.emit)

	assert.True(t, sawPending)
	require.Len(t, rec.got, 2)
	assert.Equal(t, "diary/fetchAll/pending", rec.got[0].Type())
	assert.Equal(t, "diary/fetchAll/fulfilled", rec.got[1].Type())
	assert.Equal(t, rec.got[0].RequestID, rec.got[1].RequestID)
	assert.NotEmpty(t, rec.got[0].RequestID)
	assert.Equal(t, []string{"u1-a", "u1-b"}, settled.Payload)
	assert.True(t, settled.Settled())
	assert.Empty(t, settled.Err)
}

func TestRun_RejectedMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport failure", errors.New("dial tcp: connection refused"), "Failed to fetch diary entries"},
		{"server message", &serverErr{msg: "Token expired"}, "Token expired"},
		{"wrapped server message", fmt.Errorf("diary: %w", &serverErr{msg: "Invalid date"}), "Invalid date"},
		{"empty server message", &serverErr{}, "Failed to fetch diary entries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder[int]{}
			calls := 0
			run := func(context.Context, string) (int, error) {
				calls++
				return 0, tt.err
			}
			settled := lifecycle.Run(context.Background(), fetchOp, run, "u1", rec.emit)

			assert.Equal(t, 1, calls, "no retry")
			require.Len(t, rec.got, 2)
			assert.Equal(t, lifecycle.Rejected, settled.Phase)
			assert.Equal(t, tt.want, settled.Err)
		})
	}
}

func TestRun_RecoversPanic(t *testing.T) {
	rec := &recorder[int]{}
	run := func(context.Context, string) (int, error) {
		panic("boom")
	}
	settled := lifecycle.Run(context.Background(), fetchOp, run, "u1", rec.emit)
	assert.Equal(t, lifecycle.Rejected, settled.Phase)
	assert.Equal(t, "Failed to fetch diary entries", settled.Err)
}

func TestRun_ConcurrentInvocationsAreIndependent(t *testing.T) {
	rec := &recorder[int]{}
	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lifecycle.Run(context.Background(), fetchOp, func(context.Context, int) (int, error) {
				return i, nil
			}, i, rec.emit)
		}()
	}
	wg.Wait()

	require.Len(t, rec.got, 20)
	byID := map[string][]lifecycle.Phase{}
	for _, tr := range rec.got {
		byID[tr.RequestID] = append(byID[tr.RequestID], tr.Phase)
	}
	assert.Len(t, byID, 10)
	for id, phases := range byID {
		assert.Equal(t, []lifecycle.Phase{lifecycle.Pending, lifecycle.Fulfilled}, phases, id)
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "fallback", lifecycle.Message(nil, "fallback"))
	assert.Equal(t, "fallback", lifecycle.Message(errors.New("x"), "fallback"))
	assert.Equal(t, "nope", lifecycle.Message(&serverErr{msg: "nope"}, "fallback"))
}
