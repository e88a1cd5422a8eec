package kernel

import (
	"testing"

	"github.com/g8rtos-go/kernel/board"
)

func newTestKernel(t *testing.T, opts ...Option) *Kernel {
	t.Helper()
	k, err := New(&board.Sim{}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := k.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return k
}

func TestInsertThreadSelfLoop(t *testing.T) {
	k := newTestKernel(t)
	if status := k.AddThread(func(*Thread) {}); !status.OK() {
		t.Fatalf("AddThread: got %v, want Success", status)
	}
	if got, want := k.threads[0].next, 0; got != want {
		t.Errorf("threads[0].next = %d, want %d", got, want)
	}
	if got, want := k.threads[0].prev, 0; got != want {
		t.Errorf("threads[0].prev = %d, want %d", got, want)
	}
}

func TestInsertThreadRingInvariant(t *testing.T) {
	k := newTestKernel(t)
	const n = 5
	for i := 0; i < n; i++ {
		if status := k.AddThread(func(*Thread) {}); !status.OK() {
			t.Fatalf("AddThread[%d]: got %v, want Success", i, status)
		}
	}
	for i := 0; i < n; i++ {
		next := k.threads[i].next
		if k.threads[next].prev != i {
			t.Errorf("threads[%d].next=%d but threads[%d].prev=%d, want %d", i, next, next, k.threads[next].prev, i)
		}
		prev := k.threads[i].prev
		if k.threads[prev].next != i {
			t.Errorf("threads[%d].prev=%d but threads[%d].next=%d, want %d", i, prev, prev, k.threads[prev].next, i)
		}
	}
	// Walking next n times from 0 must return to 0.
	idx := 0
	for i := 0; i < n; i++ {
		idx = k.threads[idx].next
	}
	if idx != 0 {
		t.Errorf("ring does not close after %d next steps: landed on %d", n, idx)
	}
}

func TestAddThreadFullTable(t *testing.T) {
	k := newTestKernel(t, WithMaxThreads(2))
	if status := k.AddThread(func(*Thread) {}); !status.OK() {
		t.Fatalf("AddThread[0]: got %v, want Success", status)
	}
	if status := k.AddThread(func(*Thread) {}); !status.OK() {
		t.Fatalf("AddThread[1]: got %v, want Success", status)
	}
	if status := k.AddThread(func(*Thread) {}); status != Error {
		t.Errorf("AddThread on full table: got %v, want Error", status)
	}
}

func TestRunnable(t *testing.T) {
	k := newTestKernel(t)
	k.AddThread(func(*Thread) {})
	if !k.runnable(0) {
		t.Fatal("freshly admitted thread must be runnable")
	}
	k.threads[0].asleep = true
	if k.runnable(0) {
		t.Fatal("asleep thread must not be runnable")
	}
	k.threads[0].asleep = false
	k.threads[0].blocked = "sem"
	if k.runnable(0) {
		t.Fatal("blocked thread must not be runnable")
	}
}
