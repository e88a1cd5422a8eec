// Package ipc is a minimal blocking primitive built on top of the
// scheduler's blocked-field hook, just enough to exercise a TCB's
// blocked field end-to-end. It is not a general-purpose IPC subsystem:
// no FIFOs, no priority inheritance, no timed waits.
package ipc

import "sync/atomic"

// Semaphore is a minimal counting semaphore, grounded on the
// G8RTOS_WaitSemaphore/G8RTOS_SignalSemaphore pair from
// original_source/threads.c. It has no waiter queue and never touches a
// TCB itself: Signal only invokes a caller-supplied callback, which is
// expected to clear the block on whatever single thread last found the
// semaphore empty in TryWait, mirroring the original's single global
// "blocked = 0" clear rather than a FIFO of waiters.
type Semaphore struct {
	count int32
}

// NewSemaphore creates a Semaphore with the given initial count.
func NewSemaphore(initial int32) *Semaphore {
	return &Semaphore{count: initial}
}

// TryWait attempts to take the semaphore without blocking. It reports
// whether the take succeeded. On failure, the caller's ThreadFunc is
// expected to call Block(sem) on its Thread handle and return — this
// simulation has no instruction stream to suspend mid-wait, so blocking
// is expressed as "don't proceed this quantum," not as a real wait.
func (s *Semaphore) TryWait() bool {
	for {
		cur := atomic.LoadInt32(&s.count)
		if cur <= 0 {
			return false
		}
		if atomic.CompareAndSwapInt32(&s.count, cur, cur-1) {
			return true
		}
	}
}

// Signal increments the semaphore and, if unblock is non-nil, invokes it
// so the caller can clear the Thread it most recently marked blocked on
// this semaphore.
func (s *Semaphore) Signal(unblock func()) {
	atomic.AddInt32(&s.count, 1)
	if unblock != nil {
		unblock()
	}
}
