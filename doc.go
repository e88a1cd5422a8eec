// Package kernel implements the core of G8RTOS: a preemptive, priority-less
// cooperative round-robin real-time kernel for a single-core 32-bit
// microcontroller with a dedicated tick timer.
//
// The kernel owns four pieces of global state: a fixed-size table of
// thread control blocks arranged in a circular doubly-linked ring, a
// fixed-size table of periodic-event control blocks, a monotonic tick
// counter, and a pointer to the currently running thread. A 1 kHz tick
// advances the clock, dispatches due periodic events, wakes sleeping
// threads, and requests a context switch; the scheduler then selects the
// next runnable thread from the ring with no priority and no aging.
//
// The real target hardware services context switches with a hand-written
// PendSV exception handler that saves and restores the raw ARM register
// file. This package simulates that trampoline instead of emulating real
// machine code: a thread is a Go function invoked once per scheduling
// quantum, and the synthetic stack frame G8RTOS_AddThread would write at
// thread-creation time is still constructed byte-for-word as specified,
// kept for state-model fidelity and for the invariants tests in this
// package assert against, even though nothing in this simulation jumps to
// a raw program counter.
package kernel
