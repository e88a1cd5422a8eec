package kernel

// ThreadFunc is a thread's entry procedure. On real hardware this is a
// zero-argument function that never returns; the tick timer preempts it
// at an arbitrary instruction boundary, asynchronously, with no
// cooperation from the thread body required.
//
// Go cannot portably preempt an arbitrary call stack at an arbitrary
// instruction boundary, so this simulation instead invokes ThreadFunc
// once per scheduling quantum — each call should perform one bounded
// unit of the thread's work and return. The kernel re-invokes it every
// time the scheduler selects this thread's TCB again, which reproduces
// every observable property of the hardware model (ring traversal,
// sleep/wake timing, round-robin fairness) without pretending to run
// raw machine code.
type ThreadFunc func(t *Thread)

// Thread is the handle a running ThreadFunc uses to call back into the
// kernel that scheduled it. It plays the role the original C port fills
// with the CurrentlyRunningThread global: since Go has no implicit
// "current thread" without goroutine-local storage, the kernel passes
// the handle in explicitly instead of reaching for a package-level
// variable.
type Thread struct {
	k   *Kernel
	idx int
}

// Index returns this thread's table slot.
func (t *Thread) Index() int { return t.idx }

// Sleep puts this thread to sleep for durationTicks ticks. The calling
// ThreadFunc must return immediately after calling Sleep — there is no
// instruction stream to suspend mid-flight in this simulation, so the
// quantum simply ends here.
func (t *Thread) Sleep(durationTicks uint32) {
	t.k.sleep(t.idx, durationTicks)
}

// Block marks this thread blocked on an opaque blocking primitive (see
// package ipc). Like Sleep, the calling ThreadFunc must return
// immediately afterward; the thread will not be scheduled again until
// something clears the block (see Kernel.Unblock).
func (t *Thread) Block(on any) {
	t.k.threads[t.idx].blocked = on
	t.k.requestContextSwitch()
}
