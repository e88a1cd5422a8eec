package kernel

// TCB is a Thread Control Block: the per-thread kernel record. Table
// slots are never freed once admitted; `prev`/`next` are slot indices
// into the same table rather than pointers, so the table remains the
// sole owner of every TCB and the scheduler only ever mutates index
// fields, never a borrowed reference.
type TCB struct {
	// sp is the saved stack pointer: a word offset into this thread's
	// entry in the stack table. Meaningful only while the thread is not
	// the currently running one.
	sp int

	prev int
	next int

	asleep     bool
	sleepCount uint32

	// blocked is opaque to the scheduler: it only ever tests whether this
	// is nil. A non-nil value is a reference to whatever blocking
	// primitive (see package ipc) the thread is waiting on.
	blocked any

	fn ThreadFunc
}

// ring invariants:
//   - threads[i].next.prev == i and threads[i].prev.next == i for every
//     admitted slot i.
//   - exactly numThreads slots participate; the rest are zero-valued and
//     untouched by the scheduler.
//
// insertThread splices a freshly admitted slot at index idx into the
// ring, between the current tail (idx-1) and the head (0). The first
// thread admitted forms a self-loop, since there is no tail to splice
// against yet.
func (k *Kernel) insertThread(idx int) {
	if idx == 0 {
		k.threads[0].prev = 0
		k.threads[0].next = 0
		return
	}
	k.threads[idx].prev = idx - 1
	k.threads[idx].next = 0
	k.threads[idx-1].next = idx
	k.threads[0].prev = idx
}

// runnable reports whether the TCB at idx may be scheduled.
func (k *Kernel) runnable(idx int) bool {
	t := &k.threads[idx]
	return !t.asleep && t.blocked == nil
}
