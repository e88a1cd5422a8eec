package kernel

// PeriodicHandler is a zero-argument procedure invoked from the tick
// handler's context. It must not block, sleep, or call into a Thread's
// Sleep/Block methods: the tick handler calls every due PeriodicHandler
// in line before it ever reaches the scheduler, so a handler that
// blocks wedges the tick handler itself, not just its own dispatch.
type PeriodicHandler func()

// PTCB is a Periodic Thread Control Block: the per-periodic-event kernel
// record. Like TCB, slots are never freed and `prev`/`next` are table
// indices. They are maintained for structural symmetry with the TCB
// ring, even though dispatch walks the table in index order rather than
// the ring — periodic events have no notion of "currently running" to
// rotate around.
type PTCB struct {
	handler PeriodicHandler
	period  uint32

	// executeTime is the absolute tick at which this handler is next due.
	executeTime uint32
	// currentTime is the creation-order stagger offset: an index into
	// admission order, not a duration, used only to spread same-period
	// events across distinct ticks instead of piling them onto one.
	currentTime uint32

	prev int
	next int
}

// insertPeriodic splices a freshly admitted periodic slot into the PTCB
// ring, analogous to insertThread.
func (k *Kernel) insertPeriodic(idx int) {
	if idx == 0 {
		k.pthreads[0].prev = 0
		k.pthreads[0].next = 0
		return
	}
	k.pthreads[idx].prev = idx - 1
	k.pthreads[idx].next = 0
	k.pthreads[idx-1].next = idx
	k.pthreads[0].prev = idx
}
