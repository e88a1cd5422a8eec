package kernel

// contextSwitch is the simulated context-switch trampoline: the
// pendable exception handler. On real hardware this is a hand written
// assembly routine that saves the outgoing register file onto the
// thread's own stack, calls the scheduler, then restores the incoming
// register file and returns to thread mode. Nothing here manipulates a
// raw register file — see frame.go and ThreadFunc's doc comment for why
// — but the three-step shape (save bookkeeping, consult the scheduler,
// resume the new thread) is preserved exactly.
//
// A single call to contextSwitch can perform more than one dispatch: a
// thread invoked this tick may itself call Sleep or Block, which
// re-arms pendingSwitch (exactly as a real Sleep's immediate PendSV
// write would) and causes another scheduler pass within the same tick,
// without waiting for the next 1kHz tick boundary. This is what lets a
// thread that voluntarily yields and the thread that replaces it both
// run within the same tick the yield happened in, instead of leaving
// the replacement thread waiting for the next tick boundary.
func (k *Kernel) contextSwitch() {
	for k.pendingSwitch {
		k.pendingSwitch = false

		// step 2: save outgoing context. There is no live register file
		// to push in this simulation; the outgoing TCB's sp already
		// reflects its state because nothing mutates it outside of
		// ThreadFunc's own calls to Sleep/Block, both of which return
		// immediately.
		k.schedule()
		k.metrics.contextSwitchesTotal.Inc()

		// steps 4-6: restore incoming context and resume it. "Resuming"
		// here means invoking the new CurrentlyRunningThread's entry
		// procedure for one quantum.
		idx := k.currentIdx
		fn := k.threads[idx].fn
		if fn != nil {
			fn(&Thread{k: k, idx: idx})
		}
	}
}

// start is the trampoline's initial-launch path: there is no outgoing
// context to save the first time, so it begins directly at the
// restore step.
func (k *Kernel) start() {
	k.currentIdx = 0
	fn := k.threads[0].fn
	if fn != nil {
		fn(&Thread{k: k, idx: 0})
	}
}

// sleep implements Thread.Sleep for TCB index idx: set sleepCount and
// asleep, then request an immediate context switch, exactly
// G8RTOS_Sleep.
func (k *Kernel) sleep(idx int, durationTicks uint32) {
	t := &k.threads[idx]
	t.sleepCount = k.systemTime + durationTicks
	t.asleep = true
	k.requestContextSwitch()
}
