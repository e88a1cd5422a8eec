package kernel

// schedule selects the next runnable TCB: advance CurrentlyRunningThread
// to its next pointer, and if that TCB is blocked or asleep, keep
// advancing. The loop is O(k) in the number of consecutively
// non-runnable TCBs encountered; there is no priority and no aging —
// round-robin over whatever is runnable is the entire policy.
//
// If every admitted TCB is blocked or asleep, this spins forever. That
// is an invariant the caller must uphold (at least one TCB always
// runnable), not a condition worth guarding against here: a silent
// fallback would hide the bug that let every thread block at once
// instead of surfacing it as a hang.
func (k *Kernel) schedule() {
	for {
		k.currentIdx = k.threads[k.currentIdx].next
		if k.runnable(k.currentIdx) {
			return
		}
	}
}
