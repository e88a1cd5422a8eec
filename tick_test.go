package kernel

import "testing"

// TestWakeSweepExactMatch covers the default (non-hardened) wake
// semantics: a thread only wakes when sleepCount equals SystemTime
// exactly, never before and never after.
func TestWakeSweepExactMatch(t *testing.T) {
	k := newTestKernel(t)
	k.AddThread(func(*Thread) {})
	k.AddThread(func(*Thread) {})

	k.threads[1].asleep = true
	k.threads[1].sleepCount = 5

	k.systemTime = 4
	k.wakeSweep()
	if !k.threads[1].asleep {
		t.Fatal("thread woke one tick early under exact-match semantics")
	}

	k.systemTime = 5
	k.wakeSweep()
	if k.threads[1].asleep {
		t.Fatal("thread did not wake at sleepCount under exact-match semantics")
	}
}

// TestWakeSweepHardened covers the opt-in sleepCount<=SystemTime
// semantics: a thread that was overslept past its sleepCount (e.g. a
// dropped tick) still wakes rather than sleeping forever.
func TestWakeSweepHardened(t *testing.T) {
	k := newTestKernel(t, WithHardenedWake())
	k.AddThread(func(*Thread) {})
	k.AddThread(func(*Thread) {})

	k.threads[1].asleep = true
	k.threads[1].sleepCount = 5

	k.systemTime = 7
	k.wakeSweep()
	if k.threads[1].asleep {
		t.Fatal("hardened wake must fire once sleepCount <= SystemTime, even past the exact tick")
	}
}

// TestDispatchPeriodicStagger reproduces the creation-order stagger:
// two events admitted with the same period fire on different ticks,
// offset by their admission index.
func TestDispatchPeriodicStagger(t *testing.T) {
	k := newTestKernel(t)
	var fired []int
	k.AddPeriodicEvent(func() { fired = append(fired, 0) }, 100)
	k.AddPeriodicEvent(func() { fired = append(fired, 1) }, 100)

	if got, want := k.pthreads[0].executeTime, uint32(100); got != want {
		t.Errorf("pthreads[0].executeTime = %d, want %d", got, want)
	}
	if got, want := k.pthreads[1].executeTime, uint32(101); got != want {
		t.Errorf("pthreads[1].executeTime = %d, want %d", got, want)
	}

	for tick := uint32(1); tick <= 101; tick++ {
		k.systemTime = tick
		k.dispatchPeriodic()
	}
	if len(fired) != 2 || fired[0] != 0 || fired[1] != 1 {
		t.Fatalf("fired = %v, want event 0 before event 1", fired)
	}
}

// TestDispatchPeriodicOverrun covers self-correction after a
// transiently late dispatch: executeTime recomputes from the tick the
// handler actually ran on, not from the tick it was originally due.
func TestDispatchPeriodicOverrun(t *testing.T) {
	k := newTestKernel(t)
	k.AddPeriodicEvent(func() {}, 100)

	k.systemTime = 150 // 50 ticks late
	k.dispatchPeriodic()

	if got, want := k.pthreads[0].executeTime, uint32(250); got != want {
		t.Errorf("executeTime after late dispatch = %d, want %d", got, want)
	}
}
