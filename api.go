package kernel

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Init zeroes SystemTime and the admission counters and initializes the
// board. Must be called before any other kernel call: AddThread and
// AddPeriodicEvent both assume an empty table.
func (k *Kernel) Init() error {
	k.systemTime = 0
	k.numThreads = 0
	k.numPthreads = 0
	if err := k.board.Init(); err != nil {
		return fmt.Errorf("kernel: board init: %w", err)
	}
	k.log.Info("kernel initialized", zap.Int("max_threads", k.cfg.MaxThreads),
		zap.Int("max_pthreads", k.cfg.MaxPthreads), zap.Uint32("clock_hz", k.cfg.ClockHz))
	return nil
}

// AddThread admits a new thread: append at index NumberOfThreads,
// splice into the ring between the previous tail and the head, build
// the synthetic exception frame, and start it awake, unblocked, with
// sleepCount 0. Fails with Error if the table is full.
//
// entry must not be called with a nil Thread — the kernel always
// supplies one. Calling AddThread after Launch is undefined behavior,
// exactly as admitting a thread after the scheduler has started would
// be on real hardware, and is not detected here.
func (k *Kernel) AddThread(entry ThreadFunc) Status {
	if k.numThreads == k.cfg.MaxThreads {
		return Error
	}
	idx := k.numThreads

	t := &k.threads[idx]
	t.asleep = false
	t.sleepCount = 0
	t.blocked = nil
	t.fn = entry

	k.insertThread(idx)
	t.sp = buildInitialFrame(k.stacks[idx], idx)

	k.numThreads++
	k.log.Info("thread admitted", zap.Int("index", idx), zap.Int("total", k.numThreads))
	return Success
}

// AddPeriodicEvent admits a new periodic event: currentTime is the
// creation-order stagger offset, executeTime is period+currentTime so
// event N first fires at tick period+N rather than every event
// contending for the exact same tick. Fails with Error if the table is
// full.
func (k *Kernel) AddPeriodicEvent(handler PeriodicHandler, period uint32) Status {
	if k.numPthreads == k.cfg.MaxPthreads {
		return Error
	}
	idx := k.numPthreads

	p := &k.pthreads[idx]
	p.handler = handler
	p.period = period
	p.currentTime = uint32(idx)
	p.executeTime = period + p.currentTime

	k.insertPeriodic(idx)

	k.numPthreads++
	k.log.Info("periodic event admitted", zap.Int("index", idx),
		zap.Uint32("period", period), zap.Uint32("first_execute_time", p.executeTime))
	return Success
}

// Launch sets CurrentlyRunningThread to TCB[0] and drives the simulated
// SysTick source at its configured 1kHz rate until ctx is canceled.
// Real hardware never returns from this call; the simulation needs a
// way to stop, so ctx cancellation is the one addition to that
// contract.
//
// Launch is the long-running driver for a real simulator binary. Tests
// that need deterministic, un-clocked control over tick advancement
// should call Tick directly instead.
func (k *Kernel) Launch(ctx context.Context) error {
	if k.numThreads == 0 {
		return fmt.Errorf("kernel: cannot launch with zero admitted threads")
	}
	k.launched = true
	k.log.Info("launching", zap.Int("threads", k.numThreads), zap.Int("pthreads", k.numPthreads))

	k.start()

	t := time.NewTicker(time.Second / 1000)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			k.Tick()
		}
	}
}

// Tick advances the simulated clock by exactly one SysTick period,
// running the tick handler and draining any context switches it
// requests. Launch calls this once per wall-clock millisecond; tests
// call it directly to drive the kernel deterministically without
// involving context.Context or wall-clock time at all.
func (k *Kernel) Tick() {
	k.clockSrc.Step(func() {
		k.onTick()
		k.contextSwitch()
	})
}
