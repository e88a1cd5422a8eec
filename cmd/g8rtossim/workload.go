package main

import (
	"math"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/g8rtos-go/kernel"
	"github.com/g8rtos-go/kernel/ipc"
)

// workload is a demo thread/periodic-event mix standing in for
// original_source/threads.c's temperature/light/RMS/display pipeline.
// It has no real sensors or GPIO to read — board.Sim supplies none —
// so each thread synthesizes a value instead, but the shape (producer
// thread, shared state guarded by a semaphore, consumer thread,
// periodic status events) is the same pipeline.
type workload struct {
	k   *kernel.Kernel
	log *zap.Logger

	dataMutex *ipc.Semaphore
	blockedOn int // index of the thread currently blocked on dataMutex, or -1

	sampleCount uint64
	light       int64 // fixed-point light reading, protected by dataMutex
	rms         int64 // last computed RMS; written and read without taking dataMutex
}

func newWorkload(k *kernel.Kernel, log *zap.Logger) *workload {
	return &workload{
		k:         k,
		log:       log,
		dataMutex: ipc.NewSemaphore(1),
		blockedOn: -1,
	}
}

// sensorThread stands in for bThread1 (read light sensor): on each
// quantum it produces one synthetic sample and sleeps 500 ticks,
// exactly bThread0's "G8RTOS_Sleep for 500ms" cadence.
func (w *workload) sensorThread(t *kernel.Thread) {
	n := atomic.AddUint64(&w.sampleCount, 1)
	sample := int64(500 + 137*(n%11)) // deterministic synthetic waveform

	if !w.dataMutex.TryWait() {
		w.blockedOn = t.Index()
		t.Block(w.dataMutex)
		return
	}
	w.light = sample
	w.dataMutex.Signal(w.unblock)

	t.Sleep(500)
}

// rmsThread stands in for bThread2 (read FIFO, calculate RMS, set
// global): Newton's-method square root of the latest light sample
// squared, the same convergence loop as rootMeanSquare in the original.
// Only the most recent sample is used; no sample history is kept.
func (w *workload) rmsThread(t *kernel.Thread) {
	if !w.dataMutex.TryWait() {
		w.blockedOn = t.Index()
		t.Block(w.dataMutex)
		return
	}
	n := w.light
	w.dataMutex.Signal(w.unblock)

	w.rms = isqrt(n * n)
	t.Sleep(250)
}

// displayThread stands in for bThread3 (reading from TEMPFIFO and
// displaying on LED): here it just logs the current computed value.
func (w *workload) displayThread(t *kernel.Thread) {
	w.log.Debug("display", zap.Int64("rms", w.rms), zap.Int("thread", t.Index()))
	t.Sleep(1000)
}

// unblock is the Semaphore.Signal callback: clear whichever single
// thread last found dataMutex empty, mirroring package ipc's
// single-waiter contract.
func (w *workload) unblock() {
	if w.blockedOn >= 0 {
		w.k.Unblock(w.blockedOn)
		w.blockedOn = -1
	}
}

// isqrt is Newton's method over int64, the same convergence loop as
// rootMeanSquare in original_source/threads.c.
func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	xk := n
	for {
		xk1 := (xk + n/xk) / 2
		if int64(math.Abs(float64(xk1-xk))) < 1 {
			return xk1
		}
		xk = xk1
	}
}

// joystickPoll stands in for Pthread0 (period 100): a periodic input
// poll with nothing behind it but a log line in this simulation.
func (w *workload) joystickPoll() {
	w.log.Debug("joystick poll")
}

// heartbeat stands in for Pthread1 (period 1000): a slower periodic
// status report.
func (w *workload) heartbeat() {
	w.log.Info("heartbeat", zap.Int64("rms", w.rms), zap.Int64("light", w.light))
}
