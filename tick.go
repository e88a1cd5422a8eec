package kernel

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// onTick is the SysTick handler body, ported from original_source's
// SysTick_Handler almost line for line:
//
//  1. advance SystemTime
//  2. periodic dispatch, in table order, using executeTime <= SystemTime
//     (self-correcting after transient lateness)
//  3. wake sweep, walking NumberOfThreads steps from
//     CurrentlyRunningThread, waking threads whose sleepCount equals
//     SystemTime exactly (or <=, under the hardened opt-in — see
//     Config.HardenedWake)
//  4. request a context switch
func (k *Kernel) onTick() {
	k.systemTime++
	k.metrics.ticksTotal.Inc()

	k.dispatchPeriodic()
	k.wakeSweep()

	k.requestContextSwitch()
}

func (k *Kernel) dispatchPeriodic() {
	for i := 0; i < k.numPthreads; i++ {
		p := &k.pthreads[i]
		if p.executeTime > k.systemTime {
			continue
		}
		p.executeTime = p.period + k.systemTime + p.currentTime
		k.metrics.periodicDispatches.Inc()

		timer := prometheus.NewTimer(k.metrics.periodicHandlerSecs)
		p.handler()
		timer.ObserveDuration()
	}
}

func (k *Kernel) wakeSweep() {
	idx := k.currentIdx
	asleep := 0
	for i := 0; i < k.numThreads; i++ {
		t := &k.threads[idx]
		if t.asleep {
			woken := false
			if k.cfg.HardenedWake {
				woken = t.sleepCount <= k.systemTime
			} else {
				woken = t.sleepCount == k.systemTime
			}
			if woken {
				t.asleep = false
				t.sleepCount = 0
				k.metrics.threadsWoken.Inc()
				k.log.Debug("thread woke", zap.Int("thread", idx), zap.Uint32("tick", k.systemTime))
			} else {
				asleep++
			}
		}
		idx = t.next
	}
	k.metrics.threadsAsleep.Set(float64(asleep))
}

// requestContextSwitch is the simulated equivalent of writing the
// pendable-service-set bit in the Interrupt Control and State Register.
// It only arms a flag; the driver loop (see Launch and Tick) is
// responsible for noticing it and invoking the trampoline.
func (k *Kernel) requestContextSwitch() {
	k.pendingSwitch = true
}
