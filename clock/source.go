// Package clock simulates the dedicated hardware tick timer the kernel
// configures as SysTick_Config(clockFreq/1000). It is adapted from an
// STM32 TIM2 timer emulation (prescaler/autoreload/counter register
// model), cut down to the one behavior the kernel needs: fire a
// callback once per configured reload period. No real register access
// happens here — there is no real microcontroller under this kernel,
// only a virtual clock the simulator drives.
package clock

import "fmt"

// Source is a virtual single-channel reload timer.
type Source struct {
	clockHz uint32
	reload  uint32 // autoreload value: clockHz / 1000, one tick per reload
	counter uint32 // current count toward reload, like TIM2's CNT

	ticks uint64
}

// NewSource configures a Source for the given core clock frequency, the
// same input G8RTOS_Launch passes to InitSysTick via
// ClockSys_GetSysFreq()/1000.
func NewSource(clockHz uint32) (*Source, error) {
	if clockHz < 1000 {
		return nil, fmt.Errorf("clock: clockHz %d too low for a 1kHz tick", clockHz)
	}
	return &Source{clockHz: clockHz, reload: clockHz / 1000}, nil
}

// Step advances the timer by one simulated tick period and invokes fn.
// A real TIM2-style peripheral would accumulate prescaled clock cycles
// until the autoreload value is reached; since this simulation has no
// sub-tick granularity to model, Step always represents exactly one
// reload period elapsing.
func (s *Source) Step(fn func()) {
	s.counter += s.reload
	for s.counter >= s.reload {
		s.counter -= s.reload
		s.ticks++
		fn()
	}
}

// Ticks returns the number of times Step has fired fn.
func (s *Source) Ticks() uint64 { return s.ticks }

// Reload returns the configured autoreload value (clockHz / 1000).
func (s *Source) Reload() uint32 { return s.reload }
