package kernel

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Compile-time-equivalent limits. Unlike the original C port these are
// runtime Config fields rather than preprocessor constants, but they
// are frozen the moment New returns: nothing after that point may
// change the table sizes.
const (
	// DefaultMaxThreads is MAX_THREADS if the caller does not override it.
	DefaultMaxThreads = 16
	// DefaultMaxPthreads is MAXPTHREADS if the caller does not override it.
	DefaultMaxPthreads = 8
	// DefaultStackSize is STACKSIZE (words) if the caller does not override it.
	// Must be large enough to hold the 16-word synthetic exception frame.
	DefaultStackSize = 256
	// DefaultClockHz is the assumed system clock frequency, used to derive
	// the SysTick reload value (clockHz / 1000) exactly as ClockSys_GetSysFreq
	// feeds InitSysTick in the original port.
	DefaultClockHz = 48_000_000

	minStackSize = 16 // must fit the synthetic frame
)

// Config holds the kernel's construction-time parameters.
type Config struct {
	MaxThreads  int
	MaxPthreads int
	StackSize   int
	ClockHz     uint32

	// HardenedWake switches the tick handler's wake condition from the
	// original `sleepCount == SystemTime` to `sleepCount <= SystemTime`.
	// The original exact-match behavior is the default; this is an
	// explicit opt-in for callers who would rather a thread wake late
	// than never wake at all if a tick is ever missed.
	HardenedWake bool

	Logger *zap.Logger

	// Registerer is where the kernel's prometheus metrics are registered.
	// Defaults to a private prometheus.NewRegistry() rather than
	// prometheus.DefaultRegisterer so that constructing more than one
	// Kernel in the same process (every table-driven test does this)
	// never collides on a duplicate metric name. Pass
	// prometheus.DefaultRegisterer explicitly via WithRegisterer to
	// expose a single Kernel's metrics process-wide, e.g. under
	// promhttp.Handler().
	Registerer prometheus.Registerer
}

// Option mutates a Config during New.
type Option func(*Config)

// WithMaxThreads overrides DefaultMaxThreads.
func WithMaxThreads(n int) Option { return func(c *Config) { c.MaxThreads = n } }

// WithMaxPthreads overrides DefaultMaxPthreads.
func WithMaxPthreads(n int) Option { return func(c *Config) { c.MaxPthreads = n } }

// WithStackSize overrides DefaultStackSize.
func WithStackSize(n int) Option { return func(c *Config) { c.StackSize = n } }

// WithClockHz overrides DefaultClockHz.
func WithClockHz(hz uint32) Option { return func(c *Config) { c.ClockHz = hz } }

// WithHardenedWake enables the `sleepCount <= SystemTime` wake check.
func WithHardenedWake() Option { return func(c *Config) { c.HardenedWake = true } }

// WithLogger supplies a pre-built zap logger instead of the kernel's default.
func WithLogger(l *zap.Logger) Option { return func(c *Config) { c.Logger = l } }

// WithRegisterer overrides the private per-Kernel prometheus registry
// with the given one. Pass prometheus.DefaultRegisterer to serve this
// Kernel's metrics from the process-wide /metrics handler.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Config) { c.Registerer = reg }
}

func defaultConfig() Config {
	return Config{
		MaxThreads:  DefaultMaxThreads,
		MaxPthreads: DefaultMaxPthreads,
		StackSize:   DefaultStackSize,
		ClockHz:     DefaultClockHz,
		Registerer:  prometheus.NewRegistry(),
	}
}

func (c *Config) validate() error {
	if c.MaxThreads <= 0 {
		return fmt.Errorf("kernel: MaxThreads must be positive, got %d", c.MaxThreads)
	}
	if c.MaxPthreads <= 0 {
		return fmt.Errorf("kernel: MaxPthreads must be positive, got %d", c.MaxPthreads)
	}
	if c.StackSize < minStackSize {
		return fmt.Errorf("kernel: StackSize must be at least %d words, got %d", minStackSize, c.StackSize)
	}
	if c.ClockHz == 0 {
		return fmt.Errorf("kernel: ClockHz must be nonzero")
	}
	return nil
}
