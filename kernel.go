package kernel

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/g8rtos-go/kernel/board"
	"github.com/g8rtos-go/kernel/clock"
)

// Kernel bundles every piece of the scheduler's global state: SystemTime,
// CurrentlyRunningThread, the TCB/PTCB tables, and the admission
// counters. There is exactly one Kernel per simulated microcontroller;
// nothing here is a package-level global, unlike the C port it is
// adapted from — callers own the Kernel value and decide its lifetime.
type Kernel struct {
	cfg Config

	threads    []TCB
	stacks     []Stack
	numThreads int

	pthreads    []PTCB
	numPthreads int

	systemTime    uint32
	currentIdx    int
	pendingSwitch bool

	launched bool

	board    board.Board
	clockSrc *clock.Source

	log     *zap.Logger
	metrics *metricsSet
}

// New constructs a Kernel with the given options applied over the
// defaults (DefaultMaxThreads, DefaultMaxPthreads, DefaultStackSize,
// DefaultClockHz). It does not admit any threads and does not touch the
// board — that happens in Init, mirroring G8RTOS_Init's separation from
// the zero-value declarations in the original C port.
func New(b board.Board, opts ...Option) (*Kernel, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("kernel: building default logger: %w", err)
		}
		cfg.Logger = l
	}
	if b == nil {
		return nil, fmt.Errorf("kernel: board must not be nil")
	}
	src, err := clock.NewSource(cfg.ClockHz)
	if err != nil {
		return nil, err
	}

	k := &Kernel{
		cfg:      cfg,
		threads:  make([]TCB, cfg.MaxThreads),
		stacks:   make([]Stack, cfg.MaxThreads),
		pthreads: make([]PTCB, cfg.MaxPthreads),
		board:    b,
		clockSrc: src,
		log:      cfg.Logger,
		metrics:  newMetrics(cfg.Registerer),
	}
	for i := range k.stacks {
		k.stacks[i] = make(Stack, cfg.StackSize)
	}
	return k, nil
}

// SystemTime returns the current tick count. Safe to read from anywhere:
// on the target hardware a 32-bit load is atomic, and in this
// simulation there is exactly one goroutine mutating it.
func (k *Kernel) SystemTime() uint32 { return k.systemTime }

// NumberOfThreads returns the current TCB table occupancy.
func (k *Kernel) NumberOfThreads() int { return k.numThreads }

// NumberOfPthreads returns the current PTCB table occupancy.
func (k *Kernel) NumberOfPthreads() int { return k.numPthreads }

// CurrentThreadIndex returns the table slot of CurrentlyRunningThread.
func (k *Kernel) CurrentThreadIndex() int { return k.currentIdx }

// Unblock clears the blocked field on the TCB at idx and requests a
// context switch. This is the hook package ipc's Semaphore uses to wake
// a waiter: on real hardware the unblocking collaborator writes
// `blocked` under interrupt-disable and raises pend-SV directly; here
// that same write-then-request-switch sequence is just two ordinary
// method calls instead of a critical section.
func (k *Kernel) Unblock(idx int) {
	k.threads[idx].blocked = nil
	k.requestContextSwitch()
}
