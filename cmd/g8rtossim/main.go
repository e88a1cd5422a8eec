// Command g8rtossim drives a kernel.Kernel with a small demo workload,
// the way original_source/main.c wires G8RTOS_Init/AddThread/
// AddPeriodicEvent/Launch together for one MSP432 board. Subcommand
// wiring follows runsc/cli's use of github.com/google/subcommands.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/g8rtos-go/kernel"
	"github.com/g8rtos-go/kernel/board"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&versionCmd{}, "")
	subcommands.Register(&runCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

// version is the simulator's own version string. A real release
// pipeline would set this at link time; here it is a plain constant
// since this module has no release-tag plumbing of its own.
const version = "0.1.0-dev"

type versionCmd struct{}

func (*versionCmd) Name() string          { return "version" }
func (*versionCmd) Synopsis() string      { return "print the simulator version" }
func (*versionCmd) Usage() string         { return "version: print the simulator version\n" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}

func (*versionCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stdout, "g8rtossim %s\n", version)
	return subcommands.ExitSuccess
}

// runCmd launches the demo workload and blocks until interrupted.
type runCmd struct {
	maxThreads  int
	clockHz     uint
	hardened    bool
	metricsAddr string
	debug       bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run the kernel with the demo workload" }
func (*runCmd) Usage() string {
	return "run [flags]: run the kernel with the demo workload until interrupted\n"
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&r.maxThreads, "max-threads", kernel.DefaultMaxThreads, "maximum admitted threads")
	f.UintVar(&r.clockHz, "clock-hz", kernel.DefaultClockHz, "simulated core clock frequency")
	f.BoolVar(&r.hardened, "hardened-wake", false, "use sleepCount<=SystemTime wake semantics")
	f.StringVar(&r.metricsAddr, "metrics-addr", ":9100", "address to serve /metrics on, empty to disable")
	f.BoolVar(&r.debug, "debug", false, "enable debug-level logging")
}

func (r *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	log, err := newLogger(r.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "g8rtossim: building logger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer log.Sync() //nolint:errcheck

	if r.metricsAddr != "" {
		go serveMetrics(r.metricsAddr, log)
	}

	opts := []kernel.Option{
		kernel.WithMaxThreads(r.maxThreads),
		kernel.WithClockHz(uint32(r.clockHz)),
		kernel.WithLogger(log),
	}
	if r.metricsAddr != "" {
		opts = append(opts, kernel.WithRegisterer(prometheus.DefaultRegisterer))
	}
	if r.hardened {
		opts = append(opts, kernel.WithHardenedWake())
	}

	k, err := kernel.New(&board.Sim{}, opts...)
	if err != nil {
		log.Error("constructing kernel", zap.Error(err))
		return subcommands.ExitFailure
	}
	if err := k.Init(); err != nil {
		log.Error("initializing kernel", zap.Error(err))
		return subcommands.ExitFailure
	}

	w := newWorkload(k, log)
	for _, fn := range []kernel.ThreadFunc{w.sensorThread, w.rmsThread, w.displayThread} {
		if status := k.AddThread(fn); !status.OK() {
			log.Error("admitting thread", zap.String("status", status.String()))
			return subcommands.ExitFailure
		}
	}
	if status := k.AddPeriodicEvent(w.joystickPoll, 100); !status.OK() {
		log.Error("admitting periodic event", zap.String("status", status.String()))
		return subcommands.ExitFailure
	}
	if status := k.AddPeriodicEvent(w.heartbeat, 1000); !status.OK() {
		log.Error("admitting periodic event", zap.String("status", status.String()))
		return subcommands.ExitFailure
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := k.Launch(runCtx); err != nil {
		log.Error("kernel exited", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func serveMetrics(addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics server exited", zap.Error(err))
	}
}
