// Command spscbench drives a ringbuffer.Queue with one producer and one
// consumer goroutine, checks that every item arrives once and in order,
// and reports throughput. Queue metrics can be scraped while it runs.
//
// Usage:
//
//	go run ./cmd/spscbench -n 10000000 -size 1024 -locker spin -metrics :9090
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fastrand"

	"github.com/leak-guard/static-collections/ringbuffer"
)

var (
	errFIFOViolation = errors.New("fifo order violated")
	errLostItems     = errors.New("items lost in transfer")
)

type config struct {
	items       int
	size        int
	batch       int
	locker      string
	metricsAddr string
	hold        bool
	verbose     bool
}

func main() {
	var cfg config
	flag.IntVar(&cfg.items, "n", 10_000_000, "number of items passed through the queue")
	flag.IntVar(&cfg.size, "size", 1024, "queue capacity")
	flag.IntVar(&cfg.batch, "batch", 32, "maximum producer batch size")
	flag.StringVar(&cfg.locker, "locker", "nop", "counter locking policy: nop, mutex or spin")
	flag.StringVar(&cfg.metricsAddr, "metrics", "", "listen address for /metrics (empty disables)")
	flag.BoolVar(&cfg.hold, "hold", false, "keep serving metrics after the run until interrupted")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("spscbench failed", "error", err)
		os.Exit(1)
	}
}

func newLocker(name string) (ringbuffer.Locker, error) {
	switch name {
	case "nop":
		return ringbuffer.NopLocker{}, nil
	case "mutex":
		return &sync.Mutex{}, nil
	case "spin":
		return &ringbuffer.SpinLocker{}, nil
	default:
		return nil, fmt.Errorf("unknown locker %q", name)
	}
}

func run(ctx context.Context, cfg config) error {
	if cfg.items <= 0 || cfg.size <= 0 || cfg.batch <= 0 {
		return fmt.Errorf("n, size and batch must be > 0")
	}

	locker, err := newLocker(cfg.locker)
	if err != nil {
		return err
	}

	q := ringbuffer.New[uint64](cfg.size, ringbuffer.WithLocker(locker), ringbuffer.WithSPSCGuard())
	drain := ringbuffer.New[uint64](cfg.size)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		ringbuffer.NewCollector("spsc", q),
		ringbuffer.NewCollector("drain", drain),
	)

	if cfg.metricsAddr != "" {
		srv := serveMetrics(cfg.metricsAddr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("metrics server shutdown", "error", err)
			}
		}()
	}

	slog.Info("starting pump",
		"items", cfg.items,
		"capacity", q.Capacity(),
		"capacity_bytes", q.CapacityBytes(),
		"locker", cfg.locker)

	start := time.Now()
	if err := pump(ctx, q, cfg); err != nil {
		return fmt.Errorf("pump: %w", err)
	}
	elapsed := time.Since(start)

	st := q.Stats()
	slog.Info("pump finished",
		"elapsed", elapsed,
		"ns_per_item", float64(elapsed.Nanoseconds())/float64(cfg.items),
		"push_attempts", st.PushAttempts,
		"push_full", st.PushFailedQIsFull,
		"pop_attempts", st.PopAttempts,
		"pop_empty", st.PopFailedQIsEmpty)

	moved, err := transfer(q, drain)
	if err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	slog.Info("transfer finished", "moved", moved, "drain_size", drain.Size())

	if cfg.hold && cfg.metricsAddr != "" {
		slog.Info("holding metrics endpoint, interrupt to exit", "addr", cfg.metricsAddr)
		<-ctx.Done()
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "error", err)
		}
	}()

	slog.Info("serving metrics", "addr", addr)
	return srv
}

// pump passes cfg.items sequential values from a producer goroutine to a
// consumer goroutine through q.
func pump(ctx context.Context, q *ringbuffer.Queue[uint64], cfg config) error {
	items := uint64(cfg.items)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg      sync.WaitGroup
		consErr error
	)
	wg.Add(2)

	go func() {
		defer wg.Done()

		batch := make([]uint64, cfg.batch)
		var next uint64
		for next < items {
			if ctx.Err() != nil {
				return
			}

			n := min(uint64(fastrand.Uint32n(uint32(cfg.batch)))+1, items-next)
			for i := range batch[:n] {
				batch[i] = next + uint64(i)
			}

			pushed := q.PushSlice(batch[:n])
			if pushed == 0 {
				runtime.Gosched()
			}
			next += uint64(pushed)
		}
	}()

	go func() {
		defer wg.Done()
		defer cancel()

		var expected uint64
		for round := 0; expected < items; round++ {
			if ctx.Err() != nil {
				consErr = ctx.Err()
				return
			}

			if round%2 == 0 {
				var v uint64
				if !q.PeekAndPop(&v) {
					runtime.Gosched()
					continue
				}
				if v != expected {
					consErr = fmt.Errorf("%w: expected %d, got %d", errFIFOViolation, expected, v)
					return
				}
				expected++
				continue
			}

			// verify what is queued through a snapshot, then drop it in one step
			it := q.Snapshot()
			n := 0
			for it.Next() {
				if v := it.Value(); v != expected {
					consErr = fmt.Errorf("%w: expected %d, got %d", errFIFOViolation, expected, v)
					return
				}
				expected++
				n++
			}
			if n == 0 {
				runtime.Gosched()
				continue
			}
			q.PopMany(n)
			slog.Debug("drained batch", "count", n, "expected_next", expected)
		}
	}()

	wg.Wait()
	return consErr
}

// transfer fills src to capacity and moves everything it can into dst.
func transfer(src, dst *ringbuffer.Queue[uint64]) (int, error) {
	want := src.FreeSpace()
	for i := 0; i < want; i++ {
		if !src.Push(uint64(i)) {
			return 0, fmt.Errorf("%w: source accepted %d of %d", errLostItems, i, want)
		}
	}

	free := dst.FreeSpace()
	moved := src.MoveTo(dst)
	if moved != min(want, free) || src.Size() != want-moved {
		return moved, fmt.Errorf("%w: moved %d of %d", errLostItems, moved, want)
	}

	var i uint64
	for v := range dst.All() {
		if v != i {
			return moved, fmt.Errorf("%w: expected %d, got %d", errFIFOViolation, i, v)
		}
		i++
	}
	return moved, nil
}
