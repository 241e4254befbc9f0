// Package main compares direct fetching of states with fetching through TTL cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bool64/ctxd"
	cache "github.com/vearutop/ttlcache"
	"github.com/vearutop/ttlcache/internal/logger"
	"github.com/vearutop/ttlcache/internal/states"
)

const statesKey = "States"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the demo and returns process exit code, logger is flushed on every path.
func execute(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("states", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "path to YAML config")
		ttl        = fs.Duration("ttl", 0, "cache entry time to live (overrides config)")
		wait       = fs.Duration("wait", 0, "pause before fetching after expiration (overrides config)")
		delay      = fs.Duration("delay", 0, "latency of states source (overrides config)")
		verbose    = fs.Bool("verbose", false, "enable debug logging")
	)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	if *ttl > 0 {
		cfg.TTL = *ttl
	}

	if *wait > 0 {
		cfg.Wait = *wait
	}

	if *delay > 0 {
		cfg.FetchDelay = *delay
	}

	if *verbose {
		cfg.Verbose = true
	}

	log := logger.New(stderr, cfg.Verbose)

	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(context.Background(), cfg, stdout, log); err != nil {
		log.Error(context.Background(), "demo failed", "error", err)

		return 1
	}

	return 0
}

type demo struct {
	out   io.Writer
	start time.Time
}

func (d demo) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.out, "%s - "+format+"\n", append([]interface{}{time.Since(d.start).Round(time.Millisecond)}, args...)...)
}

func (d demo) report(prefix string, list []string) {
	d.printf("%s, count is %d, Minnesota is indexed at %d", prefix, len(list), states.IndexOf(list, "Minnesota"))
	fmt.Fprint(d.out, "\n\n")
}

func run(ctx context.Context, cfg Config, out io.Writer, log ctxd.Logger) error {
	src := &states.Source{Delay: cfg.FetchDelay}
	d := demo{out: out, start: time.Now()}

	onEvict := func(ctx context.Context, key string, value interface{}, reason cache.EvictionReason) {
		fmt.Fprintf(out, "Evicted! key = %s, value = %v, reason = %s\n", key, value, reason)
	}

	mem := cache.NewMemory(cache.MemoryConfig{
		Name:       "states",
		Logger:     log,
		TimeToLive: cfg.TTL,
	})

	fetch := func(g cache.Getter, before, after string) ([]string, error) {
		d.printf("%s", before)

		list, err := cache.GetOrCreateOf(ctx, g, statesKey, src.Fetch, cfg.TTL, onEvict)
		if err != nil {
			return nil, ctxd.WrapError(ctx, err, "failed to get states", "step", before)
		}

		d.report(after, list)

		return list, nil
	}

	local, err := fetch(cache.NoOp{}, "Getting states...", "States retrieved")
	if err != nil {
		return err
	}

	if _, err := fetch(cache.NoOp{}, "Getting states (again)...", "States retrieved (again)"); err != nil {
		return err
	}

	d.report("Using local cached states", local)

	if _, err := fetch(mem, "Getting cached states...", "Cached states retrieved"); err != nil {
		return err
	}

	if _, err := fetch(mem, "Getting cached states (again)...", "Cached states retrieved (again)"); err != nil {
		return err
	}

	d.printf("Waiting %s...", cfg.Wait)

	if err := sleep(ctx, cfg.Wait); err != nil {
		return err
	}

	fmt.Fprint(out, "\n\n")

	if _, err := fetch(mem, "Getting cached states (after eviction)...", "Cached states retrieved (after eviction)"); err != nil {
		return err
	}

	log.Info(ctx, "demo finished", "fetches", src.Calls(), "cached", mem.Len())

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
