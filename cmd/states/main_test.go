package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bool64/ctxd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	out := bytes.NewBuffer(nil)

	err := run(context.Background(), Config{
		TTL:        50 * time.Millisecond,
		Wait:       100 * time.Millisecond,
		FetchDelay: -1,
	}, out, ctxd.NoOpLogger{})
	require.NoError(t, err)

	s := out.String()
	assert.Equal(t, 1, strings.Count(s, "Evicted! key = States"))
	assert.Contains(t, s, "reason = Expired")
	assert.Equal(t, 6, strings.Count(s, "count is 50, Minnesota is indexed at 22"))
	assert.Less(t, strings.Index(s, "Getting cached states (after eviction)..."), strings.Index(s, "Evicted!"))
	assert.Less(t, strings.Index(s, "Evicted!"), strings.Index(s, "Cached states retrieved (after eviction)"))
}

func TestRun_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, Config{TTL: time.Second, Wait: time.Hour, FetchDelay: time.Hour}, bytes.NewBuffer(nil), ctxd.NoOpLogger{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	p := filepath.Join(t.TempDir(), "states.yaml")
	require.NoError(t, os.WriteFile(p, []byte("ttl: 2s\nwait: 3s\nverbose: true\n"), 0o600))

	cfg, err = loadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.TTL)
	assert.Equal(t, 3*time.Second, cfg.Wait)
	assert.Equal(t, time.Second, cfg.FetchDelay)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	p := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("ttl: [1"), 0o600))

	_, err = loadConfig(p)
	assert.ErrorContains(t, err, "parse yaml")

	p = filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(p, []byte("ttl: 0s\n"), 0o600))

	_, err = loadConfig(p)
	assert.ErrorContains(t, err, "invalid ttl")
}

func TestExecute(t *testing.T) {
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)

	code := execute([]string{"-ttl", "50ms", "-wait", "100ms", "-delay", "1ms"}, stdout, stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, 1, strings.Count(stdout.String(), "Evicted! key = States"))
	assert.Contains(t, stderr.String(), "demo finished")
}

func TestExecute_failure(t *testing.T) {
	stderr := bytes.NewBuffer(nil)

	code := execute([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, bytes.NewBuffer(nil), stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "read config")

	assert.Equal(t, 2, execute([]string{"-unknown"}, bytes.NewBuffer(nil), bytes.NewBuffer(nil)))
}
