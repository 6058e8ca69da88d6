package storage

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWatchFile_ExternalEditFires(t *testing.T) {
	f := tempFile(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	go WatchFile(ctx, f, quietLogger(), func() { calls.Add(1) })
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(f.Path(), []byte(`{"currentNote":"elsewhere"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return calls.Load() > 0
	}, "external edit was not reported")
}

func TestWatchFile_OwnWriteIgnored(t *testing.T) {
	f := tempFile(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	go WatchFile(ctx, f, quietLogger(), func() { calls.Add(1) })
	time.Sleep(100 * time.Millisecond)

	if err := f.Set(context.Background(), "theme", "dark"); err != nil {
		t.Fatal(err)
	}

	time.Sleep(400 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("own write reported %d times", n)
	}
}

func TestWatchFile_StopsOnCancel(t *testing.T) {
	f := tempFile(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- WatchFile(ctx, f, quietLogger(), nil) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WatchFile returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
