package admin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JonMunkholm/promomod/internal/core"
)

func emptyStore(name string) *core.Store {
	return core.NewStore(name, nil, nil)
}

func TestReloader_SwapsSnapshot(t *testing.T) {
	initial := emptyStore("initial")
	p := core.NewProvider(core.NewEngine(initial, 0))

	next := emptyStore("next")
	r := NewReloader(p, func(context.Context) (*core.Store, error) { return next, nil }, 8, time.Second)

	got, err := r.Reload(context.Background(), "test")
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got != next {
		t.Error("Reload() should return the loaded store")
	}
	if p.Current().Store() != next {
		t.Error("provider should serve the new snapshot")
	}
	if st := r.Status(); st.Reloads != 1 || st.Failures != 0 || st.LastAttempt.IsZero() {
		t.Errorf("Status() = %+v", st)
	}
}

func TestReloader_FailureKeepsSnapshot(t *testing.T) {
	initial := emptyStore("initial")
	p := core.NewProvider(core.NewEngine(initial, 0))

	loadErr := errors.New("open book.xlsx: source not found")
	r := NewReloader(p, func(context.Context) (*core.Store, error) { return nil, loadErr }, 0, time.Second)

	_, err := r.Reload(context.Background(), "test")
	if !errors.Is(err, loadErr) {
		t.Fatalf("Reload() error = %v, want wrapped load error", err)
	}
	if got := core.MapError(err).Code; got != "SRC004" {
		t.Errorf("MapError code = %q, want SRC004", got)
	}
	if p.Current().Store() != initial {
		t.Error("failed reload must keep the current snapshot")
	}
	if st := r.Status(); st.Failures != 1 || st.LastError == "" {
		t.Errorf("Status() = %+v", st)
	}
}

func TestReloader_AppliesTimeout(t *testing.T) {
	p := core.NewProvider(core.NewEngine(emptyStore("initial"), 0))
	r := NewReloader(p, func(ctx context.Context) (*core.Store, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, 0, 10*time.Millisecond)

	_, err := r.Reload(context.Background(), "test")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Reload() error = %v, want deadline exceeded", err)
	}
}

func TestReloader_ConcurrentCallsShareLoad(t *testing.T) {
	p := core.NewProvider(core.NewEngine(emptyStore("initial"), 0))

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	r := NewReloader(p, func(context.Context) (*core.Store, error) {
		calls.Add(1)
		once.Do(func() { close(started) })
		<-release
		return emptyStore("next"), nil
	}, 0, time.Second)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Reload(context.Background(), "test")
			errs <- err
		}()
	}

	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Reload() error = %v", err)
		}
	}
	if got := calls.Load(); got >= n {
		t.Errorf("load ran %d times for %d concurrent reloads", got, n)
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "equivalencias.xlsx")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := core.NewProvider(core.NewEngine(emptyStore("initial"), 0))
	var loads atomic.Int32
	r := NewReloader(p, func(context.Context) (*core.Store, error) {
		loads.Add(1)
		return emptyStore("reloaded"), nil
	}, 0, time.Second)

	w, err := NewWatcher(path, r, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if p.Current().Store().Source == "reloaded" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if p.Current().Store().Source != "reloaded" {
		t.Fatal("watcher did not reload after the file changed")
	}
	time.Sleep(300 * time.Millisecond)
	if got := loads.Load(); got != 1 {
		t.Errorf("loads = %d, want 1 (writes should be debounced)", got)
	}
}

func TestNewWatcher_MissingPath(t *testing.T) {
	p := core.NewProvider(core.NewEngine(emptyStore("initial"), 0))
	r := NewReloader(p, nil, 0, time.Second)

	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing.xlsx"), r, 0); err == nil {
		t.Fatal("NewWatcher() expected error for missing path")
	}
}
