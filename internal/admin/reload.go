// Package admin provides administrative operations on the loaded tables:
// reloading the source and watching it for changes.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/promomod/internal/core"
	"golang.org/x/sync/singleflight"
)

// LoadFunc loads a fresh snapshot from the configured source.
type LoadFunc func(ctx context.Context) (*core.Store, error)

// ReloadStatus summarizes reload activity for the status endpoint.
type ReloadStatus struct {
	Reloads     int       `json:"reloads"`
	Failures    int       `json:"failures"`
	LastAttempt time.Time `json:"lastAttempt,omitzero"`
	LastError   string    `json:"lastError,omitempty"`
}

// Reloader swaps a freshly loaded snapshot into a Provider. Concurrent
// reloads share a single load. A failed reload leaves the current snapshot
// in place.
type Reloader struct {
	provider  *core.Provider
	load      LoadFunc
	cacheSize int
	timeout   time.Duration

	group singleflight.Group

	mu     sync.Mutex
	status ReloadStatus
}

// NewReloader creates a reloader. Each load is bounded by timeout; new
// engines get an outcome cache of cacheSize entries.
func NewReloader(p *core.Provider, load LoadFunc, cacheSize int, timeout time.Duration) *Reloader {
	return &Reloader{
		provider:  p,
		load:      load,
		cacheSize: cacheSize,
		timeout:   timeout,
	}
}

// Reload loads the source and installs the new snapshot. trigger is logged
// ("api", "watch", ...). Callers that arrive while a reload is running wait
// for it and receive its result.
func (r *Reloader) Reload(ctx context.Context, trigger string) (*core.Store, error) {
	v, err, shared := r.group.Do("reload", func() (any, error) {
		return r.reload(context.WithoutCancel(ctx), trigger)
	})
	if shared {
		slog.Debug("reload shared", "trigger", trigger)
	}
	if err != nil {
		return nil, err
	}
	return v.(*core.Store), nil
}

func (r *Reloader) reload(ctx context.Context, trigger string) (*core.Store, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	store, err := r.load(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.LastAttempt = start.UTC()

	if err != nil {
		r.status.Failures++
		r.status.LastError = err.Error()
		current := r.provider.Current().Store()
		slog.Error("reload failed, keeping current tables",
			"trigger", trigger,
			"snapshot", current.ID,
			"error", err,
		)
		return nil, fmt.Errorf("reload failed: %w", err)
	}

	prev := r.provider.Swap(core.NewEngine(store, r.cacheSize))
	r.status.Reloads++
	r.status.LastError = ""
	slog.Info("tables reloaded",
		"trigger", trigger,
		"snapshot", store.ID,
		"previous", prev.Store().ID,
		"warnings", len(store.Warnings()),
		"duration", time.Since(start),
	)
	return store, nil
}

// Status returns a copy of the reload counters.
func (r *Reloader) Status() ReloadStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}
