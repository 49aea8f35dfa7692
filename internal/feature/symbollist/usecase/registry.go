package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/shared/backoff"
)

// SymbolSource abstracts the provider of the full symbol set.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolSource interface {
	// ListAll returns every symbol the source knows about, in source order.
	ListAll(ctx context.Context) ([]entity.Symbol, error)
}

// LoadStatus is the lifecycle state of a Registry.
type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusReady   LoadStatus = "ready"
	StatusFailed  LoadStatus = "failed"
)

const (
	// DefaultFetchTimeout bounds a single request to the symbol source.
	DefaultFetchTimeout = 10 * time.Second
	// DefaultFetchAttempts is the number of tries before a load fails.
	DefaultFetchAttempts = 3
)

// LoadOptions controls how a Registry reads its source.
type LoadOptions struct {
	Timeout  time.Duration                 // per-attempt timeout
	Attempts int                           // total attempts, at least 1
	Backoff  func(retry int) time.Duration // delay before retry n (0-based)
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.Timeout <= 0 {
		o.Timeout = DefaultFetchTimeout
	}
	if o.Attempts <= 0 {
		o.Attempts = DefaultFetchAttempts
	}
	if o.Backoff == nil {
		o.Backoff = backoff.Default
	}
	return o
}

// Registry holds the full symbol set fetched for one dashboard and the subset
// currently on display. It is not safe for concurrent use; the owning screen
// serializes access. Fetch touches no state and may run without that lock.
type Registry struct {
	source   SymbolSource
	pipeline *Pipeline
	opts     LoadOptions

	status    LoadStatus
	err       error
	all       []entity.Symbol
	displayed []entity.Symbol

	state      entity.DisplayState
	interacted bool
}

// NewRegistry creates an idle Registry reading from source.
func NewRegistry(source SymbolSource, pipeline *Pipeline, opts LoadOptions) *Registry {
	return &Registry{
		source:   source,
		pipeline: pipeline,
		opts:     opts.withDefaults(),
		status:   StatusIdle,
	}
}

// Load fetches the full set and derives the initial display (first 20 entries).
// On failure both sets stay empty and the error is recorded and returned.
func (r *Registry) Load(ctx context.Context) error {
	if err := r.Begin(); err != nil {
		return err
	}
	symbols, err := r.Fetch(ctx)
	r.Complete(symbols, err)
	return err
}

// Begin marks the registry as loading. Only an idle or failed registry may begin.
func (r *Registry) Begin() error {
	switch r.status {
	case StatusLoading:
		return ErrLoadInProgress
	case StatusReady:
		return ErrAlreadyLoaded
	}
	r.status = StatusLoading
	r.err = nil
	return nil
}

// Fetch reads the source with a per-attempt timeout, retrying with backoff.
// Context cancellation stops further attempts.
func (r *Registry) Fetch(ctx context.Context) ([]entity.Symbol, error) {
	var lastErr error
	for attempt := 0; attempt < r.opts.Attempts; attempt++ {
		if attempt > 0 {
			wait := r.opts.Backoff(attempt - 1)
			slog.Warn("retrying symbol fetch", "attempt", attempt+1, "wait", wait, "error", lastErr)
			if err := sleep(ctx, wait); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSymbolFetch, err)
			}
		}

		symbols, err := r.fetchOnce(ctx)
		if err == nil {
			return symbols, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w after %d attempt(s): %w", ErrSymbolFetch, r.opts.Attempts, lastErr)
}

func (r *Registry) fetchOnce(ctx context.Context) ([]entity.Symbol, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()
	return r.source.ListAll(ctx)
}

// Complete stores the outcome of a Fetch started with Begin.
// If the display state was changed while loading, the pipeline is applied
// instead of the initial 20-entry view.
func (r *Registry) Complete(symbols []entity.Symbol, err error) {
	if err != nil {
		slog.Error("error fetching stock symbols", "error", err)
		r.status = StatusFailed
		r.err = err
		r.all = nil
		r.displayed = nil
		return
	}

	r.status = StatusReady
	r.err = nil
	r.all = symbols
	if r.interacted {
		r.displayed = r.pipeline.Apply(r.all, r.state)
	} else {
		r.displayed = truncate(r.all, InitialDisplayLimit)
	}
	slog.Info("stock symbols loaded", "count", len(symbols))
}

// Refresh re-derives the display list from the full set for the given state.
func (r *Registry) Refresh(state entity.DisplayState) []entity.Symbol {
	r.state = state
	r.interacted = true
	r.displayed = r.pipeline.Apply(r.all, state)
	return r.Displayed()
}

// Status returns the lifecycle state.
func (r *Registry) Status() LoadStatus { return r.status }

// Err returns the error of the last failed load, or nil.
func (r *Registry) Err() error { return r.err }

// All returns a copy of the full symbol set.
func (r *Registry) All() []entity.Symbol {
	return append([]entity.Symbol(nil), r.all...)
}

// Displayed returns a copy of the current display list.
func (r *Registry) Displayed() []entity.Symbol {
	return append([]entity.Symbol{}, r.displayed...)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsFetchError reports whether err came from a failed symbol fetch.
func IsFetchError(err error) bool {
	return errors.Is(err, ErrSymbolFetch)
}
