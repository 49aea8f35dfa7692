package usecase

import (
	"context"
	"log/slog"
	"sync"

	"stock_dashboard/internal/feature/dashboard/domain/entity"
	symbolentity "stock_dashboard/internal/feature/symbollist/domain/entity"
	symbolusecase "stock_dashboard/internal/feature/symbollist/usecase"
	widgetentity "stock_dashboard/internal/feature/widgets/domain/entity"
	widgetusecase "stock_dashboard/internal/feature/widgets/usecase"
)

// Snapshot is a point-in-time view of a dashboard.
type Snapshot struct {
	ID      string
	Status  symbolusecase.LoadStatus
	Err     error
	Theme   entity.Theme
	Filters entity.Filters
	Symbols []symbolentity.Symbol
	Widgets []widgetentity.Widget
}

// Dashboard は1つのマウント済みダッシュボード画面の状態です。
// すべてのイベントはミューテックスで直列化されます。
// 銘柄の取得はロックの外で行い、アンマウント後に結果が反映されることはありません。
type Dashboard struct {
	id string

	mu       sync.Mutex
	registry *symbolusecase.Registry
	widgets  *widgetusecase.Collection
	filters  entity.Filters
	theme    entity.Theme
	mounted  bool

	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup
}

func newDashboard(id string, registry *symbolusecase.Registry) *Dashboard {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dashboard{
		id:       id,
		registry: registry,
		widgets:  widgetusecase.NewDefaultCollection(),
		theme:    entity.ThemeLight,
		mounted:  true,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ID returns the dashboard id.
func (d *Dashboard) ID() string { return d.id }

// startLoad begins a background symbol load. d.mu must be held.
func (d *Dashboard) startLoad() error {
	if err := d.registry.Begin(); err != nil {
		return err
	}
	d.loads.Add(1)
	go d.load()
	return nil
}

func (d *Dashboard) load() {
	defer d.loads.Done()

	symbols, err := d.registry.Fetch(d.ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.mounted {
		slog.Debug("discarding symbol load for unmounted dashboard", "dashboard", d.id)
		return
	}
	d.registry.Complete(symbols, err)
}

// Retry reloads symbols after a failed load.
// It returns symbolusecase.ErrNotRetryable unless the last load failed.
func (d *Dashboard) Retry() (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.mounted {
		return d.snapshotLocked(), ErrDashboardNotFound
	}
	if d.registry.Status() != symbolusecase.StatusFailed {
		return d.snapshotLocked(), symbolusecase.ErrNotRetryable
	}
	if err := d.startLoad(); err != nil {
		return d.snapshotLocked(), err
	}
	slog.Info("retrying symbol load", "dashboard", d.id)
	return d.snapshotLocked(), nil
}

// UpdateFilters applies the changed input fields and re-runs the display pipeline
// from the full symbol set.
func (d *Dashboard) UpdateFilters(u entity.FilterUpdate) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filters = d.filters.Apply(u)
	d.registry.Refresh(symbolusecase.DisplayStateFrom(d.filters.Search, d.filters.Price, d.filters.Sort))
	return d.snapshotLocked()
}

// AddWidget appends a widget of type t.
func (d *Dashboard) AddWidget(t widgetentity.WidgetType) (widgetentity.Widget, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.widgets.Add(t)
}

// RemoveWidget deletes the widget with id and reports whether it existed.
func (d *Dashboard) RemoveWidget(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.widgets.Remove(id)
}

// ReorderWidgets moves the widget at from to to and returns the new order.
func (d *Dashboard) ReorderWidgets(from, to int) ([]widgetentity.Widget, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.widgets.Reorder(from, to); err != nil {
		return nil, err
	}
	return d.widgets.List(), nil
}

// ToggleTheme flips the theme and returns the new one.
func (d *Dashboard) ToggleTheme() entity.Theme {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.theme = d.theme.Toggle()
	return d.theme
}

// Snapshot returns the current state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Dashboard) snapshotLocked() Snapshot {
	return Snapshot{
		ID:      d.id,
		Status:  d.registry.Status(),
		Err:     d.registry.Err(),
		Theme:   d.theme,
		Filters: d.filters,
		Symbols: d.registry.Displayed(),
		Widgets: d.widgets.List(),
	}
}

// unmount stops accepting load results and cancels any in-flight fetch.
func (d *Dashboard) unmount() {
	d.mu.Lock()
	d.mounted = false
	d.mu.Unlock()
	d.cancel()
}

// Wait blocks until background loads have returned.
func (d *Dashboard) Wait() {
	d.loads.Wait()
}
