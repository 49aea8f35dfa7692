package usecase

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"stock_dashboard/internal/feature/dashboard/domain/entity"
	symbolusecase "stock_dashboard/internal/feature/symbollist/usecase"
)

// Screens はマウント中のダッシュボードをIDで管理します。
type Screens struct {
	source symbolusecase.SymbolSource
	cfg    Config
	newID  func() string

	mu      sync.RWMutex
	screens map[string]*Dashboard
	closed  bool
}

// NewScreens creates an empty screen set whose dashboards read symbols from source.
func NewScreens(source symbolusecase.SymbolSource, cfg Config) *Screens {
	if cfg.MaxScreens <= 0 {
		cfg.MaxScreens = DefaultMaxScreens
	}
	return &Screens{
		source:  source,
		cfg:     cfg,
		newID:   uuid.NewString,
		screens: make(map[string]*Dashboard),
	}
}

// Mount はダッシュボードを新規に作成し、銘柄のロードをバックグラウンドで開始します。
// 返されるダッシュボードはロード中の状態です。
func (s *Screens) Mount() (*Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrScreensClosed
	}
	if len(s.screens) >= s.cfg.MaxScreens {
		return nil, ErrTooManyDashboards
	}

	pipeline := symbolusecase.NewPipeline(s.cfg.Locale, symbolusecase.InteractiveDisplayLimit)
	registry := symbolusecase.NewRegistry(s.source, pipeline, s.cfg.Load)
	d := newDashboard(s.newID(), registry)

	d.mu.Lock()
	err := d.startLoad()
	d.mu.Unlock()
	if err != nil {
		d.cancel()
		return nil, err
	}

	s.screens[d.id] = d
	slog.Info("dashboard mounted", "dashboard", d.id, "mounted", len(s.screens))
	return d, nil
}

// Get returns the mounted dashboard with id.
func (s *Screens) Get(id string) (*Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.screens[id]
	if !ok {
		return nil, ErrDashboardNotFound
	}
	return d, nil
}

// Unmount removes the dashboard and cancels its pending load.
// Load results arriving afterwards are discarded.
func (s *Screens) Unmount(id string) error {
	s.mu.Lock()
	d, ok := s.screens[id]
	delete(s.screens, id)
	s.mu.Unlock()

	if !ok {
		return ErrDashboardNotFound
	}
	d.unmount()
	slog.Info("dashboard unmounted", "dashboard", id)
	return nil
}

// Logout はダッシュボードをアンマウントし、遷移先のログイン画面を返します。
func (s *Screens) Logout(id string) (entity.Screen, error) {
	if err := s.Unmount(id); err != nil {
		return "", err
	}
	return entity.ScreenLogin, nil
}

// Len returns the number of mounted dashboards.
func (s *Screens) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.screens)
}

// Close unmounts every dashboard and waits for their loads to return.
func (s *Screens) Close() {
	s.mu.Lock()
	all := make([]*Dashboard, 0, len(s.screens))
	for id, d := range s.screens {
		all = append(all, d)
		delete(s.screens, id)
	}
	s.closed = true
	s.mu.Unlock()

	for _, d := range all {
		d.unmount()
	}
	for _, d := range all {
		d.Wait()
	}
	slog.Info("all dashboards closed", "count", len(all))
}
