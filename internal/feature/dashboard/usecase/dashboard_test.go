package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"stock_dashboard/internal/feature/dashboard/domain/entity"
	symbolentity "stock_dashboard/internal/feature/symbollist/domain/entity"
	symbolusecase "stock_dashboard/internal/feature/symbollist/usecase"
	widgetentity "stock_dashboard/internal/feature/widgets/domain/entity"
	widgetusecase "stock_dashboard/internal/feature/widgets/usecase"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var errUpstream = errors.New("upstream unavailable")

// mockSymbolSource はSymbolSourceインターフェースのモック実装です。
// 複数のゴルーチンから呼ばれるため呼び出し回数はatomicで数えます。
type mockSymbolSource struct {
	ListAllFunc func(ctx context.Context) ([]symbolentity.Symbol, error)
	calls       atomic.Int32
}

// ListAll はモックのListAll関数を呼び出します。
func (m *mockSymbolSource) ListAll(ctx context.Context) ([]symbolentity.Symbol, error) {
	m.calls.Add(1)
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func price(v float64) *float64 { return &v }
func str(v string) *string     { return &v }

func codes(symbols []symbolentity.Symbol) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, s.Code)
	}
	return out
}

func manySymbols(n int) []symbolentity.Symbol {
	out := make([]symbolentity.Symbol, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, symbolentity.Symbol{Code: fmt.Sprintf("SYM%02d", i), Price: price(float64(i + 1))})
	}
	return out
}

func sampleSymbols() []symbolentity.Symbol {
	return []symbolentity.Symbol{
		{Code: "MSFT", Price: price(300)},
		{Code: "AAPL", Price: price(150)},
		{Code: "AMZN", Price: price(120)},
		{Code: "ACN"},
	}
}

func testConfig() Config {
	return Config{
		Locale: language.English,
		Load: symbolusecase.LoadOptions{
			Timeout:  time.Second,
			Attempts: 1,
			Backoff:  func(int) time.Duration { return 0 },
		},
		MaxScreens: 10,
	}
}

func returning(symbols []symbolentity.Symbol) *mockSymbolSource {
	return &mockSymbolSource{ListAllFunc: func(ctx context.Context) ([]symbolentity.Symbol, error) {
		return symbols, nil
	}}
}

// blocking returns a source that waits for release before answering.
func blocking(symbols []symbolentity.Symbol) (*mockSymbolSource, chan struct{}) {
	release := make(chan struct{})
	src := &mockSymbolSource{ListAllFunc: func(ctx context.Context) ([]symbolentity.Symbol, error) {
		select {
		case <-release:
			return symbols, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	return src, release
}

func mountReady(t *testing.T, src symbolusecase.SymbolSource) *Dashboard {
	t.Helper()
	s := NewScreens(src, testConfig())
	t.Cleanup(s.Close)

	d, err := s.Mount()
	require.NoError(t, err)
	d.Wait()
	require.Equal(t, symbolusecase.StatusReady, d.Snapshot().Status)
	return d
}

// TestDashboard_Load_InitialDisplay はロード完了後に先頭20件が表示されることを検証します。
func TestDashboard_Load_InitialDisplay(t *testing.T) {
	t.Parallel()

	d := mountReady(t, returning(manySymbols(25)))

	snap := d.Snapshot()
	assert.Len(t, snap.Symbols, symbolusecase.InitialDisplayLimit)
	assert.Equal(t, "SYM00", snap.Symbols[0].Code)
	assert.Equal(t, "SYM19", snap.Symbols[19].Code)
	assert.NoError(t, snap.Err)
	assert.Equal(t, entity.ThemeLight, snap.Theme)
	assert.Equal(t, []widgetentity.Widget{
		{ID: 1, Type: widgetentity.WidgetStocks},
		{ID: 2, Type: widgetentity.WidgetNews},
	}, snap.Widgets)
}

// TestDashboard_Load_Failure はロード失敗時に空のリストとFetchErrorが記録されることを検証します。
func TestDashboard_Load_Failure(t *testing.T) {
	t.Parallel()

	src := &mockSymbolSource{ListAllFunc: func(ctx context.Context) ([]symbolentity.Symbol, error) {
		return nil, errUpstream
	}}
	s := NewScreens(src, testConfig())
	t.Cleanup(s.Close)

	d, err := s.Mount()
	require.NoError(t, err)
	d.Wait()

	snap := d.Snapshot()
	assert.Equal(t, symbolusecase.StatusFailed, snap.Status)
	assert.True(t, symbolusecase.IsFetchError(snap.Err))
	assert.ErrorIs(t, snap.Err, errUpstream)
	assert.Empty(t, snap.Symbols)
	assert.NotNil(t, snap.Symbols)
}

// TestDashboard_Retry は失敗後の再試行で銘柄が読み込まれることを検証します。
func TestDashboard_Retry(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fail.Store(true)
	src := &mockSymbolSource{ListAllFunc: func(ctx context.Context) ([]symbolentity.Symbol, error) {
		if fail.Load() {
			return nil, errUpstream
		}
		return sampleSymbols(), nil
	}}
	s := NewScreens(src, testConfig())
	t.Cleanup(s.Close)

	d, err := s.Mount()
	require.NoError(t, err)
	d.Wait()
	require.Equal(t, symbolusecase.StatusFailed, d.Snapshot().Status)

	fail.Store(false)
	snap, err := d.Retry()
	require.NoError(t, err)
	assert.NotEqual(t, symbolusecase.StatusFailed, snap.Status)

	d.Wait()
	snap = d.Snapshot()
	assert.Equal(t, symbolusecase.StatusReady, snap.Status)
	assert.Equal(t, []string{"MSFT", "AAPL", "AMZN", "ACN"}, codes(snap.Symbols))
	assert.Equal(t, int32(2), src.calls.Load())
}

// TestDashboard_Retry_NotFailed は失敗していない状態での再試行が拒否されることを検証します。
func TestDashboard_Retry_NotFailed(t *testing.T) {
	t.Parallel()

	src := returning(sampleSymbols())
	d := mountReady(t, src)

	_, err := d.Retry()

	assert.ErrorIs(t, err, symbolusecase.ErrNotRetryable)
	assert.Equal(t, int32(1), src.calls.Load())
}

// TestDashboard_UpdateFilters は入力欄の変更がパイプラインに反映されることを検証します。
func TestDashboard_UpdateFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		updates   []entity.FilterUpdate
		wantCodes []string
	}{
		{
			name:      "search is case-insensitive",
			updates:   []entity.FilterUpdate{{Search: str("a")}},
			wantCodes: []string{"AAPL", "AMZN", "ACN"},
		},
		{
			name:      "price ceiling excludes unpriced",
			updates:   []entity.FilterUpdate{{Price: str("150")}},
			wantCodes: []string{"AAPL", "AMZN"},
		},
		{
			name:      "sort by price puts unpriced last",
			updates:   []entity.FilterUpdate{{Sort: str("price")}},
			wantCodes: []string{"AMZN", "AAPL", "MSFT", "ACN"},
		},
		{
			name:      "sort by name",
			updates:   []entity.FilterUpdate{{Sort: str("name")}},
			wantCodes: []string{"AAPL", "ACN", "AMZN", "MSFT"},
		},
		{
			name:      "invalid price disables the filter",
			updates:   []entity.FilterUpdate{{Price: str("abc")}},
			wantCodes: []string{"MSFT", "AAPL", "AMZN", "ACN"},
		},
		{
			name: "clearing the ceiling restores excluded symbols",
			updates: []entity.FilterUpdate{
				{Price: str("100")},
				{Price: str("")},
			},
			wantCodes: []string{"MSFT", "AAPL", "AMZN", "ACN"},
		},
		{
			name: "fields combine across updates",
			updates: []entity.FilterUpdate{
				{Search: str("A")},
				{Price: str("200"), Sort: str("name")},
			},
			wantCodes: []string{"AAPL", "AMZN"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := mountReady(t, returning(sampleSymbols()))

			var snap Snapshot
			for _, u := range tt.updates {
				snap = d.UpdateFilters(u)
			}
			assert.Equal(t, tt.wantCodes, codes(snap.Symbols))
		})
	}
}

// TestDashboard_UpdateFilters_KeepsOtherFields は部分更新が他の入力欄を保持することを検証します。
func TestDashboard_UpdateFilters_KeepsOtherFields(t *testing.T) {
	t.Parallel()

	d := mountReady(t, returning(sampleSymbols()))

	d.UpdateFilters(entity.FilterUpdate{Search: str("AA"), Sort: str("price")})
	snap := d.UpdateFilters(entity.FilterUpdate{Price: str("500")})

	assert.Equal(t, entity.Filters{Search: "AA", Price: "500", Sort: "price"}, snap.Filters)
}

// TestDashboard_UpdateFilters_InteractiveLimit はフィルタ適用後の表示が10件に制限されることを検証します。
func TestDashboard_UpdateFilters_InteractiveLimit(t *testing.T) {
	t.Parallel()

	d := mountReady(t, returning(manySymbols(25)))

	snap := d.UpdateFilters(entity.FilterUpdate{Search: str("SYM")})

	assert.Len(t, snap.Symbols, symbolusecase.InteractiveDisplayLimit)
}

// TestDashboard_UpdateFilters_WhileLoading はロード中に変更したフィルタが完了時に適用されることを検証します。
func TestDashboard_UpdateFilters_WhileLoading(t *testing.T) {
	t.Parallel()

	src, release := blocking(sampleSymbols())
	s := NewScreens(src, testConfig())
	t.Cleanup(s.Close)

	d, err := s.Mount()
	require.NoError(t, err)

	snap := d.UpdateFilters(entity.FilterUpdate{Search: str("AM")})
	assert.Equal(t, symbolusecase.StatusLoading, snap.Status)
	assert.Empty(t, snap.Symbols)

	close(release)
	d.Wait()

	snap = d.Snapshot()
	assert.Equal(t, symbolusecase.StatusReady, snap.Status)
	assert.Equal(t, []string{"AMZN"}, codes(snap.Symbols))
}

// TestDashboard_Widgets はダッシュボード経由のウィジェット操作を検証します。
func TestDashboard_Widgets(t *testing.T) {
	t.Parallel()

	d := mountReady(t, returning(nil))

	w, err := d.AddWidget(widgetentity.WidgetCrypto)
	require.NoError(t, err)
	assert.Equal(t, int64(3), w.ID)

	_, err = d.AddWidget("  ")
	assert.ErrorIs(t, err, widgetusecase.ErrInvalidWidgetType)

	list, err := d.ReorderWidgets(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []widgetentity.Widget{
		{ID: 2, Type: widgetentity.WidgetNews},
		{ID: 3, Type: widgetentity.WidgetCrypto},
		{ID: 1, Type: widgetentity.WidgetStocks},
	}, list)

	_, err = d.ReorderWidgets(0, 3)
	assert.ErrorIs(t, err, widgetusecase.ErrWidgetIndexOutOfRange)

	assert.True(t, d.RemoveWidget(3))
	assert.False(t, d.RemoveWidget(3))
	assert.Equal(t, []widgetentity.Widget{
		{ID: 2, Type: widgetentity.WidgetNews},
		{ID: 1, Type: widgetentity.WidgetStocks},
	}, d.Snapshot().Widgets)
}

// TestDashboard_ToggleTheme はテーマの切り替えと2回切り替えで元に戻ることを検証します。
func TestDashboard_ToggleTheme(t *testing.T) {
	t.Parallel()

	d := mountReady(t, returning(nil))

	assert.Equal(t, entity.ThemeDark, d.ToggleTheme())
	assert.Equal(t, entity.ThemeDark, d.Snapshot().Theme)
	assert.Equal(t, entity.ThemeLight, d.ToggleTheme())
}

// TestDashboard_EventsDuringLoad はロード中もウィジェットとテーマの操作を受け付けることを検証します。
func TestDashboard_EventsDuringLoad(t *testing.T) {
	t.Parallel()

	src, release := blocking(sampleSymbols())
	s := NewScreens(src, testConfig())
	t.Cleanup(s.Close)

	d, err := s.Mount()
	require.NoError(t, err)

	_, err = d.AddWidget(widgetentity.WidgetCrypto)
	require.NoError(t, err)
	d.ToggleTheme()

	close(release)
	assert.Eventually(t, func() bool {
		return d.Snapshot().Status == symbolusecase.StatusReady
	}, waitFor, tick)

	snap := d.Snapshot()
	assert.Equal(t, entity.ThemeDark, snap.Theme)
	assert.Len(t, snap.Widgets, 3)
	assert.Len(t, snap.Symbols, 4)
}

// TestDashboard_UnmountDiscardsLateResult はアンマウント後に届いた結果が反映されないことを検証します。
func TestDashboard_UnmountDiscardsLateResult(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	src := &mockSymbolSource{ListAllFunc: func(ctx context.Context) ([]symbolentity.Symbol, error) {
		close(started)
		<-release // ignores cancellation
		return sampleSymbols(), nil
	}}
	s := NewScreens(src, testConfig())

	d, err := s.Mount()
	require.NoError(t, err)
	<-started

	require.NoError(t, s.Unmount(d.ID()))
	close(release)
	d.Wait()

	snap := d.Snapshot()
	assert.Equal(t, symbolusecase.StatusLoading, snap.Status)
	assert.Empty(t, snap.Symbols)
}

// TestDashboard_UnmountCancelsFetch はアンマウントで進行中の取得がキャンセルされることを検証します。
func TestDashboard_UnmountCancelsFetch(t *testing.T) {
	t.Parallel()

	cancelled := make(chan error, 1)
	src := &mockSymbolSource{ListAllFunc: func(ctx context.Context) ([]symbolentity.Symbol, error) {
		<-ctx.Done()
		cancelled <- ctx.Err()
		return nil, ctx.Err()
	}}
	s := NewScreens(src, testConfig())

	d, err := s.Mount()
	require.NoError(t, err)
	require.NoError(t, s.Unmount(d.ID()))

	select {
	case err := <-cancelled:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(waitFor):
		t.Fatal("fetch was not cancelled")
	}
	d.Wait()
}
