package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
)

// SymbolStore は銘柄を永続化するストアのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SymbolStore interface {
	// UpsertBatch は銘柄を銘柄コードをキーに一括で挿入（または更新）します。
	UpsertBatch(ctx context.Context, symbols []entity.Symbol) error
}

// SyncUsecase は外部APIから銘柄一覧を取得し、データベースに永続化するユースケースです。
type SyncUsecase struct {
	upstream SymbolSource
	store    SymbolStore
}

// NewSyncUsecase は新しい SyncUsecase を作成します。
func NewSyncUsecase(upstream SymbolSource, store SymbolStore) *SyncUsecase {
	return &SyncUsecase{upstream: upstream, store: store}
}

// Sync は上流から全銘柄を取得して保存し、保存件数を返します。
// 銘柄コードが空のレコードと重複コードは除外します（先勝ち）。
func (su *SyncUsecase) Sync(ctx context.Context) (int, error) {
	symbols, err := su.upstream.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSymbolFetch, err)
	}

	seen := make(map[string]struct{}, len(symbols))
	out := make([]entity.Symbol, 0, len(symbols))
	for _, s := range symbols {
		if s.Code == "" {
			continue
		}
		if _, ok := seen[s.Code]; ok {
			continue
		}
		seen[s.Code] = struct{}{}
		out = append(out, s)
	}

	if err := su.store.UpsertBatch(ctx, out); err != nil {
		return 0, fmt.Errorf("failed to store symbols: %w", err)
	}
	slog.Info("symbols synced", "fetched", len(symbols), "stored", len(out))
	return len(out), nil
}
