package usecase

import (
	"context"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
)

// SymbolUsecase provides a stateless view of the symbol source through the display pipeline.
type SymbolUsecase struct {
	source   SymbolSource
	pipeline *Pipeline
}

// NewSymbolUsecase creates a new SymbolUsecase with the given source and pipeline.
func NewSymbolUsecase(source SymbolSource, pipeline *Pipeline) *SymbolUsecase {
	return &SymbolUsecase{source: source, pipeline: pipeline}
}

// ListSymbols returns the display list for state.
// With an empty state the first InitialDisplayLimit symbols are returned,
// otherwise the pipeline result.
func (u *SymbolUsecase) ListSymbols(ctx context.Context, state entity.DisplayState) ([]entity.Symbol, error) {
	all, err := u.source.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if state.IsZero() {
		return truncate(all, InitialDisplayLimit), nil
	}
	return u.pipeline.Apply(all, state), nil
}
