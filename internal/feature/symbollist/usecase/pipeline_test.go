package usecase_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/symbollist/usecase"
)

func price(v float64) *float64 { return &v }

func codes(symbols []entity.Symbol) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, s.Code)
	}
	return out
}

func bare(cs ...string) []entity.Symbol {
	out := make([]entity.Symbol, 0, len(cs))
	for _, c := range cs {
		out = append(out, entity.Symbol{Code: c})
	}
	return out
}

// sampleSymbols は価格付き・価格なしの銘柄を混在させたテスト用データです。
func sampleSymbols() []entity.Symbol {
	return []entity.Symbol{
		{Code: "MSFT", Price: price(410.5)},
		{Code: "AAPL", Price: price(189.2)},
		{Code: "amd", Price: price(160)},
		{Code: "GOOG", Price: price(140.1)},
		{Code: "ZZZX"},
		{Code: "AMZN", Price: price(178.3)},
		{Code: "BRK.A", Price: price(600000)},
	}
}

// TestPipeline_Filter_EmptySearchIsNoop は空の検索語で全件がそのまま返ることを検証します。
func TestPipeline_Filter_EmptySearchIsNoop(t *testing.T) {
	t.Parallel()

	p := usecase.NewPipeline(language.English, 0)
	all := sampleSymbols()

	got := p.Filter(all, entity.DisplayState{})

	assert.Equal(t, all, got)
}

// TestPipeline_Filter_Search は検索語が大文字小文字を区別しない部分一致で適用されることを検証します。
func TestPipeline_Filter_Search(t *testing.T) {
	t.Parallel()

	p := usecase.NewPipeline(language.English, 0)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "upper case term", term: "AM", want: []string{"amd", "AMZN"}},
		{name: "lower case term", term: "aa", want: []string{"AAPL"}},
		{name: "mixed case term", term: "gO", want: []string{"GOOG"}},
		{name: "no match", term: "QQQ", want: []string{}},
		{name: "dot in code", term: ".a", want: []string{"BRK.A"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.Filter(sampleSymbols(), entity.DisplayState{SearchTerm: tt.term})

			assert.Equal(t, tt.want, codes(got))
			for _, s := range got {
				assert.Contains(t, strings.ToUpper(s.Code), strings.ToUpper(tt.term))
			}
		})
	}
}

// TestPipeline_Filter_PriceCeiling は価格上限以下の銘柄のみが残り、価格不明の銘柄は除外されることを検証します。
func TestPipeline_Filter_PriceCeiling(t *testing.T) {
	t.Parallel()

	p := usecase.NewPipeline(language.English, 0)

	tests := []struct {
		name    string
		ceiling float64
		want    []string
	}{
		{name: "ceiling includes equal price", ceiling: 160, want: []string{"amd", "GOOG"}},
		{name: "ceiling below all", ceiling: 1, want: []string{}},
		{name: "ceiling above all priced", ceiling: 1e9, want: []string{"MSFT", "AAPL", "amd", "GOOG", "AMZN", "BRK.A"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.Filter(sampleSymbols(), entity.DisplayState{PriceCeiling: price(tt.ceiling)})

			assert.Equal(t, tt.want, codes(got))
			for _, s := range got {
				require.NotNil(t, s.Price)
				assert.LessOrEqual(t, *s.Price, tt.ceiling)
			}
		})
	}
}

// TestPipeline_Filter_SortByName は名前順がロケール比較で非減少になることを検証します。
func TestPipeline_Filter_SortByName(t *testing.T) {
	t.Parallel()

	p := usecase.NewPipeline(language.English, 0)

	got := p.Filter(sampleSymbols(), entity.DisplayState{SortKey: entity.SortByName})

	assert.Equal(t, []string{"AAPL", "amd", "AMZN", "BRK.A", "GOOG", "MSFT", "ZZZX"}, codes(got))

	c := collate.New(language.English)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, c.CompareString(got[i-1].Code, got[i].Code), 0)
	}
}

// TestPipeline_Filter_SortByPrice は価格順が非減少になり、価格不明の銘柄が末尾に来ることを検証します。
func TestPipeline_Filter_SortByPrice(t *testing.T) {
	t.Parallel()

	p := usecase.NewPipeline(language.English, 0)

	got := p.Filter(sampleSymbols(), entity.DisplayState{SortKey: entity.SortByPrice})

	assert.Equal(t, []string{"GOOG", "amd", "AMZN", "AAPL", "MSFT", "BRK.A", "ZZZX"}, codes(got))
	for i := 1; i < len(got)-1; i++ {
		assert.LessOrEqual(t, *got[i-1].Price, *got[i].Price)
	}
	assert.Nil(t, got[len(got)-1].Price)
}

// TestPipeline_Filter_UnknownSortPreservesOrder は未知の並び替えキーで入力順が維持されることを検証します。
func TestPipeline_Filter_UnknownSortPreservesOrder(t *testing.T) {
	t.Parallel()

	p := usecase.NewPipeline(language.English, 0)

	got := p.Filter(sampleSymbols(), entity.DisplayState{SortKey: entity.SortKey("volume")})

	assert.Equal(t, codes(sampleSymbols()), codes(got))
}

// TestPipeline_Filter_DoesNotMutateInput は入力スライスが並び替えで変更されないことを検証します。
func TestPipeline_Filter_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	p := usecase.NewPipeline(language.English, 0)
	all := sampleSymbols()

	_ = p.Filter(all, entity.DisplayState{SortKey: entity.SortByName})

	assert.Equal(t, sampleSymbols(), all)
}

// TestPipeline_Apply_Truncates は結果がパイプラインの上限件数に切り詰められることを検証します。
func TestPipeline_Apply_Truncates(t *testing.T) {
	t.Parallel()

	all := make([]entity.Symbol, 0, 30)
	for i := 0; i < 30; i++ {
		all = append(all, entity.Symbol{Code: fmt.Sprintf("S%02d", i)})
	}

	p := usecase.NewPipeline(language.English, 0)
	assert.Equal(t, usecase.InteractiveDisplayLimit, p.Limit())

	got := p.Apply(all, entity.DisplayState{SearchTerm: "S"})
	assert.Len(t, got, usecase.InteractiveDisplayLimit)
	assert.Equal(t, "S00", got[0].Code)

	custom := usecase.NewPipeline(language.English, 3)
	assert.Len(t, custom.Apply(all, entity.DisplayState{}), 3)
}

// TestPipeline_Apply_Scenario は3銘柄から"A"で検索した場合の結果を検証します。
func TestPipeline_Apply_Scenario(t *testing.T) {
	t.Parallel()

	p := usecase.NewPipeline(language.English, 0)

	got := p.Apply(bare("AAPL", "AMZN", "GOOG"), entity.DisplayState{SearchTerm: "A"})

	assert.Equal(t, []string{"AAPL", "AMZN"}, codes(got))
}

// TestPipeline_Apply_ClearedCeilingReverts は価格上限をクリアすると検索結果全体に戻ることを検証します。
func TestPipeline_Apply_ClearedCeilingReverts(t *testing.T) {
	t.Parallel()

	p := usecase.NewPipeline(language.English, 0)
	all := sampleSymbols()

	filtered := p.Apply(all, usecase.DisplayStateFrom("A", "170", ""))
	assert.Equal(t, []string{"amd"}, codes(filtered))

	cleared := p.Apply(all, usecase.DisplayStateFrom("A", "", ""))
	assert.Equal(t, []string{"AAPL", "amd", "AMZN", "BRK.A"}, codes(cleared))
}

func TestParsePriceCeiling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{name: "integer", input: "150", want: price(150)},
		{name: "decimal with spaces", input: " 99.5 ", want: price(99.5)},
		{name: "empty disables filter", input: "", want: nil},
		{name: "non numeric disables filter", input: "abc", want: nil},
		{name: "numeric prefix is not a number", input: "12abc", want: nil},
		{name: "NaN disables filter", input: "NaN", want: nil},
		{name: "infinity disables filter", input: "Inf", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, usecase.ParsePriceCeiling(tt.input))
		})
	}
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, entity.SortByName, usecase.ParseSortKey("name"))
	assert.Equal(t, entity.SortByName, usecase.ParseSortKey(" Name "))
	assert.Equal(t, entity.SortByPrice, usecase.ParseSortKey("PRICE"))
	assert.Equal(t, entity.SortNone, usecase.ParseSortKey(""))
	assert.Equal(t, entity.SortNone, usecase.ParseSortKey("nam"))
}
