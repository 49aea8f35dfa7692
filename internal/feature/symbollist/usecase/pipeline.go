package usecase

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
)

const (
	// InitialDisplayLimit はロード直後に表示する銘柄数の上限です。
	InitialDisplayLimit = 20
	// InteractiveDisplayLimit は検索・フィルタ・並び替え操作後に表示する銘柄数の上限です。
	InteractiveDisplayLimit = 10
)

// Pipeline は銘柄の全件から表示リストを導出する純粋な変換です。
// 検索 → 価格フィルタ → 並び替え → 件数制限の順で適用します。
type Pipeline struct {
	tag   language.Tag
	limit int
}

// NewPipeline は指定ロケールで名前順比較を行うPipelineを生成します。
// limitが0以下の場合はInteractiveDisplayLimitを使用します。
func NewPipeline(tag language.Tag, limit int) *Pipeline {
	if limit <= 0 {
		limit = InteractiveDisplayLimit
	}
	return &Pipeline{tag: tag, limit: limit}
}

// Limit returns the truncation cap applied by Apply.
func (p *Pipeline) Limit() int {
	return p.limit
}

// Apply はFilterの結果をパイプラインの上限件数に切り詰めて返します。
func (p *Pipeline) Apply(all []entity.Symbol, state entity.DisplayState) []entity.Symbol {
	return truncate(p.Filter(all, state), p.limit)
}

// Filter は検索・価格フィルタ・並び替えを適用し、切り詰め前の結果を返します。
// 入力スライスは変更しません。
func (p *Pipeline) Filter(all []entity.Symbol, state entity.DisplayState) []entity.Symbol {
	term := strings.ToUpper(state.SearchTerm)

	out := make([]entity.Symbol, 0, len(all))
	for _, s := range all {
		if term != "" && !strings.Contains(strings.ToUpper(s.Code), term) {
			continue
		}
		if state.PriceCeiling != nil {
			// 価格不明の銘柄は上限が設定されている限り通過しない
			if !s.HasPrice() || *s.Price > *state.PriceCeiling {
				continue
			}
		}
		out = append(out, s)
	}

	switch state.SortKey {
	case entity.SortByName:
		// collate.Collator is not safe for concurrent use.
		c := collate.New(p.tag)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Code, out[j].Code) < 0
		})
	case entity.SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			switch {
			case !a.HasPrice():
				return false
			case !b.HasPrice():
				return true
			default:
				return *a.Price < *b.Price
			}
		})
	}
	return out
}

// ParsePriceCeiling は価格入力欄の文字列を上限値に変換します。
// 空文字・数値でない入力・NaN・無限大はnilを返し、価格フィルタを無効にします。
func ParsePriceCeiling(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseSortKey maps sort field input to a SortKey. Unknown input keeps input order.
func ParseSortKey(text string) entity.SortKey {
	switch entity.SortKey(strings.ToLower(strings.TrimSpace(text))) {
	case entity.SortByName:
		return entity.SortByName
	case entity.SortByPrice:
		return entity.SortByPrice
	default:
		return entity.SortNone
	}
}

// DisplayStateFrom は3つの入力欄の文字列からDisplayStateを組み立てます。
func DisplayStateFrom(search, price, sortText string) entity.DisplayState {
	return entity.DisplayState{
		SearchTerm:   search,
		PriceCeiling: ParsePriceCeiling(price),
		SortKey:      ParseSortKey(sortText),
	}
}

func truncate(in []entity.Symbol, n int) []entity.Symbol {
	if n >= 0 && len(in) > n {
		return in[:n]
	}
	return in
}
