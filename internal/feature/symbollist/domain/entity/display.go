package entity

// SortKey は表示リストの並び替えキーです。
type SortKey string

const (
	// SortNone は入力順を維持します。
	SortNone SortKey = ""
	// SortByName は銘柄コードのロケール順で並び替えます。
	SortByName SortKey = "name"
	// SortByPrice は価格の昇順で並び替えます。
	SortByPrice SortKey = "price"
)

// DisplayState は表示リストを導出するための検索語・価格上限・並び替えキーの組です。
// PriceCeilingがnilの場合、価格フィルタは適用されません。
type DisplayState struct {
	SearchTerm   string
	PriceCeiling *float64
	SortKey      SortKey
}

// IsZero reports whether the state applies no search, filter or sort.
func (d DisplayState) IsZero() bool {
	return d.SearchTerm == "" && d.PriceCeiling == nil && d.SortKey == SortNone
}
