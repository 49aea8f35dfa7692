package entity

// Filters は検索・価格・並び替えの各入力欄に入力されたままの文字列です。
// 表示条件(DisplayState)はここから導出します。
type Filters struct {
	Search string
	Price  string
	Sort   string
}

// FilterUpdate は入力欄の部分更新です。nilのフィールドは変更しません。
type FilterUpdate struct {
	Search *string
	Price  *string
	Sort   *string
}

// Apply returns f with the non-nil fields of u applied.
func (f Filters) Apply(u FilterUpdate) Filters {
	if u.Search != nil {
		f.Search = *u.Search
	}
	if u.Price != nil {
		f.Price = *u.Price
	}
	if u.Sort != nil {
		f.Sort = *u.Sort
	}
	return f
}
