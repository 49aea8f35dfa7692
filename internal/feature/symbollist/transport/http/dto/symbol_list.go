// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

import "stock_dashboard/internal/feature/symbollist/domain/entity"

// SymbolItem represents a symbol in the API response.
// Price is omitted when the source did not report one.
type SymbolItem struct {
	Symbol string   `json:"symbol"`
	Price  *float64 `json:"price,omitempty"`
}

// ListQuery is the query string of GET /symbols.
type ListQuery struct {
	Search string `form:"search"`
	Price  string `form:"price"`
	Sort   string `form:"sort"`
}

// FromSymbols converts domain symbols into response items. It never returns nil.
func FromSymbols(symbols []entity.Symbol) []SymbolItem {
	out := make([]SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, SymbolItem{Symbol: s.Code, Price: s.Price})
	}
	return out
}
