// Package dto defines data transfer objects for the dashboard HTTP API.
package dto

import (
	"stock_dashboard/internal/feature/dashboard/domain/entity"
	"stock_dashboard/internal/feature/dashboard/usecase"
	symboldto "stock_dashboard/internal/feature/symbollist/transport/http/dto"
	widgetdto "stock_dashboard/internal/feature/widgets/transport/http/dto"
)

// LoadErrorMessage is shown in place of the underlying fetch error.
const LoadErrorMessage = "failed to load stock symbols"

// FiltersRes echoes the raw filter inputs.
type FiltersRes struct {
	Search string `json:"search"`
	Price  string `json:"price"`
	Sort   string `json:"sort"`
}

// SnapshotRes is the full dashboard state returned by most endpoints.
type SnapshotRes struct {
	ID      string                 `json:"id"`
	Status  string                 `json:"status"`
	Error   string                 `json:"error,omitempty"`
	Theme   string                 `json:"theme"`
	Filters FiltersRes             `json:"filters"`
	Symbols []symboldto.SymbolItem `json:"symbols"`
	Widgets []widgetdto.WidgetItem `json:"widgets"`
}

// UpdateFiltersReq is a partial update of the filter inputs.
// Omitted fields keep their current value.
type UpdateFiltersReq struct {
	Search *string `json:"search"`
	Price  *string `json:"price"`
	Sort   *string `json:"sort"`
}

// ThemeRes is returned after toggling the theme.
type ThemeRes struct {
	Theme string `json:"theme"`
}

// LogoutRes names the screen to navigate to after logout.
type LogoutRes struct {
	NavigateTo string `json:"navigate_to"`
}

// ToFilterUpdate converts the request into a domain update.
func (r UpdateFiltersReq) ToFilterUpdate() entity.FilterUpdate {
	return entity.FilterUpdate{Search: r.Search, Price: r.Price, Sort: r.Sort}
}

// FromSnapshot converts a dashboard snapshot.
func FromSnapshot(s usecase.Snapshot) SnapshotRes {
	res := SnapshotRes{
		ID:     s.ID,
		Status: string(s.Status),
		Theme:  string(s.Theme),
		Filters: FiltersRes{
			Search: s.Filters.Search,
			Price:  s.Filters.Price,
			Sort:   s.Filters.Sort,
		},
		Symbols: symboldto.FromSymbols(s.Symbols),
		Widgets: widgetdto.FromWidgets(s.Widgets),
	}
	if s.Err != nil {
		res.Error = LoadErrorMessage
	}
	return res
}
