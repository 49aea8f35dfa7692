// Package dto defines data transfer objects for widget requests and responses.
package dto

import "stock_dashboard/internal/feature/widgets/domain/entity"

// WidgetItem represents a widget in API responses.
type WidgetItem struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// AddWidgetReq is the request body for adding a widget.
type AddWidgetReq struct {
	Type string `json:"type" binding:"required"`
}

// ReorderReq is the request body for moving a widget.
// Pointers distinguish a missing index from index 0.
type ReorderReq struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// FromWidget converts a domain widget.
func FromWidget(w entity.Widget) WidgetItem {
	return WidgetItem{ID: w.ID, Type: string(w.Type)}
}

// FromWidgets converts domain widgets. It never returns nil.
func FromWidgets(ws []entity.Widget) []WidgetItem {
	out := make([]WidgetItem, 0, len(ws))
	for _, w := range ws {
		out = append(out, FromWidget(w))
	}
	return out
}
