// Package usecase implements the ordered widget collection of a dashboard.
package usecase

import "errors"

var (
	// ErrInvalidWidgetType is returned when a widget is added with an empty type.
	ErrInvalidWidgetType = errors.New("invalid widget type")

	// ErrWidgetIndexOutOfRange is returned when a reorder index is outside the collection.
	ErrWidgetIndexOutOfRange = errors.New("widget index out of range")
)
