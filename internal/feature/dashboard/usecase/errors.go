// Package usecase はダッシュボード画面の状態とイベント処理を実装します。
package usecase

import "errors"

var (
	// ErrDashboardNotFound is returned when no mounted dashboard has the given id.
	ErrDashboardNotFound = errors.New("dashboard not found")

	// ErrTooManyDashboards is returned by Mount when the screen limit is reached.
	ErrTooManyDashboards = errors.New("too many dashboards mounted")

	// ErrScreensClosed is returned by Mount after Close.
	ErrScreensClosed = errors.New("dashboards are shutting down")
)
