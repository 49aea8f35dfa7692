// Package entity defines the domain models for the widgets feature.
package entity

// WidgetType はダッシュボードのパネル種別です。
// 種別は拡張可能なため文字列として扱い、既知の種別を定数で定義します。
type WidgetType string

const (
	WidgetStocks WidgetType = "Stocks"
	WidgetNews   WidgetType = "News"
	WidgetCrypto WidgetType = "Crypto"
)

// Widget はダッシュボード上の並べ替え可能な表示パネルです。
// ID はコレクション内で一意です。
type Widget struct {
	ID   int64
	Type WidgetType
}
