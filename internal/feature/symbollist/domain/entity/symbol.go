// Package entity defines the domain models for the symbollist feature.
package entity

// Symbol represents a tradable instrument identifier.
// Price holds the last known price and is nil when the source did not report one.
type Symbol struct {
	Code  string
	Price *float64
}

// HasPrice reports whether the symbol carries a price.
func (s Symbol) HasPrice() bool {
	return s.Price != nil
}
