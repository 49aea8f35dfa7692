// Package dto defines data transfer objects for the IEX Cloud API responses.
package dto

// RefDataRecord is one element of the REF_DATA response array.
// Only the fields used by the dashboard are decoded.
type RefDataRecord struct {
	Symbol string   `json:"symbol"`
	Name   string   `json:"name,omitempty"`
	Price  *float64 `json:"price,omitempty"`
}
