package entity

import "github.com/shopspring/decimal"

// amounts go over the wire as JSON numbers
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
