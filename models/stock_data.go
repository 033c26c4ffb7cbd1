package models

import (
	"time"

	"github.com/sdcoffey/big"
)

// PriceBar is a single one-minute price observation, with the bar's
// timestamp already split into its calendar date and time-of-day parts.
type PriceBar struct {
	Date   time.Time
	Time   string
	Open   big.Decimal
	Close  big.Decimal
	Volume int64
}

// StockData is the result of fetching one trading day of minute bars for a
// ticker. A nil *StockData means the provider had no data for the ticker;
// callers must treat nil as "skip", never as an error.
type StockData struct {
	Ticker string
	Bars   []PriceBar
}
