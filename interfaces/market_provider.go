package interfaces

import (
	"stockanalytics/models"
)

// MarketProvider fetches the current trading day of minute bars for a
// ticker. A nil result means no data; provider failures are logged and
// collapsed to nil so one bad ticker cannot abort a batch.
type MarketProvider interface {
	GetStockData(ticker string) *models.StockData
}
