package interfaces

import (
	database "stockanalytics/database/models"
	"stockanalytics/models"
)

// StockRecorder is the persistence surface the analysis and reporting
// services run against.
type StockRecorder interface {
	SaveStockDetails(data *models.StockData) error
	UpdateProfitStatistics() error
	DistinctTickers() ([]string, error)
	ProfitStatistics() ([]database.ProfitStatistic, error)
}
