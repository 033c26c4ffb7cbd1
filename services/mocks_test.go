package services

import (
	database "stockanalytics/database/models"
	"stockanalytics/models"
)

type providerMock struct {
	data map[string]*models.StockData
}

func (pm *providerMock) GetStockData(ticker string) *models.StockData {
	return pm.data[ticker]
}

type recorderMock struct {
	saved        []string
	failTicker   string
	statsUpdates int
	statsErr     error
	stats        []database.ProfitStatistic
	statsReadErr error
}

func (rm *recorderMock) SaveStockDetails(data *models.StockData) error {
	if rm.failTicker != "" && data.Ticker == rm.failTicker {
		return errSaveFailed
	}
	rm.saved = append(rm.saved, data.Ticker)
	return nil
}

func (rm *recorderMock) UpdateProfitStatistics() error {
	rm.statsUpdates++
	return rm.statsErr
}

func (rm *recorderMock) DistinctTickers() ([]string, error) {
	return rm.saved, nil
}

func (rm *recorderMock) ProfitStatistics() ([]database.ProfitStatistic, error) {
	return rm.stats, rm.statsReadErr
}
