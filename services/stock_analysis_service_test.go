package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sdcoffey/big"
	"github.com/stretchr/testify/assert"

	"stockanalytics/helpers"
	"stockanalytics/models"
)

var errSaveFailed = errors.New("insert failed")

func testLogger(t *testing.T) *helpers.FileLogger {
	t.Setenv("logFile", filepath.Join(t.TempDir(), "test.log"))
	t.Setenv("telegramOutput", "false")
	return helpers.NewFileLogger()
}

func stockData(ticker string) *models.StockData {
	return &models.StockData{
		Ticker: ticker,
		Bars: []models.PriceBar{
			{Time: "14:30:00", Open: big.NewDecimal(100), Close: big.NewDecimal(110), Volume: 5000},
		},
	}
}

func TestAnalyzeStocksSavesAndRecomputesOnce(t *testing.T) {
	provider := &providerMock{data: map[string]*models.StockData{
		"AAPL": stockData("AAPL"),
		"AMZN": stockData("AMZN"),
	}}
	recorder := &recorderMock{}
	service := NewStockAnalysisService(provider, recorder, testLogger(t))

	success, message := service.AnalyzeStocks([]string{"AAPL", "AMZN"})
	assert.True(t, success)
	assert.Equal(t, "Analysis completed successfully", message)
	assert.Equal(t, []string{"AAPL", "AMZN"}, recorder.saved)
	assert.Equal(t, 1, recorder.statsUpdates)
}

func TestAnalyzeStocksSkipsTickersWithoutData(t *testing.T) {
	provider := &providerMock{data: map[string]*models.StockData{
		"AAPL": stockData("AAPL"),
	}}
	recorder := &recorderMock{}
	service := NewStockAnalysisService(provider, recorder, testLogger(t))

	success, _ := service.AnalyzeStocks([]string{"XXXX", "AAPL"})
	assert.True(t, success)
	assert.Equal(t, []string{"AAPL"}, recorder.saved)
	assert.Equal(t, 1, recorder.statsUpdates)
}

func TestAnalyzeStocksAbortsOnSaveFailure(t *testing.T) {
	provider := &providerMock{data: map[string]*models.StockData{
		"AAPL": stockData("AAPL"),
		"AMZN": stockData("AMZN"),
		"NFLX": stockData("NFLX"),
	}}
	recorder := &recorderMock{failTicker: "AMZN"}
	service := NewStockAnalysisService(provider, recorder, testLogger(t))

	success, message := service.AnalyzeStocks([]string{"AAPL", "AMZN", "NFLX"})
	assert.False(t, success)
	assert.Contains(t, message, "Analysis failed:")
	assert.Contains(t, message, "insert failed")
	// earlier tickers stay committed, later ones are never attempted
	assert.Equal(t, []string{"AAPL"}, recorder.saved)
	assert.Equal(t, 0, recorder.statsUpdates)
}

func TestAnalyzeStocksFailsWhenRecomputeFails(t *testing.T) {
	provider := &providerMock{data: map[string]*models.StockData{
		"AAPL": stockData("AAPL"),
	}}
	recorder := &recorderMock{statsErr: errors.New("aggregation failed")}
	service := NewStockAnalysisService(provider, recorder, testLogger(t))

	success, message := service.AnalyzeStocks([]string{"AAPL"})
	assert.False(t, success)
	assert.Contains(t, message, "aggregation failed")
	assert.Equal(t, []string{"AAPL"}, recorder.saved)
}

func TestAnalyzeStocksEmptyRunStillRecomputes(t *testing.T) {
	provider := &providerMock{data: map[string]*models.StockData{}}
	recorder := &recorderMock{}
	service := NewStockAnalysisService(provider, recorder, testLogger(t))

	success, _ := service.AnalyzeStocks([]string{"XXXX"})
	assert.True(t, success)
	assert.Empty(t, recorder.saved)
	assert.Equal(t, 1, recorder.statsUpdates)
}
