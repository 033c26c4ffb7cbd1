package services

import (
	"fmt"

	"stockanalytics/helpers"
	"stockanalytics/interfaces"
)

// StockAnalysisService runs the fetch-store-recompute pipeline over a list
// of tickers, strictly sequentially.
type StockAnalysisService struct {
	provider interfaces.MarketProvider
	recorder interfaces.StockRecorder
	logger   *helpers.FileLogger
}

func NewStockAnalysisService(provider interfaces.MarketProvider, recorder interfaces.StockRecorder,
	logger *helpers.FileLogger) *StockAnalysisService {

	return &StockAnalysisService{
		provider: provider,
		recorder: recorder,
		logger:   logger,
	}
}

// AnalyzeStocks fetches and stores each ticker in turn, then recomputes the
// profit statistics once. Tickers without data are skipped. A persistence
// failure aborts the run; bars committed for earlier tickers stay committed.
func (sas *StockAnalysisService) AnalyzeStocks(tickers []string) (bool, string) {
	for _, ticker := range tickers {
		data := sas.provider.GetStockData(ticker)
		if data == nil {
			continue
		}
		if err := sas.recorder.SaveStockDetails(data); err != nil {
			errorMsg := fmt.Sprintf("Analysis failed: %s", err)
			sas.logger.Errorln(errorMsg)
			return false, errorMsg
		}
	}

	if err := sas.recorder.UpdateProfitStatistics(); err != nil {
		errorMsg := fmt.Sprintf("Analysis failed: %s", err)
		sas.logger.Errorln(errorMsg)
		return false, errorMsg
	}

	return true, "Analysis completed successfully"
}
