package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	database "stockanalytics/database/models"
)

func TestDisplayStockStatsRendersTable(t *testing.T) {
	recorder := &recorderMock{stats: []database.ProfitStatistic{
		{Ticker: "AAPL", TotalDays: 10, ProfitDays: 7, LossDays: 3, ProfitProbability: 70.0,
			LastCalculated: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Ticker: "NFLX", TotalDays: 9, ProfitDays: 3, LossDays: 6, ProfitProbability: 33.33,
			LastCalculated: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}}

	var out bytes.Buffer
	reporter := NewStatsReporterService(recorder, &out)
	assert.Nil(t, reporter.DisplayStockStats())

	rendered := out.String()
	assert.Contains(t, rendered, "Stock Performance Statistics:")
	assert.Contains(t, rendered, strings.Repeat("=", 80))
	assert.Contains(t, rendered, "Ticker")
	assert.Contains(t, rendered, "Profit Probability")
	assert.Contains(t, rendered, "70.00%")
	assert.Contains(t, rendered, "33.33%")
	// recorder order (probability descending) is preserved
	assert.Less(t, strings.Index(rendered, "AAPL"), strings.Index(rendered, "NFLX"))
}

func TestDisplayStockStatsPropagatesReadError(t *testing.T) {
	recorder := &recorderMock{statsReadErr: errors.New("store unreachable")}

	var out bytes.Buffer
	reporter := NewStatsReporterService(recorder, &out)
	err := reporter.DisplayStockStats()
	assert.NotNil(t, err)
	assert.NotContains(t, out.String(), "Ticker")
}
