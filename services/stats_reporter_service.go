package services

import (
	"fmt"
	"io"
	"strings"

	"stockanalytics/interfaces"
)

// StatsReporterService renders the profit statistics table. Read-only.
type StatsReporterService struct {
	recorder interfaces.StockRecorder
	out      io.Writer
}

func NewStatsReporterService(recorder interfaces.StockRecorder, out io.Writer) *StatsReporterService {
	return &StatsReporterService{
		recorder: recorder,
		out:      out,
	}
}

// DisplayStockStats prints every ProfitStatistic row as a fixed-width
// table, ordered by profit probability descending.
func (srs *StatsReporterService) DisplayStockStats() error {
	stats, err := srs.recorder.ProfitStatistics()
	if err != nil {
		return err
	}

	fmt.Fprintf(srs.out, "\nStock Performance Statistics:\n")
	fmt.Fprintln(srs.out, strings.Repeat("=", 80))
	fmt.Fprintf(srs.out, "%-10s %-12s %-12s %-12s %-15s\n",
		"Ticker", "Total Days", "Profit Days", "Loss Days", "Profit Probability")
	fmt.Fprintln(srs.out, strings.Repeat("-", 80))

	for _, stat := range stats {
		fmt.Fprintf(srs.out, "%-10s %-12d %-12d %-12d %.2f%%\n",
			stat.Ticker, stat.TotalDays, stat.ProfitDays, stat.LossDays, stat.ProfitProbability)
	}

	return nil
}
