package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"stockanalytics/database"
	"stockanalytics/helpers"
	"stockanalytics/providers/yahoo"
	"stockanalytics/services"
)

const databaseName = "StockAnalytics"

func init() {
	cwd, _ := os.Getwd()
	// Missing conf.env is fine, the process environment may carry everything.
	_ = godotenv.Load(cwd + "/conf.env")
}

func main() {
	logger := helpers.NewFileLogger()

	app := &cli.App{
		Name:  "stockanalytics",
		Usage: "fetch intraday stock prices, store them and report per-ticker profit statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tickers",
				Usage: "comma-separated tickers, or 'all' (skips the interactive prompt)",
			},
		},
		Action: func(c *cli.Context) error {
			return runAnalysis(c, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "print the current profit statistics table without fetching",
				Action: func(c *cli.Context) error {
					return runStats(logger)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorln(err)
		os.Exit(1)
	}
}

func getenv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func newDBService(logger *helpers.FileLogger) (*database.DBService, error) {
	return database.NewDBService(
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "3306"),
		databaseName,
		getenv("DB_USER", "root"),
		getenv("DB_PASS", "changeme"), // placeholder fallback, set DB_PASS in conf.env
		logger,
	)
}

func runAnalysis(c *cli.Context, logger *helpers.FileLogger) error {
	databaseService, err := newDBService(logger)
	if err != nil {
		return err
	}

	availableStocks, err := databaseService.DistinctTickers()
	if err != nil {
		return err
	}
	fmt.Println("Available stocks:", strings.Join(availableStocks, ", "))

	selection := c.String("tickers")
	if selection == "" {
		fmt.Print("\nEnter stock tickers to analyze (comma-separated) or 'all' for all stocks: ")
		reader := bufio.NewReader(os.Stdin)
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("reading ticker selection: %w", readErr)
		}
		// EOF with text (piped input without a trailing newline) is valid
		selection = line
	}

	tickers := helpers.ParseTickerSelection(selection, availableStocks)
	if len(tickers) == 0 {
		return fmt.Errorf("no tickers selected")
	}

	provider := yahoo.NewYahooService(logger)
	analysisService := services.NewStockAnalysisService(provider, databaseService, logger)
	success, message := analysisService.AnalyzeStocks(tickers)
	fmt.Println(message)
	if !success {
		return cli.Exit("", 1)
	}

	reporter := services.NewStatsReporterService(databaseService, os.Stdout)
	return reporter.DisplayStockStats()
}

func runStats(logger *helpers.FileLogger) error {
	databaseService, err := newDBService(logger)
	if err != nil {
		return err
	}

	reporter := services.NewStatsReporterService(databaseService, os.Stdout)
	return reporter.DisplayStockStats()
}
