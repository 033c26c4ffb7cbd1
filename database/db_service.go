package database

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sdcoffey/big"
	str2duration "github.com/xhit/go-str2duration/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	database "stockanalytics/database/models"
	"stockanalytics/helpers"
	"stockanalytics/models"
)

const maxConnectRetries = 3

const defaultRetryDelay = 5 * time.Second

// Aggregate recomputation, taken straight off stock_details on every run.
// The unique key on ticker makes the INSERT an upsert.
const profitStatisticsQuery = `
	INSERT INTO profit_statistics
	(ticker, total_days, profit_days, loss_days, profit_probability, last_calculated)
	SELECT ticker,
	       COUNT(*) AS total_days,
	       SUM(CASE WHEN profit_loss = 'profit' THEN 1 ELSE 0 END) AS profit_days,
	       SUM(CASE WHEN profit_loss = 'loss' THEN 1 ELSE 0 END) AS loss_days,
	       (SUM(CASE WHEN profit_loss = 'profit' THEN 1 ELSE 0 END) / COUNT(*)) * 100 AS profit_probability,
	       CURDATE() AS last_calculated
	FROM stock_details
	GROUP BY ticker
	ON DUPLICATE KEY UPDATE
	    total_days = VALUES(total_days),
	    profit_days = VALUES(profit_days),
	    loss_days = VALUES(loss_days),
	    profit_probability = VALUES(profit_probability),
	    last_calculated = VALUES(last_calculated)`

type DBService struct {
	DB         *gorm.DB
	logger     *helpers.FileLogger
	open       func() (*gorm.DB, error)
	retryDelay time.Duration
}

func NewDBService(dbHost string, dbPort string, dbName string, dbUser string, dbPass string,
	logger *helpers.FileLogger) (*DBService, error) {

	dsn := dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?charset=utf8mb4&parseTime=True&loc=Local"
	open := func() (*gorm.DB, error) {
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}

	dbs := &DBService{
		logger:     logger,
		open:       open,
		retryDelay: retryDelayFromEnv(),
	}

	db, err := connectWithRetry(open, maxConnectRetries, dbs.retryDelay, logger)
	if err != nil {
		return nil, err
	}
	dbs.DB = db

	err = dbs.DB.AutoMigrate(&database.StockDetail{}, &database.ProfitStatistic{})
	if err != nil {
		return nil, err
	}

	return dbs, nil
}

func retryDelayFromEnv() time.Duration {
	if value := os.Getenv("DB_RETRY_DELAY"); value != "" {
		if delay, err := str2duration.ParseDuration(value); err == nil {
			return delay
		}
	}
	return defaultRetryDelay
}

func connectWithRetry(open func() (*gorm.DB, error), maxRetries int, retryDelay time.Duration,
	logger *helpers.FileLogger) (*gorm.DB, error) {

	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err := open()
		if err == nil {
			logger.Infoln("Successfully connected to MySQL database")
			return db, nil
		}
		logger.Errorln(fmt.Sprintf("Attempt %d failed: %s", attempt, err))
		if attempt < maxRetries {
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to database after maximum retries")
}

// healthy pings the underlying connection. A stale handle is reacquired
// through the same retry path as the initial connect.
func (dbs *DBService) healthy() bool {
	if dbs.DB == nil {
		return false
	}
	sqlDB, err := dbs.DB.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

func (dbs *DBService) ensureConnection() error {
	if dbs.healthy() {
		return nil
	}
	db, err := connectWithRetry(dbs.open, maxConnectRetries, dbs.retryDelay, dbs.logger)
	if err != nil {
		return err
	}
	dbs.DB = db
	return nil
}

// PercentageChange is the open-to-close move as a percentage, rounded to
// two decimal places.
func PercentageChange(openPrice big.Decimal, closePrice big.Decimal) float64 {
	change := closePrice.Sub(openPrice).Div(openPrice).Mul(big.NewDecimal(100))
	return math.Round(change.Float()*100) / 100
}

// ClassifyProfitLoss marks a bar as profit only on a strict close > open.
// A flat bar (close == open) counts as a loss.
func ClassifyProfitLoss(openPrice big.Decimal, closePrice big.Decimal) string {
	if closePrice.GT(openPrice) {
		return database.ProfitLossProfit
	}
	return database.ProfitLossLoss
}

// SaveStockDetails inserts every bar of a fetch result in a single
// transaction. Any failing row rolls back the whole batch.
func (dbs *DBService) SaveStockDetails(data *models.StockData) error {
	if err := dbs.ensureConnection(); err != nil {
		return err
	}

	err := dbs.DB.Transaction(func(tx *gorm.DB) error {
		for _, bar := range data.Bars {
			detail := database.StockDetail{
				Ticker:           data.Ticker,
				Date:             bar.Date,
				Time:             bar.Time,
				OpenPrice:        bar.Open.Float(),
				ClosePrice:       bar.Close.Float(),
				Volume:           bar.Volume,
				PercentageChange: PercentageChange(bar.Open, bar.Close),
				ProfitLoss:       ClassifyProfitLoss(bar.Open, bar.Close),
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		dbs.logger.Errorln(fmt.Sprintf("Error saving stock details for %s: %s", data.Ticker, err))
		return fmt.Errorf("saving stock details for %s: %w", data.Ticker, err)
	}

	dbs.logger.Infoln(fmt.Sprintf("Successfully saved stock details for %s", data.Ticker))
	return nil
}

// UpdateProfitStatistics re-derives the per-ticker aggregates from the full
// stock_details history and upserts them by ticker.
func (dbs *DBService) UpdateProfitStatistics() error {
	if err := dbs.ensureConnection(); err != nil {
		return err
	}

	err := dbs.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Exec(profitStatisticsQuery).Error
	})
	if err != nil {
		dbs.logger.Errorln(fmt.Sprintf("Error updating profit statistics: %s", err))
		return fmt.Errorf("updating profit statistics: %w", err)
	}

	dbs.logger.Infoln("Successfully updated profit statistics")
	return nil
}

// DistinctTickers lists every ticker ever stored, for the "all" selection.
func (dbs *DBService) DistinctTickers() ([]string, error) {
	if err := dbs.ensureConnection(); err != nil {
		return nil, err
	}

	var tickers []string
	err := dbs.DB.Model(&database.StockDetail{}).Distinct("ticker").Order("ticker").Pluck("ticker", &tickers).Error
	if err != nil {
		return nil, fmt.Errorf("listing distinct tickers: %w", err)
	}
	return tickers, nil
}

// ProfitStatistics returns all aggregate rows, best probability first.
func (dbs *DBService) ProfitStatistics() ([]database.ProfitStatistic, error) {
	if err := dbs.ensureConnection(); err != nil {
		return nil, err
	}

	var stats []database.ProfitStatistic
	err := dbs.DB.Order("profit_probability DESC").Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("reading profit statistics: %w", err)
	}
	return stats, nil
}
