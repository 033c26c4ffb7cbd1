package database

import "time"

const (
	ProfitLossProfit = "profit"
	ProfitLossLoss   = "loss"
)

// StockDetail is one persisted minute bar. Rows are append-only: never
// updated or deleted once inserted.
type StockDetail struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Ticker           string    `json:"ticker" gorm:"index:idx_stock_details_ticker;size:20;not null"`
	Date             time.Time `json:"date" gorm:"type:date;not null"`
	Time             string    `json:"time" gorm:"type:time;not null"`
	OpenPrice        float64   `json:"openPrice" gorm:"type:decimal(20,4)"`
	ClosePrice       float64   `json:"closePrice" gorm:"type:decimal(20,4)"`
	Volume           int64     `json:"volume"`
	PercentageChange float64   `json:"percentageChange" gorm:"type:decimal(10,2)"`
	ProfitLoss       string    `json:"profitLoss" gorm:"type:enum('profit','loss')"`
	CreatedAt        time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (StockDetail) TableName() string {
	return "stock_details"
}
