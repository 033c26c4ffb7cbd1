package database

import "time"

// ProfitStatistic is the derived per-ticker aggregate, recomputed from the
// full stock_details history on every run and upserted by ticker.
type ProfitStatistic struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Ticker            string    `json:"ticker" gorm:"uniqueIndex:idx_profit_statistics_ticker;size:20;not null"`
	TotalDays         int64     `json:"totalDays"`
	ProfitDays        int64     `json:"profitDays"`
	LossDays          int64     `json:"lossDays"`
	ProfitProbability float64   `json:"profitProbability" gorm:"type:decimal(10,2)"`
	LastCalculated    time.Time `json:"lastCalculated" gorm:"type:date"`
}

func (ProfitStatistic) TableName() string {
	return "profit_statistics"
}
