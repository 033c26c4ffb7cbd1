package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"

	"stockanalytics/helpers"
	"stockanalytics/models"
)

// YahooService fetches minute bars from the Yahoo Finance chart API.
type YahooService struct {
	client  *http.Client
	baseURL string
	logger  *helpers.FileLogger
}

func NewYahooService(logger *helpers.FileLogger) *YahooService {
	return &YahooService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://query1.finance.yahoo.com",
		logger:  logger,
	}
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// GetStockData returns the current trading day of 1-minute bars for the
// ticker, or nil when the provider has nothing. Transport and provider
// errors are logged and also collapse to nil: a failed ticker is treated
// exactly like a ticker with no data.
func (ys *YahooService) GetStockData(ticker string) *models.StockData {
	series, err := ys.fetchChart(ticker, "1m", "1d")
	if err != nil {
		ys.logger.Errorln(fmt.Sprintf("Error fetching data for %s: %s", ticker, err))
		return nil
	}
	if len(series.Candles) == 0 {
		return nil
	}

	data := &models.StockData{Ticker: ticker}
	for _, candle := range series.Candles {
		start := candle.Period.Start
		data.Bars = append(data.Bars, models.PriceBar{
			Date:   time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
			Time:   start.Format("15:04:05"),
			Open:   candle.OpenPrice,
			Close:  candle.ClosePrice,
			Volume: int64(candle.Volume.Float()),
		})
	}
	return data
}

func (ys *YahooService) fetchChart(ticker string, interval string, rng string) (*techan.TimeSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		ys.baseURL, url.PathEscape(ticker), interval, rng)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := ys.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}

	series := techan.NewTimeSeries()
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return series, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: malformed chart, timestamps without quote data")
	}
	quote := result.Indicators.Quote[0]
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue // quote arrays shorter than the timestamp list
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 || c == 0 {
			continue // null bars (halts, holidays etc.); a zero open also has no percentage change
		}
		candle := techan.NewCandle(techan.NewTimePeriod(time.Unix(ts, 0), time.Minute))
		candle.OpenPrice = big.NewDecimal(o)
		candle.MaxPrice = big.NewDecimal(h)
		candle.MinPrice = big.NewDecimal(l)
		candle.ClosePrice = big.NewDecimal(c)
		candle.Volume = big.NewDecimal(toFloat(quote.Volume[i]))
		series.AddCandle(candle)
	}

	return series, nil
}
