package helpers

import "strings"

// ParseTickerSelection turns the raw interactive input into the ticker list
// to analyze. "all" (any case) expands to the full set of known tickers;
// anything else is split on commas, trimmed and uppercased. Blank entries
// are dropped.
func ParseTickerSelection(input string, available []string) []string {
	if strings.ToLower(strings.TrimSpace(input)) == "all" {
		return available
	}

	var tickers []string
	for _, ticker := range strings.Split(input, ",") {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if ticker != "" {
			tickers = append(tickers, ticker)
		}
	}
	return tickers
}
