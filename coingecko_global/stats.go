package coingecko_global

import (
	"fmt"
	"strconv"

	"github.com/status-im/market-aggregator/interfaces"
)

// Stat is one line of the market overview
type Stat struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// FormatStats renders the market overview shown next to the coin lists
func FormatStats(data *interfaces.GlobalMarketData) []Stat {
	if data == nil {
		return []Stat{}
	}

	return []Stat{
		{Title: "Market Cap", Value: FormatCompactUSD(data.TotalMarketCap["usd"])},
		{Title: "24h Volume", Value: FormatCompactUSD(data.TotalVolume["usd"])},
		{Title: "BTC Dominance", Value: fmt.Sprintf("%.2f%%", data.MarketCapPercentage["btc"])},
		{Title: "ETH Dominance", Value: fmt.Sprintf("%.2f%%", data.MarketCapPercentage["eth"])},
		{Title: "24h Change", Value: FormatPercentChange(data.MarketCapChangePercentage24hUsd)},
		{Title: "Active Assets", Value: groupThousands(data.ActiveCryptocurrencies)},
	}
}

// FormatCompactUSD abbreviates large dollar amounts: $1.20T, $85.30B, $12.00M
func FormatCompactUSD(value float64) string {
	switch abs := absFloat(value); {
	case abs >= 1e12:
		return fmt.Sprintf("$%.2fT", value/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", value/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", value/1e6)
	default:
		return fmt.Sprintf("$%.2f", value)
	}
}

// FormatPercentChange renders a signed percentage with two decimals
func FormatPercentChange(value float64) string {
	if value >= 0 {
		return fmt.Sprintf("+%.2f%%", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// groupThousands formats 12345 as 12,345
func groupThousands(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}

	var out []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return sign + string(out)
}
