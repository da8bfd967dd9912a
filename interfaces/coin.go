package interfaces

import "strings"

// Coin is a market snapshot in the /coins/markets response shape.
// Optional numbers are pointers; they are replaced, never written through,
// so copies of a Coin can share them safely.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`

	CurrentPrice *float64 `json:"current_price,omitempty"`
	MarketCap    *float64 `json:"market_cap,omitempty"`
	TotalVolume  *float64 `json:"total_volume,omitempty"`

	PriceChangePercentage1h  *float64 `json:"price_change_percentage_1h_in_currency,omitempty"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h_in_currency,omitempty"`
	PriceChangePercentage7d  *float64 `json:"price_change_percentage_7d_in_currency,omitempty"`
	// Plain 24h change, returned even without price_change_percentage
	PriceChange24hPlain *float64 `json:"price_change_percentage_24h,omitempty"`

	MarketCapRank *int           `json:"market_cap_rank,omitempty"`
	MaxSupply     *float64       `json:"max_supply,omitempty"`
	SparklineIn7d *SparklineIn7d `json:"sparkline_in_7d,omitempty"`
}

type SparklineIn7d struct {
	Price []float64 `json:"price"`
}

// PriceValue returns the price or 0 when missing
func (c Coin) PriceValue() float64 {
	return valueOrZero(c.CurrentPrice)
}

// Change24hValue returns the 24h change or 0 when missing
func (c Coin) Change24hValue() float64 {
	if c.PriceChangePercentage24h != nil {
		return *c.PriceChangePercentage24h
	}
	return valueOrZero(c.PriceChange24hPlain)
}

func (c Coin) VolumeValue() float64 {
	return valueOrZero(c.TotalVolume)
}

func (c Coin) MarketCapValue() float64 {
	return valueOrZero(c.MarketCap)
}

// Sparkline returns the 7 day price points, nil when missing
func (c Coin) Sparkline() []float64 {
	if c.SparklineIn7d == nil {
		return nil
	}
	return c.SparklineIn7d.Price
}

// WithPrice returns a copy of the coin with only the price replaced
func (c Coin) WithPrice(price float64) Coin {
	c.CurrentPrice = &price
	return c
}

// LowerSymbol is the key used to match live prices
func (c Coin) LowerSymbol() string {
	return strings.ToLower(c.Symbol)
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float64Ptr is a helper for building coins in code and tests
func Float64Ptr(v float64) *float64 {
	return &v
}

// FilterCoinsByIDs keeps coins whose id is in ids, preserving order of coins
func FilterCoinsByIDs(coins []Coin, ids []string) []Coin {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[strings.ToLower(id)] = struct{}{}
	}

	result := make([]Coin, 0, len(ids))
	for _, coin := range coins {
		if _, ok := wanted[strings.ToLower(coin.ID)]; ok {
			result = append(result, coin)
		}
	}
	return result
}

// CoinIDs returns the ids of coins in order
func CoinIDs(coins []Coin) []string {
	ids := make([]string, len(coins))
	for i, coin := range coins {
		ids[i] = coin.ID
	}
	return ids
}
