package interfaces

// GlobalMarketData aggregate market totals from /global
type GlobalMarketData struct {
	TotalMarketCap                  map[string]float64 `json:"total_market_cap"`
	TotalVolume                     map[string]float64 `json:"total_volume"`
	MarketCapPercentage             map[string]float64 `json:"market_cap_percentage"`
	MarketCapChangePercentage24hUsd float64            `json:"market_cap_change_percentage_24h_usd"`
	ActiveCryptocurrencies          int                `json:"active_cryptocurrencies"`
	Markets                         int                `json:"markets"`
}

// GlobalDataResponse is the /global envelope
type GlobalDataResponse struct {
	Data GlobalMarketData `json:"data"`
}
