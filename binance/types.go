package binance

import (
	"encoding/json"
)

// Quote is the latest ticker data of one base asset
type Quote struct {
	Price            float64 `json:"price"`
	PercentChange24h float64 `json:"percent_change_24h"`
	Volume24h        float64 `json:"volume_24h"`
}

// Ticker represents a Binance WebSocket 24hr ticker message
type Ticker struct {
	EventType          string      `json:"e"` // Event type
	EventTime          int64       `json:"E"` // Event time
	Symbol             string      `json:"s"` // Symbol
	PriceChange        json.Number `json:"p"` // Price change
	PriceChangePercent json.Number `json:"P"` // Price change percent
	LastPrice          json.Number `json:"c"` // Last price
	Volume24h          json.Number `json:"v"` // Total traded base asset volume
	OpenPrice          json.Number `json:"o"` // Open price
	HighPrice          json.Number `json:"h"` // High price
	LowPrice           json.Number `json:"l"` // Low price
	QuoteVolume        json.Number `json:"q"` // Quote asset volume
}

// Kline rows are positional arrays; the close price is a string at index 4
const klineCloseIndex = 4
