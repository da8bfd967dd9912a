package coinbase

// supportedPairs are the spot pairs quoted without probing Coinbase
var supportedPairs = map[string]struct{}{
	"BTC-USD": {}, "ETH-USD": {}, "USDT-USD": {}, "XRP-USD": {}, "BNB-USD": {},
	"USDC-USD": {}, "SOL-USD": {}, "DOGE-USD": {}, "ADA-USD": {}, "TRX-USD": {},
	"WBTC-USD": {}, "WETH-USD": {}, "WEETH-USD": {}, "UNI-USD": {}, "DAI-USD": {},
	"APT-USD": {}, "TON-USD": {}, "LINK-USD": {}, "XLM-USD": {}, "WSTETH-USD": {},
	"AVAX-USD": {}, "SUI-USD": {}, "SHIB-USD": {}, "HBAR-USD": {}, "LTC-USD": {},
	"OM-USD": {}, "DOT-USD": {}, "BCH-USD": {}, "SUSDE-USD": {}, "AAVE-USD": {},
	"ATOM-USD": {}, "CRO-USD": {}, "NEAR-USD": {}, "PEPE-USD": {}, "OKB-USD": {},
	"CBBTC-USD": {}, "GT-USD": {},
}

// IsSupportedPair reports whether pair (e.g. "BTC-USD") is on the allow-list
func IsSupportedPair(pair string) bool {
	_, ok := supportedPairs[pair]
	return ok
}
