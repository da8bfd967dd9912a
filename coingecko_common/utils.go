package coingecko_common

import (
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/config"
)

// GetApiBaseUrl returns the CoinGecko base URL for a key type, honoring overrides
func GetApiBaseUrl(cfg *config.Config, keyType KeyType) string {
	if keyType == ProKey {
		if cfg != nil && cfg.OverrideCoingeckoProURL != "" {
			log.Debugf("CoinGecko: Using overridden Pro API URL: %s", cfg.OverrideCoingeckoProURL)
			return cfg.OverrideCoingeckoProURL
		}
		return COINGECKO_PRO_URL
	}
	if cfg != nil && cfg.OverrideCoingeckoPublicURL != "" {
		log.Debugf("CoinGecko: Using overridden public API URL: %s", cfg.OverrideCoingeckoPublicURL)
		return cfg.OverrideCoingeckoPublicURL
	}
	return COINGECKO_PUBLIC_URL
}

// OverriddenHosts returns the hostnames of configured base URL overrides so
// they share the CoinGecko rate limiters
func OverriddenHosts(cfg *config.Config) []string {
	if cfg == nil {
		return nil
	}
	var hosts []string
	for _, raw := range []string{cfg.OverrideCoingeckoPublicURL, cfg.OverrideCoingeckoProURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			log.Warnf("CoinGecko: Ignoring unparsable override URL %q", raw)
			continue
		}
		hosts = append(hosts, u.Hostname())
	}
	return hosts
}
