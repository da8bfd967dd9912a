package coingecko_common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/status-im/market-aggregator/config"
)

func TestGetApiBaseUrl(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		keyType     KeyType
		expectedURL string
	}{
		{
			name:        "Pro key with default URL",
			cfg:         &config.Config{},
			keyType:     ProKey,
			expectedURL: COINGECKO_PRO_URL,
		},
		{
			name:        "Pro key with overridden URL",
			cfg:         &config.Config{OverrideCoingeckoProURL: "https://custom-pro.example.com"},
			keyType:     ProKey,
			expectedURL: "https://custom-pro.example.com",
		},
		{
			name:        "No key with default URL",
			cfg:         &config.Config{},
			keyType:     NoKey,
			expectedURL: COINGECKO_PUBLIC_URL,
		},
		{
			name:        "Demo key with overridden public URL",
			cfg:         &config.Config{OverrideCoingeckoPublicURL: "https://custom-public.example.com"},
			keyType:     DemoKey,
			expectedURL: "https://custom-public.example.com",
		},
		{
			name:        "Nil config",
			cfg:         nil,
			keyType:     DemoKey,
			expectedURL: COINGECKO_PUBLIC_URL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedURL, GetApiBaseUrl(tt.cfg, tt.keyType))
		})
	}
}

func TestOverriddenHosts(t *testing.T) {
	assert.Nil(t, OverriddenHosts(nil))
	assert.Nil(t, OverriddenHosts(&config.Config{}))

	hosts := OverriddenHosts(&config.Config{
		OverrideCoingeckoPublicURL: "http://127.0.0.1:8081",
		OverrideCoingeckoProURL:    "https://pro.example.com/base",
	})
	assert.Equal(t, []string{"127.0.0.1", "pro.example.com"}, hosts)
}
