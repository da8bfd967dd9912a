package coingecko_common

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/config"
)

// KeyType defines the API key type
type KeyType int

const (
	// NoKey means no API key is available
	NoKey KeyType = iota
	// ProKey means using a Pro API key
	ProKey
	// DemoKey means using a demo API key
	DemoKey
)

// DefaultKeyBackoff is how long a key stays out of rotation after a 429
const DefaultKeyBackoff = 5 * time.Minute

// APIKey represents an API key with its type
type APIKey struct {
	Key  string
	Type KeyType
}

// IAPIKeyManager defines the interface for API key management
//
//go:generate mockgen -destination=mocks/api_key_manager.go . IAPIKeyManager
type IAPIKeyManager interface {
	// GetAvailableKeys returns keys in preference order: pro keys not in
	// backoff (a single pro key is always kept), demo keys not in backoff,
	// then the empty "no key" entry.
	GetAvailableKeys() []APIKey

	// MarkKeyAsFailed puts a key in backoff
	MarkKeyAsFailed(key string)
}

// APIKeyManager implements IAPIKeyManager for CoinGecko
type APIKeyManager struct {
	apiTokens   *config.APITokens
	lastFailed  map[string]time.Time
	backoffTime time.Duration
	now         func() time.Time
	mu          sync.RWMutex
}

// NewAPIKeyManager creates a new API key manager
func NewAPIKeyManager(apiTokens *config.APITokens) *APIKeyManager {
	return &APIKeyManager{
		apiTokens:   apiTokens,
		lastFailed:  make(map[string]time.Time),
		backoffTime: DefaultKeyBackoff,
		now:         time.Now,
	}
}

func (m *APIKeyManager) isKeyInBackoff(key string) bool {
	if key == "" {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if lastFailTime, exists := m.lastFailed[key]; exists {
		return m.now().Sub(lastFailTime) < m.backoffTime
	}
	return false
}

func (m *APIKeyManager) keysOfType(keyType KeyType) []string {
	if m.apiTokens == nil {
		return nil
	}
	switch keyType {
	case ProKey:
		return append([]string{}, m.apiTokens.Tokens...)
	case DemoKey:
		return append([]string{}, m.apiTokens.DemoTokens...)
	}
	return nil
}

// GetAvailableKeys implements IAPIKeyManager
func (m *APIKeyManager) GetAvailableKeys() []APIKey {
	var availableKeys []APIKey

	proKeys := m.keysOfType(ProKey)
	if len(proKeys) == 1 {
		availableKeys = append(availableKeys, APIKey{Key: proKeys[0], Type: ProKey})
	} else {
		for _, key := range proKeys {
			if !m.isKeyInBackoff(key) {
				availableKeys = append(availableKeys, APIKey{Key: key, Type: ProKey})
			}
		}
	}

	for _, key := range m.keysOfType(DemoKey) {
		if !m.isKeyInBackoff(key) {
			availableKeys = append(availableKeys, APIKey{Key: key, Type: DemoKey})
		}
	}

	return append(availableKeys, APIKey{Key: "", Type: NoKey})
}

// MarkKeyAsFailed implements IAPIKeyManager
func (m *APIKeyManager) MarkKeyAsFailed(key string) {
	if key == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFailed[key] = m.now()
	log.Printf("APIKeyManager: Key marked as failed for %v", m.backoffTime)
}

// FirstAvailableKey returns the preferred key, or the no-key entry
func FirstAvailableKey(m IAPIKeyManager) APIKey {
	if m == nil {
		return APIKey{Type: NoKey}
	}
	keys := m.GetAvailableKeys()
	if len(keys) == 0 {
		return APIKey{Type: NoKey}
	}
	return keys[0]
}
