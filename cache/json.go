package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the entry stored under name into T
func GetJSON[T any](ctx context.Context, store Store, name string) (T, bool, error) {
	var out T
	data, found, err := store.Get(ctx, name)
	if err != nil || !found {
		return out, found, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false, fmt.Errorf("failed to decode cache entry %s: %w", name, err)
	}
	return out, true, nil
}

// SetJSON encodes value and stores it under name
func SetJSON(ctx context.Context, store Store, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", name, err)
	}
	return store.Set(ctx, name, data)
}
