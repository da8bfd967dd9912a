package coingecko_common

import (
	"encoding/json"
	"fmt"
)

// MergeJSONArrays concatenates JSON array bodies into one array body
func MergeJSONArrays(bodies [][]byte) ([]byte, error) {
	merged := make([]json.RawMessage, 0)
	for i, body := range bodies {
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("chunk %d is not a JSON array: %w", i, err)}
		}
		merged = append(merged, items...)
	}
	return json.Marshal(merged)
}

// DecodeJSONArray decodes an array body, null decodes to an empty slice
func DecodeJSONArray[T any](body []byte) ([]T, error) {
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
