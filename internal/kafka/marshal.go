package kafka

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals a message value into T.
func Decode[T any](value []byte) (T, error) {
	var t T
	if err := json.Unmarshal(value, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
