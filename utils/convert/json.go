// Package convert provides JSON conversion helpers shared by the CLI.
package convert

import (
	"encoding/json"
	"fmt"
)

// ToJSON renders v as a compact JSON string. A nil value renders empty.
func ToJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data), nil
}

// PrettyJSON renders v as indented JSON for human consumption.
func PrettyJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data), nil
}

// FromJSON decodes a JSON string into v. An empty string is a no-op.
func FromJSON(s string, v any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// ToJSONMap converts a value to its map form through a marshal round trip.
func ToJSONMap(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	m := make(map[string]any)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode JSON object: %w", err)
	}
	return m, nil
}
