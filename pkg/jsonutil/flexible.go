// Package jsonutil decodes scalar fields from source documents whose
// producers are not consistent about JSON types (numbers or booleans
// where strings are expected, and vice versa).
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// String is a string that unmarshals tolerantly: JSON strings decode
// as-is, numbers and booleans decode to their textual form, and null
// decodes to the empty string.
type String string

// UnmarshalJSON implements json.Unmarshaler.
func (s *String) UnmarshalJSON(data []byte) error {
	*s = String(FlexibleStringValue(data))
	return nil
}

// FlexibleStringValue converts a raw JSON scalar to a string. Returns
// the empty string for null or empty input.
func FlexibleStringValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if numVal == float64(int64(numVal)) {
			return fmt.Sprintf("%d", int64(numVal))
		}
		return fmt.Sprintf("%g", numVal)
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return fmt.Sprintf("%t", boolVal)
	}

	return string(raw)
}
