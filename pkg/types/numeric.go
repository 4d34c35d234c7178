package types

import (
	"bytes"
	"strconv"
)

// LooseFloat is a numeric field as serialized by the Polymarket Data API.
// The API is inconsistent about representation: the same field can arrive as
// a JSON number, a numeric string, an empty string, null, or be absent from
// the object entirely. Every non-numeric representation decodes to zero so
// that a single malformed position never fails a whole page.
type LooseFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *LooseFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	// Strip quotes for string-encoded numbers.
	if data[0] == '"' && data[len(data)-1] == '"' && len(data) >= 2 {
		data = data[1 : len(data)-1]
	}

	if len(data) == 0 {
		*f = 0
		return nil
	}

	val, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*f = 0
		return nil
	}

	*f = LooseFloat(val)
	return nil
}

// Float64 returns the underlying value.
func (f LooseFloat) Float64() float64 {
	return float64(f)
}
