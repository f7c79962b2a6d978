package ai

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string, number or bool. Models are loose about
// quoting values such as audience sizes.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		// Structured values are dropped rather than failing the whole item.
		*f = ""
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexInt accepts a JSON number or a numeric string; anything else leaves
// it unset.
type FlexInt struct {
	Value int
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		f.Value, f.Set = int(math.Round(v)), true
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(v), "%")
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			f.Value, f.Set = int(math.Round(n)), true
		}
	}
	return nil
}

// Or returns the value when set and def otherwise
func (f FlexInt) Or(def int) int {
	if f.Set {
		return f.Value
	}
	return def
}
