package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// coerceFloat converts a raw provider value to a float64, best effort.
// Numeric strings may use a comma decimal separator and surrounding
// whitespace. Returns nil when the value has no numeric reading; parsing
// never fails hard, the caller keeps the original value for display.
func coerceFloat(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int32:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
		return nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		s = strings.ReplaceAll(s, ",", ".")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
		return nil
	default:
		return nil
	}
}

// originalString renders the raw value the way it arrived, for the display
// fallback path.
func originalString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}
