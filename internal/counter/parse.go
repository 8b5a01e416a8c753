package counter

import (
	"math"
	"strconv"
	"strings"
)

// ParseTarget extracts the numeric target from a metric value. Numbers are
// used as-is; strings keep only ASCII digits and '.' and the longest leading
// decimal literal of what remains is parsed, so "₹13.1 Cr" yields 13.1 and
// "92.1%" yields 92.1. The second result is false when nothing finite could be
// extracted.
func ParseTarget(raw any) (float64, bool) {
	var v float64
	switch x := raw.(type) {
	case string:
		return parseString(x)
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int8:
		v = float64(x)
	case int16:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint:
		v = float64(x)
	case uint8:
		v = float64(x)
	case uint16:
		v = float64(x)
	case uint32:
		v = float64(x)
	case uint64:
		v = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseString(s string) (float64, bool) {
	stripped := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	tok := leadingDecimal(stripped)
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// leadingDecimal returns the longest prefix of s (digits and dots only) that
// holds at most one '.' and at least one digit.
func leadingDecimal(s string) string {
	end, digits, dot := 0, 0, false
	for end < len(s) {
		if s[end] == '.' {
			if dot {
				break
			}
			dot = true
		} else {
			digits++
		}
		end++
	}
	if digits == 0 {
		return ""
	}
	return s[:end]
}
