// ABOUTME: Lenient integer parsing for loosely typed upstream JSON fields
// ABOUTME: Custom fields may arrive as numbers, numeric strings or null

package parse

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// IntOrZero safely parses an integer from a string, returning 0 if parsing fails
func IntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return 0
}

// LenientInt decodes a raw JSON value holding a number, a numeric string,
// a boolean or null
func LenientInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return IntOrZero(n.String())
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return IntOrZero(s)
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil && b {
		return 1
	}

	return 0
}

// LenientBool decodes a raw JSON value holding a boolean, a number, a string
// such as "1", "true" or "yes", or an array whose first element is truthy
func LenientBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "yes", "on":
			return true
		}
		return false
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return len(list) > 0 && LenientBool(list[0])
	}

	return LenientInt(raw) != 0
}
