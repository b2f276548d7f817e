package bridge

import (
	"bytes"
	"encoding/json"
	"math"
)

// Shape classifies an id argument.
type Shape int

const (
	ShapeOther Shape = iota // anything that is neither a number nor an array of numbers
	ShapeOne                // a single integral number
	ShapeMany               // an array whose every element is an integral number
)

// IDSelector is an id argument resolved to its shape.
type IDSelector struct {
	Shape Shape
	One   int64
	Many  []int64
}

// IDs returns the selected ids, or nil for [ShapeOther].
func (s IDSelector) IDs() []int64 {
	switch s.Shape {
	case ShapeOne:
		return []int64{s.One}
	case ShapeMany:
		return s.Many
	default:
		return nil
	}
}

// arg returns the i-th argument, or nil when it is absent.
func arg(req *Request, i int) json.RawMessage {
	if i >= len(req.Args) {
		return nil
	}
	return req.Args[i]
}

// parseIDs resolves raw into an [IDSelector].
//
// An empty array is [ShapeMany] with no ids. Numbers with a fractional part are not ids.
func parseIDs(raw json.RawMessage) IDSelector {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return IDSelector{Shape: ShapeOther}
	}

	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return IDSelector{Shape: ShapeOther}
		}

		ids := make([]int64, 0, len(items))
		for _, item := range items {
			id, ok := parseInt(item)
			if !ok {
				return IDSelector{Shape: ShapeOther}
			}
			ids = append(ids, id)
		}
		return IDSelector{Shape: ShapeMany, Many: ids}
	}

	if id, ok := parseInt(raw); ok {
		return IDSelector{Shape: ShapeOne, One: id}
	}
	return IDSelector{Shape: ShapeOther}
}

func parseInt(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	if id, err := n.Int64(); err == nil {
		return id, true
	}

	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// parseString returns raw as a string when it is a JSON string.
func parseString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// parseStrings returns raw as a string slice when it is an array of JSON strings.
func parseStrings(raw json.RawMessage) ([]string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := parseString(item)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// isObject reports whether raw is a JSON object.
func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// truthy applies the shell's truthiness: absent, null, false, 0 and "" are false.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	switch string(raw) {
	case "null", "false", `""`:
		return false
	}

	if f, ok := parseFloat(raw); ok {
		return f != 0
	}
	return true
}

func parseFloat(raw json.RawMessage) (float64, bool) {
	if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}
