package widget

import (
	"encoding/json"
	"math"
)

// decodePosition accepts anything shaped like {x:number, y:number}.
func decodePosition(v any) (Position, bool) {
	switch p := v.(type) {
	case Position:
		return p, p.finite()
	case *Position:
		if p == nil {
			return Position{}, false
		}
		return *p, p.finite()
	case json.RawMessage:
		return decodePositionJSON(p)
	case []byte:
		return decodePositionJSON(p)
	case map[string]any:
		x, okX := number(p["x"])
		y, okY := number(p["y"])
		if !okX || !okY {
			return Position{}, false
		}
		pos := Position{X: x, Y: y}
		return pos, pos.finite()
	}
	return Position{}, false
}

func decodePositionJSON(b []byte) (Position, bool) {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return Position{}, false
	}
	return decodePosition(m)
}

func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// decodeLocked only accepts a real boolean.
func decodeLocked(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case json.RawMessage:
		var out bool
		if err := json.Unmarshal(b, &out); err != nil {
			return false, false
		}
		return out, true
	}
	return false, false
}
