package extraction

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a reply carries no decodable JSON object.
var ErrNoJSON = errors.New("no embedded JSON object")

var (
	fencePattern  = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.+?)```")
	objectPattern = regexp.MustCompile(`\{[\s\S]*\}`)
)

// DecodeJSON decodes the JSON object embedded in an oracle reply into v.
// It accepts a bare object, a fenced ```json block, or an object
// surrounded by prose.
func DecodeJSON(text string, v any) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrNoJSON
	}

	if m := fencePattern.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), v); err == nil {
			return nil
		}
	}

	if match := objectPattern.FindString(text); match != "" {
		if err := json.Unmarshal([]byte(match), v); err == nil {
			return nil
		}
	}

	// The widest span failed, so try each opening brace on its own and
	// let the decoder stop at the end of the first complete value.
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		var raw json.RawMessage
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		if err := json.Unmarshal(raw, v); err == nil {
			return nil
		}
	}
	return ErrNoJSON
}

// Score validates a structured score value; nil or out-of-range is absent.
func Score(v *float64) (int, bool) {
	if v == nil || math.IsNaN(*v) {
		return 0, false
	}
	s := int(math.Round(*v))
	if s < 0 || s > 100 {
		return 0, false
	}
	return s, true
}

// Measure validates a structured non-negative measurement.
func Measure(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0, false
	}
	return *v, true
}
