package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// maxGap is how many non-digit characters may sit between a keyword and
// its value ("porosity score: 82" has a gap of 8).
const maxGap = 60

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func keywordPattern(keyword string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := patternCache[keyword]; ok {
		return re
	}
	prefix := `(?i)`
	// Anchor word-like keywords so "toc" does not fire inside "stock".
	if r, _ := utf8.DecodeRuneInString(keyword); unicode.IsLetter(r) || unicode.IsDigit(r) {
		prefix += `\b`
	}
	re := regexp.MustCompile(prefix + regexp.QuoteMeta(keyword) + `[^\d]{0,` + strconv.Itoa(maxGap) + `}?(-?\d+(?:\.\d+)?)`)
	patternCache[keyword] = re
	return re
}

func firstNumber(text, keyword string) (float64, bool) {
	if text == "" || keyword == "" {
		return 0, false
	}
	m := keywordPattern(keyword).FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ExtractSigned returns the first number following keyword, keeping a
// leading minus sign.
func ExtractSigned(text, keyword string) (float64, bool) {
	return firstNumber(text, keyword)
}

// ExtractScore returns the first 0–100 score following keyword.
// Values outside that range are reported as absent.
func ExtractScore(text, keyword string) (int, bool) {
	v, ok := firstNumber(text, keyword)
	if !ok {
		return 0, false
	}
	score := int(math.Round(v))
	if score < 0 || score > 100 {
		return 0, false
	}
	return score, true
}

// ExtractFloat returns the first non-negative decimal following keyword.
func ExtractFloat(text, keyword string) (float64, bool) {
	v, ok := firstNumber(text, keyword)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// After returns up to n bytes (lower-cased) following the first
// case-insensitive occurrence of anchor, or "" if anchor is absent.
// Classifiers run on it to prefer a labelled answer ("trap type:
// combination") over an incidental mention elsewhere in the text.
func After(text, anchor string, n int) string {
	lower, lowerAnchor := strings.ToLower(text), strings.ToLower(anchor)
	i := strings.Index(lower, lowerAnchor)
	if i < 0 || lowerAnchor == "" {
		return ""
	}
	rest := lower[i+len(lowerAnchor):]
	if len(rest) > n {
		rest = rest[:n]
	}
	return rest
}
