package extraction

import "regexp"

type KerogenType string

const (
	KerogenI   KerogenType = "I"
	KerogenII  KerogenType = "II"
	KerogenIII KerogenType = "III"
	KerogenIV  KerogenType = "IV"
)

type PressureRegime string

const (
	PressureNormal         PressureRegime = "normal"
	PressureOverpressured  PressureRegime = "overpressured"
	PressureUnderpressured PressureRegime = "underpressured"
)

type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

type TrapType string

const (
	TrapStructural    TrapType = "structural"
	TrapStratigraphic TrapType = "stratigraphic"
	TrapCombination   TrapType = "combination"
)

// Valid reports whether k is one of the known kerogen types.
func (k KerogenType) Valid() bool {
	switch k {
	case KerogenI, KerogenII, KerogenIII, KerogenIV:
		return true
	}
	return false
}

func (p PressureRegime) Valid() bool {
	switch p {
	case PressureNormal, PressureOverpressured, PressureUnderpressured:
		return true
	}
	return false
}

func (c Complexity) Valid() bool {
	switch c {
	case ComplexitySimple, ComplexityModerate, ComplexityComplex:
		return true
	}
	return false
}

func (t TrapType) Valid() bool {
	switch t {
	case TrapStructural, TrapStratigraphic, TrapCombination:
		return true
	}
	return false
}

type rule[T ~string] struct {
	tag     T
	pattern *regexp.Regexp
}

// kerogenLabel matches "Type", "Kerogen", "Kerogen Type:", "kerogen is"
// and similar lead-ins before the numeral.
const kerogenLabel = `(?i)\b(?:kerogen|type)(?:[\s:=-]+(?:type|is)\b)*[\s:=-]*`

// Tables are scanned top to bottom. Tags whose tokens share a prefix
// must appear longest first: IV and III before II before I.
var kerogenRules = []rule[KerogenType]{
	{KerogenIV, regexp.MustCompile(kerogenLabel + `IV\b`)},
	{KerogenIII, regexp.MustCompile(kerogenLabel + `III\b`)},
	{KerogenII, regexp.MustCompile(kerogenLabel + `II\b`)},
	{KerogenI, regexp.MustCompile(kerogenLabel + `I\b`)},
}

var pressureRules = []rule[PressureRegime]{
	{PressureOverpressured, regexp.MustCompile(`(?i)\bover[\s-]?pressur(?:ed|e|ing)\b`)},
	{PressureUnderpressured, regexp.MustCompile(`(?i)\bunder[\s-]?pressur(?:ed|e|ing)\b`)},
	{PressureNormal, regexp.MustCompile(`(?i)\b(?:normal(?:ly)?[\s-]?pressur(?:ed|e)|normal|hydrostatic)\b`)},
}

// "complexity" must not count as "complex"; the word boundary handles it.
var complexityRules = []rule[Complexity]{
	{ComplexityComplex, regexp.MustCompile(`(?i)\b(?:highly\s+)?complex\b`)},
	{ComplexityModerate, regexp.MustCompile(`(?i)\bmoderate(?:ly)?\b`)},
	{ComplexitySimple, regexp.MustCompile(`(?i)\bsimple\b`)},
}

var trapRules = []rule[TrapType]{
	{TrapCombination, regexp.MustCompile(`(?i)\bcombin(?:ation|ed)\b`)},
	{TrapStratigraphic, regexp.MustCompile(`(?i)\bstratigraphic\b`)},
	{TrapStructural, regexp.MustCompile(`(?i)\bstructural\b`)},
}

func classify[T ~string](text string, rules []rule[T]) (T, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.tag, true
		}
	}
	var zero T
	return zero, false
}

func ExtractKerogenType(text string) (KerogenType, bool) {
	return classify(text, kerogenRules)
}

func ExtractPressureRegime(text string) (PressureRegime, bool) {
	return classify(text, pressureRules)
}

func ExtractComplexity(text string) (Complexity, bool) {
	return classify(text, complexityRules)
}

func ExtractTrapType(text string) (TrapType, bool) {
	return classify(text, trapRules)
}

// ParseKerogenType accepts a bare tag ("II") or a phrase ("Type II").
func ParseKerogenType(s string) (KerogenType, bool) {
	switch KerogenType(s) {
	case KerogenI, KerogenII, KerogenIII, KerogenIV:
		return KerogenType(s), true
	}
	return ExtractKerogenType("type " + s)
}

func ParsePressureRegime(s string) (PressureRegime, bool) {
	return ExtractPressureRegime(s)
}

func ParseComplexity(s string) (Complexity, bool) {
	return ExtractComplexity(s)
}

func ParseTrapType(s string) (TrapType, bool) {
	return ExtractTrapType(s)
}
