package importer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// LineKind classifies one line of extracted document text
type LineKind int

const (
	LineBlank LineKind = iota
	LineSectionHeader
	LineCheckbox
	LineMetric
	LineText
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineSectionHeader:
		return "section-header"
	case LineCheckbox:
		return "checkbox"
	case LineMetric:
		return "metric"
	default:
		return "text"
	}
}

// Glyphs the renderer uses for selected and unselected features
const (
	GlyphChecked   = "☑"
	GlyphUnchecked = "☐"
)

// Section header length bounds, inclusive
const (
	minHeaderLen = 4
	maxHeaderLen = 49
)

var (
	headerPattern = regexp.MustCompile(`^[A-Z &/]+$`)
	// "{hours}h {price}" at the start of a line, price may carry thousands
	// separators and be followed by a currency or other trailing text
	metricPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*h\s*(\d[\d\s,]*(?:\.\d+)?)`)
)

// Line is a classified, trimmed line
type Line struct {
	Text  string
	Kind  LineKind
	Hours float64
	Price float64
}

// Tokenize splits text into classified lines
func Tokenize(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, classify(r))
	}
	return lines
}

// Classify returns the kind of a single line
func Classify(line string) LineKind {
	return classify(line).Kind
}

// IsSectionHeader reports whether a line looks like an upper-case section title
func IsSectionHeader(line string) bool {
	t := strings.TrimSpace(line)
	n := len(t)
	return n >= minHeaderLen && n <= maxHeaderLen &&
		t == strings.ToUpper(t) &&
		headerPattern.MatchString(t)
}

func classify(raw string) Line {
	t := strings.TrimSpace(raw)
	l := Line{Text: t, Kind: LineText}

	switch {
	case t == "":
		l.Kind = LineBlank
	case IsSectionHeader(t):
		l.Kind = LineSectionHeader
	case glyphIndex(t) >= 0:
		l.Kind = LineCheckbox
	default:
		if hours, price, ok := parseMetric(t); ok {
			l.Kind = LineMetric
			l.Hours = hours
			l.Price = price
		}
	}
	return l
}

func parseMetric(t string) (hours, price float64, ok bool) {
	m := metricPattern.FindStringSubmatch(t)
	if m == nil {
		return 0, 0, false
	}

	hours, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}

	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, m[2])
	price, err = strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, 0, false
	}

	return hours, price, true
}

// glyphIndex returns the byte offset of the first checkbox glyph in t, or -1
func glyphIndex(t string) int {
	return strings.IndexAny(t, GlyphChecked+GlyphUnchecked)
}

// checkboxText returns the text after the first glyph of a checkbox line,
// so list numbering such as "1. ☑ Auth" is dropped
func checkboxText(t string) string {
	i := glyphIndex(t)
	if i < 0 {
		return strings.TrimSpace(t)
	}
	_, size := utf8.DecodeRuneInString(t[i:])
	return strings.TrimSpace(t[i+size:])
}

// nextNonBlank returns the index of the first non-blank line at or after i, or -1
func nextNonBlank(lines []Line, i int) int {
	for ; i < len(lines); i++ {
		if lines[i].Kind != LineBlank {
			return i
		}
	}
	return -1
}
