package normalize

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ISO date layout used everywhere in the pipeline.
const DateLayout = "2006-01-02"

// Spreadsheets count days from 1899-12-30 (serial 0).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// DefaultTopicTable maps historical topic spellings to their canonical form.
// Lookup is case-insensitive under Turkish folding, so one entry per variant
// is enough. Unknown topics pass through untouched; do not turn that into an
// error, existing data depends on it.
func DefaultTopicTable() map[string]string {
	return map[string]string{
		"Diğer":                    "Diğer",
		"Diğer Talepler":           "Diğer",
		"Durak Talepleri":          "Durak Talepleri",
		"Hat Talepleri":            "Hat Talepleri",
		"Servis Sıklığı Talepleri": "Servis Sıklıkları",
		"Servis Sıklıkları":        "Servis Sıklıkları",
	}
}

// Normalizer canonicalizes free-text fields before storage or comparison.
// The topic table is injected so new variants can be added without touching
// this package.
type Normalizer struct {
	topics map[string]string
	now    func() time.Time
}

func New(topicTable map[string]string) *Normalizer {
	topics := make(map[string]string, len(topicTable))
	for variant, canonical := range topicTable {
		topics[lowerTR(strings.TrimSpace(variant))] = canonical
	}
	return &Normalizer{topics: topics, now: time.Now}
}

func Default() *Normalizer {
	return New(DefaultTopicTable())
}

// Topic returns the canonical topic for any known variant, or the trimmed
// input unchanged when no mapping exists.
func (n *Normalizer) Topic(s string) string {
	trimmed := strings.TrimSpace(s)
	if canonical, ok := n.topics[lowerTR(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// District trims and upper-cases with Turkish casing rules. ASCII ToUpper
// would fold i to I and lose the dotted İ, so it must not be used here.
func (n *Normalizer) District(s string) string {
	return UpperTR(strings.TrimSpace(s))
}

// Neighborhood is stored trimmed as entered; matching uses MatchKey.
func (n *Normalizer) Neighborhood(s string) string {
	return strings.TrimSpace(s)
}

// Date converts the accepted date representations to YYYY-MM-DD:
// ISO strings pass through trimmed, DD.MM.YYYY is reordered, spreadsheet
// serial numbers (also as bare digit strings, which is how raw cell reads
// arrive) are day-count converted, time.Time is formatted. Anything else
// falls back to today — a documented lenient default, not an error.
func (n *Normalizer) Date(v any) string {
	switch value := v.(type) {
	case time.Time:
		return value.Format(DateLayout)
	case int:
		return serialToDate(float64(value))
	case int64:
		return serialToDate(float64(value))
	case float64:
		return serialToDate(value)
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return n.now().Format(DateLayout)
		}
		if strings.Contains(trimmed, ".") {
			parts := strings.Split(trimmed, ".")
			if len(parts) == 3 && parts[0] != "" && parts[1] != "" && parts[2] != "" {
				return parts[2] + "-" + parts[1] + "-" + parts[0]
			}
		}
		if serial, err := strconv.Atoi(trimmed); err == nil {
			return serialToDate(float64(serial))
		}
		return trimmed
	}
	return n.now().Format(DateLayout)
}

func serialToDate(serial float64) string {
	return serialEpoch.AddDate(0, 0, int(serial)).Format(DateLayout)
}

// MatchKey folds a name for case-insensitive (district, neighborhood)
// comparisons.
func MatchKey(s string) string {
	return UpperTR(strings.TrimSpace(s))
}

func UpperTR(s string) string {
	return cases.Upper(language.Turkish).String(s)
}

func lowerTR(s string) string {
	return cases.Lower(language.Turkish).String(s)
}
