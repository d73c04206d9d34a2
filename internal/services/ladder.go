package services

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Extractor pulls service names out of a services section. ok reports a
// match; a match may still be empty (a literal "[]"), and it ends the ladder.
// When ok is false the next extractor is tried.
type Extractor interface {
	Name() string
	Extract(section string) (found []string, ok bool)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc struct {
	Label string
	Fn    func(section string) ([]string, bool)
}

func (f ExtractorFunc) Name() string                            { return f.Label }
func (f ExtractorFunc) Extract(section string) ([]string, bool) { return f.Fn(section) }

// Ladder is an ordered list of extractors, most faithful first.
type Ladder []Extractor

// Extract returns the result of the first extractor that matches and its
// name. stage is empty when nothing matched.
func (l Ladder) Extract(section string) (found []string, stage string) {
	for _, e := range l {
		if found, ok := e.Extract(section); ok {
			if found == nil {
				found = []string{}
			}
			return found, e.Name()
		}
	}
	return nil, ""
}

// DefaultLadder is the order Parse tries: a JSON array literal, quoted
// strings, bullet items, then capitalized words and acronyms.
var DefaultLadder = Ladder{
	ExtractorFunc{Label: "json-array", Fn: jsonArray},
	ExtractorFunc{Label: "quoted", Fn: quoted},
	ExtractorFunc{Label: "bullets", Fn: bullets},
	ExtractorFunc{Label: "capitalized", Fn: capitalized},
}

var (
	arrayRe       = regexp.MustCompile(`\[.*?\]`)
	quotedRe      = regexp.MustCompile(`["']([^"']+)["']`)
	bulletRe      = regexp.MustCompile(`(?m)^[ \t]*[-*][ \t]*(.+)$`)
	capitalizedRe = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`)
	acronymRe     = regexp.MustCompile(`[A-Z]{2,}`)
)

const maxGuessed = 10

var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "for": true, "with": true, "that": true,
	"this": true, "are": true, "used": true, "services": true, "project": true, "repository": true,
}

// jsonArray decodes the first single-line [...] literal. Any valid JSON array
// is a match, including an empty one. Only its string elements are kept, so
// null, numbers and nested values are dropped. Invalid JSON falls through.
func jsonArray(section string) ([]string, bool) {
	literal := arrayRe.FindString(section)
	if literal == "" {
		return nil, false
	}
	var items []any
	if err := json.Unmarshal([]byte(literal), &items); err != nil {
		return nil, false
	}
	out := []string{}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func quoted(section string) ([]string, bool) {
	var out []string
	for _, m := range quotedRe.FindAllStringSubmatch(section, -1) {
		out = append(out, m[1])
	}
	return out, len(out) > 0
}

func bullets(section string) ([]string, bool) {
	var out []string
	for _, m := range bulletRe.FindAllStringSubmatch(section, -1) {
		if item := strings.TrimSpace(m[1]); item != "" {
			out = append(out, item)
		}
	}
	return out, len(out) > 0
}

func capitalized(section string) ([]string, bool) {
	for _, re := range []*regexp.Regexp{capitalizedRe, acronymRe} {
		var out []string
		for _, m := range re.FindAllString(section, -1) {
			if len(m) <= 2 || stopWords[strings.ToLower(m)] {
				continue
			}
			out = append(out, m)
		}
		if len(out) > 0 {
			if len(out) > maxGuessed {
				out = out[:maxGuessed]
			}
			return out, true
		}
	}
	return nil, false
}
