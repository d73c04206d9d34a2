// Package services pulls the list of detected services out of a model reply.
package services

import (
	"regexp"
	"strings"
)

const (
	// Heading introduces the services section in a model reply.
	Heading = "### Services Used"

	// ErrorEntry is returned in place of a list when extraction itself breaks.
	ErrorEntry = "Error extracting services"
)

var headingRe = regexp.MustCompile(regexp.QuoteMeta(Heading) + `\s*\n`)

// StageError names the outcome when extraction itself panicked.
const StageError = "error"

// Parse returns the services named in a model reply, or an empty slice when
// the reply has no services section. It is a pure function of its input.
func Parse(text string) []string {
	services, _ := ParseStage(text)
	return services
}

// ParseStage is Parse that also reports which extractor matched. stage is
// empty when no heading was found or no extractor matched.
func ParseStage(text string) (services []string, stage string) {
	defer func() {
		if r := recover(); r != nil {
			services, stage = []string{ErrorEntry}, StageError
		}
	}()

	section, ok := Section(text)
	if !ok {
		return []string{}, ""
	}
	if found, matched := DefaultLadder.Extract(section); matched != "" {
		return found, matched
	}
	return []string{}, ""
}

// Section returns the text between the services heading and the next "###"
// heading (or the end of the reply), trimmed.
func Section(text string) (string, bool) {
	loc := headingRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	section := text[loc[1]:]
	if strings.HasPrefix(strings.TrimLeft(section, " \t"), "###") {
		return "", true
	}
	if i := strings.Index(section, "\n###"); i >= 0 {
		section = section[:i]
	}
	return strings.TrimSpace(section), true
}
