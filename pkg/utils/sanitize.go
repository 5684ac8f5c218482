package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	spaceRun       = regexp.MustCompile(`[ \t]+`)
)

// keep returns input without the runes for which allowed reports false.
func keep(input string, allowed func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, input)
}

// SanitizeString normalises a single-line field such as a name or a title:
// control characters are dropped and whitespace runs collapse to one space.
// Values are stored as typed; escaping belongs to whatever renders them.
func SanitizeString(input string) string {
	line := keep(input, func(r rune) bool { return unicode.IsPrint(r) || r == '\t' })
	return strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
}

// SanitizeOptional applies SanitizeString to an optional field.
func SanitizeOptional(input *string) *string {
	if input == nil {
		return nil
	}
	sanitized := SanitizeString(*input)
	return &sanitized
}

// SanitizeText normalises free text such as a description. Line breaks
// survive, normalised to "\n".
func SanitizeText(input string) string {
	text := strings.ReplaceAll(input, "\r\n", "\n")
	text = keep(text, func(r rune) bool { return unicode.IsPrint(r) || r == '\n' || r == '\t' })
	return strings.TrimSpace(text)
}

// SanitizeEmail lower-cases an address and strips markup, whitespace and
// control characters from it.
func SanitizeEmail(email string) string {
	email = htmlTagPattern.ReplaceAllString(strings.ToLower(email), "")
	return keep(email, func(r rune) bool { return unicode.IsGraphic(r) && !unicode.IsSpace(r) })
}

// SanitizePhone keeps digits and the punctuation people write phone numbers
// with.
func SanitizePhone(phone string) string {
	phone = keep(htmlTagPattern.ReplaceAllString(phone, ""), func(r rune) bool {
		return unicode.IsDigit(r) || strings.ContainsRune("+-() ", r)
	})
	return strings.TrimSpace(spaceRun.ReplaceAllString(phone, " "))
}
