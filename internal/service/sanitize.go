package service

import (
	"regexp"
	"strings"
)

var (
	reMarkdown   = regexp.MustCompile(`(\*\*|#|\[.*?\]\(.*?\))`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// CleanForSpeech rewrites model output into text a TTS voice can read aloud:
// unit and currency glyphs become spoken words, markdown syntax and table
// pipes are stripped, and whitespace runs collapse to single spaces.
// Pure and total: it never fails, and applying it twice is a no-op.
func CleanForSpeech(text string) string {
	s := text
	s = strings.ReplaceAll(s, "°C", " degrees Celsius")
	s = strings.ReplaceAll(s, "km/h", " kilometers per hour")
	s = strings.ReplaceAll(s, "mm", " millimeters")
	s = strings.ReplaceAll(s, "₹", " rupees ")
	s = reMarkdown.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "--------------------", " ")
	s = strings.ReplaceAll(s, "|", " ")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
