package coherence

import (
	"strings"
	"unicode"
)

// leadingGlyphs are bullet markers stripped from the front of a line.
const leadingGlyphs = "-•*◦▪ \t"

// UnifyFormatting normalizes one bullet: trims whitespace, strips leading
// bullet glyphs, capitalizes the first letter, and removes trailing sentence
// punctuation. Idempotent.
func UnifyFormatting(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimLeft(text, leadingGlyphs)
	text = strings.TrimRight(text, ".;, \t")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > 0 && unicode.IsLower(runes[0]) {
		runes[0] = unicode.ToUpper(runes[0])
		text = string(runes)
	}
	return text
}

// ApplyFullFormattingToAll applies formatting normalization and ATS-safe
// substitution to every bullet. Idempotent: a second application is a no-op.
func ApplyFullFormattingToAll(bullets []string) []string {
	formatted := make([]string, len(bullets))
	for i, bullet := range bullets {
		formatted[i] = UnifyFormatting(MakeATSSafe(bullet))
	}
	return formatted
}
