// Package validation proves that every new claim in generated text is
// traceable to a known fact before the rewrite is released. Detection is
// driven by explicit pattern tables so each class of fabrication is
// independently testable.
package validation

import (
	"regexp"
	"strings"

	"github.com/jonathan/rewrite-engine/internal/lexicon"
)

var (
	// casedWordPattern captures words with their original casing, keeping
	// punctuation common in technology names (node.js, ci/cd, c++, c#).
	casedWordPattern = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9.+#/-]*`)

	// companyPattern captures sequences of two or more capitalized words,
	// optionally joined by "&" ("Goldman Sachs", "Procter & Gamble").
	companyPattern = regexp.MustCompile(`\b[A-Z][a-zA-Z0-9]+(?:\s+(?:&\s+)?[A-Z][a-zA-Z0-9]+)+\b`)

	// letterDigitPattern matches letter-digit mixes like k8s, ec2, s3.
	letterDigitPattern = regexp.MustCompile(`^[A-Za-z]+\d+[A-Za-z0-9]*$`)
)

// companySuffixes mark a single capitalized word as company-shaped when it
// precedes one of these ("Acme Inc").
var companySuffixes = map[string]bool{
	"inc": true, "llc": true, "corp": true, "ltd": true, "gmbh": true,
	"labs": true, "technologies": true, "systems": true, "solutions": true,
	"group": true, "partners": true, "capital": true, "bank": true,
}

// NumericTokens extracts every numeric token from text using the lexicon's
// metric pattern family plus bare numbers. Overlapping matches keep the
// longest span ("40%" wins over "40"). Tokens are normalized: lower-cased,
// commas stripped.
func NumericTokens(lex *lexicon.Lexicon, text string) []string {
	type span struct {
		start, end int
		value      string
	}
	var spans []span
	for _, re := range lex.MetricPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1], value: text[loc[0]:loc[1]]})
		}
	}

	// Longest match at each position wins.
	accepted := make([]span, 0, len(spans))
	for _, s := range spans {
		replaced := false
		overlaps := false
		for i, a := range accepted {
			if s.start < a.end && a.start < s.end {
				overlaps = true
				if s.end-s.start > a.end-a.start {
					accepted[i] = s
					replaced = true
				}
				break
			}
		}
		if !overlaps && !replaced {
			accepted = append(accepted, s)
		}
	}

	seen := make(map[string]bool, len(accepted))
	tokens := make([]string, 0, len(accepted))
	for _, s := range accepted {
		token := normalizeNumeric(s.value)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}

func normalizeNumeric(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), ",", "")
}

// TechTerms extracts technology-shaped tokens: known tool names, words with
// interior capitals (PostgreSQL), dotted names (node.js), and letter-digit
// mixes (k8s, ec2). Matching leans over-inclusive; membership against the
// ledger decides what is actually flagged.
func TechTerms(lex *lexicon.Lexicon, text string) []string {
	words := casedWordPattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(words))
	var terms []string
	for _, word := range words {
		trimmed := strings.Trim(word, ".-/")
		if len(trimmed) < 2 {
			continue
		}
		// Digit-led tokens ("1M", "40%") belong to the numeric check.
		if trimmed[0] >= '0' && trimmed[0] <= '9' {
			continue
		}
		lower := strings.ToLower(trimmed)
		if seen[lower] {
			continue
		}
		if techShaped(lex, trimmed) {
			seen[lower] = true
			terms = append(terms, trimmed)
		}
	}
	return terms
}

// techShaped reports whether a single word looks like a technology name:
// a known tool, interior capitals (PostgreSQL, REST), a dotted name
// (node.js), or a letter-digit mix (k8s).
func techShaped(lex *lexicon.Lexicon, word string) bool {
	lower := strings.ToLower(word)
	return lex.KnownTools[lower] || hasInteriorUpper(word) || isDottedName(lower) || letterDigitPattern.MatchString(word)
}

func hasInteriorUpper(word string) bool {
	for i := 1; i < len(word); i++ {
		if word[i] >= 'A' && word[i] <= 'Z' {
			return true
		}
	}
	return false
}

func isDottedName(lower string) bool {
	idx := strings.Index(lower, ".")
	return idx > 0 && idx < len(lower)-1 && !strings.ContainsAny(lower, "0123456789")
}

// CompanyNames extracts company-shaped names: capitalized multi-word
// sequences, and single capitalized words followed by a company suffix.
func CompanyNames(lex *lexicon.Lexicon, text string) []string {
	seen := make(map[string]bool)
	var names []string

	for _, match := range companyPattern.FindAllString(text, -1) {
		// Require a company suffix, or a sequence that does not open the
		// sentence; otherwise ordinary "Led Backend Migration" phrasing
		// would be flagged.
		words := strings.Fields(match)
		last := strings.ToLower(strings.Trim(words[len(words)-1], ".,"))
		if !companySuffixes[last] && strings.HasPrefix(text, match) {
			continue
		}
		// Title-case technology phrases ("REST API Gateway") are not
		// company names; their tech tokens are vetted by the tool check.
		if !companySuffixes[last] && anyTechShaped(lex, words) {
			continue
		}
		lower := strings.ToLower(match)
		if !seen[lower] {
			seen[lower] = true
			names = append(names, match)
		}
	}

	// Single capitalized word + suffix ("Acme Inc" is caught above; this
	// catches "ACME Inc." split by punctuation normalization edge cases).
	fields := strings.Fields(text)
	for i := 0; i+1 < len(fields); i++ {
		suffix := strings.ToLower(strings.Trim(fields[i+1], ".,"))
		if !companySuffixes[suffix] {
			continue
		}
		head := strings.Trim(fields[i], ".,")
		if head == "" || head[0] < 'A' || head[0] > 'Z' {
			continue
		}
		name := head + " " + strings.Trim(fields[i+1], ",")
		lower := strings.ToLower(name)
		if !seen[lower] {
			seen[lower] = true
			names = append(names, name)
		}
	}

	return names
}

// anyTechShaped reports whether any word in the sequence is tech-shaped.
func anyTechShaped(lex *lexicon.Lexicon, words []string) bool {
	for _, word := range words {
		if techShaped(lex, strings.Trim(word, ".,")) {
			return true
		}
	}
	return false
}

// ScaleClaims extracts scale-claim phrases ("massive", "enterprise-wide")
// present in the text, using the lexicon's phrase table.
func ScaleClaims(lex *lexicon.Lexicon, text string) []string {
	lower := strings.ToLower(text)
	var claims []string
	for _, phrase := range lex.ScalePhrases {
		if strings.Contains(lower, phrase) {
			claims = append(claims, phrase)
		}
	}
	return claims
}
