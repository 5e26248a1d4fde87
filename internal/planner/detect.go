// Package planner performs pure linguistic analysis over original text and an
// evidence ledger, producing an ordered transformation plan. No I/O happens
// here; everything is driven by the lexicon tables.
package planner

import (
	"strings"

	"github.com/jonathan/rewrite-engine/internal/lexicon"
)

// FluffMatch is one detected filler phrase occurrence
type FluffMatch struct {
	Phrase string
	Index  int
}

// MetricMatch is one detected explicit metric occurrence
type MetricMatch struct {
	Value string
	Index int
}

// WeakVerbMatch describes a weak leading verb and its suggested replacements
type WeakVerbMatch struct {
	Phrase       string
	Replacements []string
}

// Planner analyzes text against an immutable lexicon.
type Planner struct {
	lex *lexicon.Lexicon
}

// New creates a planner backed by the given lexicon.
func New(lex *lexicon.Lexicon) *Planner {
	return &Planner{lex: lex}
}

// DetectWeakVerb checks the leading token(s) of text against the weak-verb
// table. Multi-word phrases ("worked on") match before single words.
func (p *Planner) DetectWeakVerb(text string) (*WeakVerbMatch, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return nil, false
	}
	for _, phrase := range p.lex.WeakVerbPhrases {
		if lower == phrase || strings.HasPrefix(lower, phrase+" ") {
			return &WeakVerbMatch{
				Phrase:       phrase,
				Replacements: p.lex.WeakVerbs[phrase],
			}, true
		}
	}
	return nil, false
}

// DetectFluff returns every filler phrase occurrence in the text.
func (p *Planner) DetectFluff(text string) []FluffMatch {
	lower := strings.ToLower(text)
	var matches []FluffMatch
	for _, phrase := range p.lex.FluffPhrases {
		idx := indexWord(lower, phrase)
		if idx >= 0 {
			matches = append(matches, FluffMatch{Phrase: phrase, Index: idx})
		}
	}
	return matches
}

// HasFluff reports whether the text contains any filler phrase.
func (p *Planner) HasFluff(text string) bool {
	return len(p.DetectFluff(text)) > 0
}

// DetectMetrics finds explicit numeric patterns already present in the text.
func (p *Planner) DetectMetrics(text string) []MetricMatch {
	var matches []MetricMatch
	seen := make(map[string]bool)
	for _, re := range p.lex.MetricPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			value := text[loc[0]:loc[1]]
			if seen[value] {
				continue
			}
			seen[value] = true
			matches = append(matches, MetricMatch{Value: value, Index: loc[0]})
		}
	}
	return matches
}

// HasMetric reports whether the text contains an explicit metric.
func (p *Planner) HasMetric(text string) bool {
	return len(p.DetectMetrics(text)) > 0
}

// DetectImpliedMetrics flags qualitative-but-quantifiable language ("many",
// "several") as improvement opportunities. It never asserts a number.
func (p *Planner) DetectImpliedMetrics(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, word := range p.lex.ImpliedMetricWords {
		if indexWord(lower, word) >= 0 {
			found = append(found, word)
		}
	}
	return found
}

// indexWord finds phrase in text at word boundaries, returning -1 if absent.
// Substring matching alone would flag "every" for "very".
func indexWord(text, phrase string) int {
	start := 0
	for {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return -1
		}
		abs := start + idx
		beforeOK := abs == 0 || !isWordChar(text[abs-1])
		end := abs + len(phrase)
		afterOK := end >= len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return abs
		}
		start = abs + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
