// Package coherence normalizes an already-validated collection of bullets:
// tense unification, formatting cleanup, and ATS-safe character substitution.
// It operates across a set; tense consistency is not a property of a single
// bullet.
package coherence

import (
	"strings"

	"github.com/jonathan/rewrite-engine/internal/lexicon"
)

// Tense classifies the leading verb form of a bullet
type Tense string

// Tense constants
const (
	TensePast    Tense = "past"
	TensePresent Tense = "present"
	TenseOther   Tense = "other"
)

// Confidence grades a dominant-tense majority
type Confidence string

// Confidence constants
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// DominantTense is the majority tense across a bullet set
type DominantTense struct {
	Tense      Tense
	Confidence Confidence
}

// Processor applies coherence passes using the lexicon's verb tables.
type Processor struct {
	lex *lexicon.Lexicon
}

// New creates a processor backed by the given lexicon.
func New(lex *lexicon.Lexicon) *Processor {
	return &Processor{lex: lex}
}

// DetectBulletTense classifies the leading verb of a bullet as past, present
// or other via the verb tense tables, with an -ed suffix heuristic for verbs
// outside the table.
func (p *Processor) DetectBulletTense(text string) Tense {
	verb := leadingWord(text)
	if verb == "" {
		return TenseOther
	}

	if _, ok := p.lex.PastToPresent[verb]; ok {
		return TensePast
	}
	if _, ok := p.lex.PresentToPast[verb]; ok {
		return TensePresent
	}
	// Third-person present ("Manages") maps through its base form.
	if strings.HasSuffix(verb, "s") {
		if _, ok := p.lex.PresentToPast[strings.TrimSuffix(verb, "s")]; ok {
			return TensePresent
		}
	}
	if strings.HasSuffix(verb, "ed") && len(verb) > 3 {
		return TensePast
	}
	return TenseOther
}

// DetectDominantTense takes a majority vote across the set. Confidence is
// high when the majority share meets the configured ratio, medium for a
// simple majority, low for a near-tie or an empty set.
func (p *Processor) DetectDominantTense(bullets []string) DominantTense {
	if len(bullets) == 0 {
		return DominantTense{Tense: TenseOther, Confidence: ConfidenceLow}
	}

	counts := map[Tense]int{}
	for _, bullet := range bullets {
		counts[p.DetectBulletTense(bullet)]++
	}

	dominant := TensePast
	if counts[TensePresent] > counts[TensePast] {
		dominant = TensePresent
	}
	if counts[TenseOther] > counts[dominant] {
		dominant = TenseOther
	}

	share := float64(counts[dominant]) / float64(len(bullets))
	switch {
	case share >= p.lex.Thresholds.TenseHighConfidence:
		return DominantTense{Tense: dominant, Confidence: ConfidenceHigh}
	case share > 0.5:
		return DominantTense{Tense: dominant, Confidence: ConfidenceMedium}
	default:
		return DominantTense{Tense: dominant, Confidence: ConfidenceLow}
	}
}

// UnifyToDominant rewrites each bullet's leading verb form to match the
// dominant tense. Verbs outside the tense tables are left untouched.
func (p *Processor) UnifyToDominant(bullets []string) []string {
	dominant := p.DetectDominantTense(bullets)
	if dominant.Tense == TenseOther {
		return append([]string(nil), bullets...)
	}

	unified := make([]string, len(bullets))
	for i, bullet := range bullets {
		unified[i] = p.convertLeadingVerb(bullet, dominant.Tense)
	}
	return unified
}

func (p *Processor) convertLeadingVerb(text string, target Tense) string {
	trimmed := strings.TrimSpace(text)
	verb := leadingWord(trimmed)
	if verb == "" {
		return text
	}

	var replacement string
	switch target {
	case TensePast:
		replacement = p.lex.PresentToPast[verb]
		if replacement == "" {
			replacement = p.lex.PresentToPast[strings.TrimSuffix(verb, "s")]
		}
	case TensePresent:
		replacement = p.lex.PastToPresent[verb]
	}
	if replacement == "" {
		return text
	}

	// Preserve the original capitalization of the leading word.
	fields := strings.SplitN(trimmed, " ", 2)
	if isCapitalized(fields[0]) {
		replacement = capitalize(replacement)
	}
	if len(fields) == 1 {
		return replacement
	}
	return replacement + " " + fields[1]
}

func leadingWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Trim(fields[0], ".,!?;:"))
}

func isCapitalized(word string) bool {
	return word != "" && word[0] >= 'A' && word[0] <= 'Z'
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
