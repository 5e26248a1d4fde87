// Package lexicon provides the static language tables used by the planner,
// validator and coherence passes. Tables are embedded at compile time, loaded
// once, and immutable afterward, so they are safe for unsynchronized
// concurrent reads.
package lexicon

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed lexicon.json
var lexiconFiles embed.FS

// TensePair maps the past and present forms of one verb.
type TensePair struct {
	Past    string `json:"past"`
	Present string `json:"present"`
}

// Thresholds holds the tunable numeric settings. These are a tuning concern,
// not a correctness one; tests exercise them with synthetic values.
type Thresholds struct {
	LowOverlapFloor     float64 `json:"low_overlap_floor"`
	TenseHighConfidence float64 `json:"tense_high_confidence"`
	MaxBulletLength     int     `json:"max_bullet_length"`
	MaxSummaryLength    int     `json:"max_summary_length"`
	MinSpecificTokens   int     `json:"min_specific_tokens"`
}

// fileFormat mirrors the JSON layout of lexicon.json.
type fileFormat struct {
	WeakVerbs          map[string][]string `json:"weak_verbs"`
	VerbDomains        map[string][]string `json:"verb_domains"`
	FluffPhrases       []string            `json:"fluff_phrases"`
	MetricPatterns     []string            `json:"metric_patterns"`
	ImpliedMetricWords []string            `json:"implied_metric_words"`
	ScalePhrases       []string            `json:"scale_phrases"`
	KnownTools         []string            `json:"known_tools"`
	TensePairs         []TensePair         `json:"tense_pairs"`
	Thresholds         Thresholds          `json:"thresholds"`
}

// Lexicon holds the parsed and compiled tables.
type Lexicon struct {
	// WeakVerbs maps a weak verb phrase to suggested strong replacements.
	WeakVerbs map[string][]string
	// WeakVerbPhrases is every weak verb phrase, longest first, so that
	// multi-word phrases match before their single-word prefixes.
	WeakVerbPhrases []string
	// VerbDomains maps a strong verb to domain terms it pairs well with.
	VerbDomains map[string][]string
	// FluffPhrases are filler phrases that add no information.
	FluffPhrases []string
	// MetricPatterns are compiled regexes for explicit numeric metrics.
	MetricPatterns []*regexp.Regexp
	// ImpliedMetricWords are qualitative-but-quantifiable words.
	ImpliedMetricWords []string
	// ScalePhrases are scale claims that require evidence.
	ScalePhrases []string
	// KnownTools is a lowercase set of technology names.
	KnownTools map[string]bool
	// PastToPresent and PresentToPast map verb tense forms.
	PastToPresent map[string]string
	PresentToPast map[string]string
	// Thresholds are the tunable settings.
	Thresholds Thresholds
}

var (
	defaultLexicon *Lexicon
	defaultErr     error
	loadOnce       sync.Once
)

// Load returns the embedded default lexicon, parsing it on first use.
func Load() (*Lexicon, error) {
	loadOnce.Do(func() {
		data, err := lexiconFiles.ReadFile("lexicon.json")
		if err != nil {
			defaultErr = fmt.Errorf("failed to read embedded lexicon: %w", err)
			return
		}
		defaultLexicon, defaultErr = parse(data)
	})
	return defaultLexicon, defaultErr
}

// MustLoad returns the embedded default lexicon, panicking on failure.
// The embedded file is validated by tests, so failure here is a build defect.
func MustLoad() *Lexicon {
	lex, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load lexicon: %v", err))
	}
	return lex
}

// LoadFrom parses a lexicon from a JSON file on disk, allowing deployments
// to swap the starter tables without rebuilding.
func LoadFrom(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Lexicon, error) {
	var raw fileFormat
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon JSON: %w", err)
	}

	if len(raw.WeakVerbs) == 0 {
		return nil, fmt.Errorf("lexicon has no weak verb entries")
	}
	if len(raw.MetricPatterns) == 0 {
		return nil, fmt.Errorf("lexicon has no metric patterns")
	}

	lex := &Lexicon{
		WeakVerbs:          raw.WeakVerbs,
		VerbDomains:        raw.VerbDomains,
		FluffPhrases:       raw.FluffPhrases,
		ImpliedMetricWords: raw.ImpliedMetricWords,
		ScalePhrases:       raw.ScalePhrases,
		KnownTools:         make(map[string]bool, len(raw.KnownTools)),
		PastToPresent:      make(map[string]string, len(raw.TensePairs)),
		PresentToPast:      make(map[string]string, len(raw.TensePairs)),
		Thresholds:         raw.Thresholds,
	}

	for phrase := range raw.WeakVerbs {
		lex.WeakVerbPhrases = append(lex.WeakVerbPhrases, phrase)
	}
	sort.Slice(lex.WeakVerbPhrases, func(i, j int) bool {
		a, b := lex.WeakVerbPhrases[i], lex.WeakVerbPhrases[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	for _, pattern := range raw.MetricPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid metric pattern %q: %w", pattern, err)
		}
		lex.MetricPatterns = append(lex.MetricPatterns, re)
	}

	for _, tool := range raw.KnownTools {
		lex.KnownTools[strings.ToLower(strings.TrimSpace(tool))] = true
	}

	for _, pair := range raw.TensePairs {
		past := strings.ToLower(pair.Past)
		present := strings.ToLower(pair.Present)
		lex.PastToPresent[past] = present
		lex.PresentToPast[present] = past
	}

	applyThresholdDefaults(&lex.Thresholds)

	return lex, nil
}

func applyThresholdDefaults(t *Thresholds) {
	if t.LowOverlapFloor <= 0 {
		t.LowOverlapFloor = 0.18
	}
	if t.TenseHighConfidence <= 0 {
		t.TenseHighConfidence = 0.8
	}
	if t.MaxBulletLength <= 0 {
		t.MaxBulletLength = 220
	}
	if t.MaxSummaryLength <= 0 {
		t.MaxSummaryLength = 650
	}
	if t.MinSpecificTokens <= 0 {
		t.MinSpecificTokens = 2
	}
}
