package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/rewrite-engine/internal/evidence"
	"github.com/jonathan/rewrite-engine/internal/types"
)

// Issue names accepted from upstream callers. Auto-detection runs regardless;
// issues only force an action the caller already diagnosed.
const (
	IssueWeakVerb      = "weak_verb"
	IssueFluff         = "fluff"
	IssueNoMetric      = "no_metric"
	IssueRoleTailoring = "role_tailoring"
)

// Plan produces an ordered transformation plan for the original text given
// the evidence ledger and any caller-diagnosed issues. Pure function: no I/O,
// deterministic output for identical inputs.
func (p *Planner) Plan(original string, ledger *types.EvidenceLedger, issues []string) (*types.RewritePlan, error) {
	issueSet := make(map[string]bool, len(issues))
	for _, issue := range issues {
		issueSet[issue] = true
	}

	var actions []types.MicroAction

	if match, ok := p.DetectWeakVerb(original); ok || issueSet[IssueWeakVerb] {
		action := types.MicroAction{
			Type: types.ActionVerbUpgrade,
			Data: map[string]string{},
		}
		if match != nil {
			action.Data["weak_verb"] = match.Phrase
			ranked := p.rankReplacements(match.Replacements, ledger)
			action.Data["replacements"] = strings.Join(ranked, ", ")
		}
		actions = append(actions, action)
	}

	for _, fluff := range p.DetectFluff(original) {
		actions = append(actions, types.MicroAction{
			Type: types.ActionFluffRemoval,
			Data: map[string]string{"phrase": fluff.Phrase},
		})
	}

	hasMetric := p.HasMetric(original)

	// Surface ledger numbers the bullet does not mention yet.
	if !hasMetric {
		if ids, values := p.unmentionedMetricEvidence(original, ledger); len(ids) > 0 {
			action, err := newSurfacingAction(types.ActionMetricSurfacing, map[string]string{
				"metrics": strings.Join(values, ", "),
			}, ids)
			if err != nil {
				return nil, err
			}
			actions = append(actions, *action)
		}
	}

	// Surface tool/skill evidence the bullet does not mention yet.
	if !hasMetric {
		if ids, terms := p.unmentionedToolEvidence(original, ledger); len(ids) > 0 {
			action, err := newSurfacingAction(types.ActionToolSurfacing, map[string]string{
				"terms": strings.Join(terms, ", "),
			}, ids)
			if err != nil {
				return nil, err
			}
			actions = append(actions, *action)
		}
	}

	if implied := p.DetectImpliedMetrics(original); len(implied) > 0 {
		actions = append(actions, types.MicroAction{
			Type: types.ActionSpecificityIncrease,
			Data: map[string]string{"vague_terms": strings.Join(implied, ", ")},
		})
	}

	if issueSet[IssueRoleTailoring] {
		if item, ok := ledger.ItemByID(evidence.TitlesEvidenceID); ok {
			actions = append(actions, types.MicroAction{
				Type:        types.ActionRoleTailoring,
				Data:        map[string]string{"titles": item.Text},
				EvidenceIDs: []string{item.ID},
			})
		}
	}

	return &types.RewritePlan{
		Transformations: actions,
		Constraints:     p.ConstraintsFor(types.ContentBullet),
	}, nil
}

// ConstraintsFor derives the base constraints for a content type. Forbidden
// sets start empty; the retry controller renders concrete rejected tokens
// into them between attempts.
func (p *Planner) ConstraintsFor(contentType types.ContentType) types.RewriteConstraints {
	maxLength := p.lex.Thresholds.MaxBulletLength
	if contentType == types.ContentSummary {
		maxLength = p.lex.Thresholds.MaxSummaryLength
	}
	return types.RewriteConstraints{MaxLength: maxLength}
}

// CanImprove is a cheap gate used by upstream callers to skip bullets that
// would gain nothing from a rewrite. Already-strong text (explicit verb,
// metric, specific noun phrases, no fluff) returns false.
func (p *Planner) CanImprove(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	if _, weak := p.DetectWeakVerb(text); weak {
		return true
	}
	if p.HasFluff(text) {
		return true
	}
	if len(p.DetectImpliedMetrics(text)) > 0 {
		return true
	}
	if !p.HasMetric(text) && !p.hasSufficientSpecificity(text) {
		return true
	}
	return false
}

// rankReplacements orders candidate strong verbs by contextual fit: verbs
// whose domain terms appear in the ledger rank first. Sort is stable so the
// lexicon's own ordering breaks ties.
func (p *Planner) rankReplacements(candidates []string, ledger *types.EvidenceLedger) []string {
	if ledger == nil || len(candidates) < 2 {
		return candidates
	}
	ledgerTerms := evidence.AllNormalizedTerms(ledger)

	type scored struct {
		verb  string
		score int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, verb := range candidates {
		score := 0
		for _, domainTerm := range p.lex.VerbDomains[strings.ToLower(verb)] {
			if ledgerTerms[domainTerm] {
				score++
			}
		}
		ranked = append(ranked, scored{verb: verb, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	result := make([]string, len(ranked))
	for i, r := range ranked {
		result[i] = r.verb
	}
	return result
}

// unmentionedMetricEvidence finds numeric tokens in ledger terms that the
// original text does not mention, returning the supporting item IDs.
func (p *Planner) unmentionedMetricEvidence(original string, ledger *types.EvidenceLedger) (ids []string, values []string) {
	lowerOriginal := strings.ToLower(original)
	seen := make(map[string]bool)
	for _, item := range ledger.Items {
		if item.ID == evidence.SelfEvidenceID {
			continue
		}
		for _, term := range item.NormalizedTerms {
			if !p.containsMetric(term) || strings.Contains(lowerOriginal, term) {
				continue
			}
			if !seen[item.ID] {
				seen[item.ID] = true
				ids = append(ids, item.ID)
			}
			values = append(values, term)
		}
	}
	return ids, values
}

// unmentionedToolEvidence finds tool/skill evidence items whose terms the
// original text does not mention.
func (p *Planner) unmentionedToolEvidence(original string, ledger *types.EvidenceLedger) (ids []string, terms []string) {
	lowerOriginal := strings.ToLower(original)
	for _, id := range []string{evidence.ToolsEvidenceID, evidence.SkillsEvidenceID} {
		item, ok := ledger.ItemByID(id)
		if !ok {
			continue
		}
		var missing []string
		for _, term := range item.NormalizedTerms {
			if !strings.Contains(lowerOriginal, term) {
				missing = append(missing, term)
			}
		}
		if len(missing) > 0 {
			ids = append(ids, item.ID)
			terms = append(terms, missing...)
		}
	}
	return ids, terms
}

func (p *Planner) containsMetric(term string) bool {
	for _, re := range p.lex.MetricPatterns {
		if re.MatchString(term) {
			return true
		}
	}
	return false
}

// hasSufficientSpecificity counts concrete tokens: known tools and
// capitalized mid-sentence proper nouns.
func (p *Planner) hasSufficientSpecificity(text string) bool {
	fields := strings.Fields(text)
	specific := 0
	for i, field := range fields {
		token := strings.ToLower(strings.Trim(field, ".,;:!?()"))
		if p.lex.KnownTools[token] {
			specific++
			continue
		}
		if i > 0 && len(field) > 1 && field[0] >= 'A' && field[0] <= 'Z' {
			specific++
		}
	}
	return specific >= p.lex.Thresholds.MinSpecificTokens
}

// newSurfacingAction constructs a surfacing action, enforcing at construction
// time that it carries evidence IDs. An ungrounded surfacing action can never
// be planned.
func newSurfacingAction(actionType types.ActionType, data map[string]string, evidenceIDs []string) (*types.MicroAction, error) {
	if len(evidenceIDs) == 0 {
		return nil, fmt.Errorf("%s action requires at least one evidence id", actionType)
	}
	return &types.MicroAction{Type: actionType, Data: data, EvidenceIDs: evidenceIDs}, nil
}
