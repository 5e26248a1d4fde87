package engine

import (
	"context"
	"fmt"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/rewrite-engine/internal/evidence"
	"github.com/jonathan/rewrite-engine/internal/lexicon"
	"github.com/jonathan/rewrite-engine/internal/llm"
	"github.com/jonathan/rewrite-engine/internal/planner"
	"github.com/jonathan/rewrite-engine/internal/prompts"
	"github.com/jonathan/rewrite-engine/internal/types"
	"github.com/jonathan/rewrite-engine/internal/validation"
)

// Engine runs evidence-anchored rewrites. Each request is independent; the
// engine holds no mutable per-request state, so one Engine is safe for
// concurrent use.
type Engine struct {
	client    llm.Client
	lex       *lexicon.Lexicon
	planner   *planner.Planner
	validator *validation.Validator
	cfg       Config
	log       *zap.Logger
	check     *playgroundvalidator.Validate
}

// New creates an engine. A nil logger disables logging.
func New(client llm.Client, lex *lexicon.Lexicon, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		client:    client,
		lex:       lex,
		planner:   planner.New(lex),
		validator: validation.New(lex),
		cfg:       cfg.withDefaults(),
		log:       logger,
		check:     playgroundvalidator.New(),
	}
}

// Outcome is the result of a dispatched rewrite request; exactly one field
// matching the request type is set.
type Outcome struct {
	Type    types.ContentType    `json:"type"`
	Bullet  *types.RewriteResult `json:"bullet,omitempty"`
	Summary *types.RewriteResult `json:"summary,omitempty"`
	Section *types.SectionResult `json:"section,omitempty"`
}

// Rewrite dispatches on the request's type tag. The variant set is closed;
// an unknown tag or a missing variant payload is invalid input.
func (e *Engine) Rewrite(ctx context.Context, req types.RewriteRequest) (*Outcome, error) {
	switch req.Type {
	case types.ContentBullet:
		if req.Bullet == nil {
			return nil, &Error{Code: CodeInvalidInput, Message: "bullet request payload is missing"}
		}
		result, err := e.RewriteBullet(ctx, req.Bullet)
		if err != nil {
			return nil, err
		}
		return &Outcome{Type: types.ContentBullet, Bullet: result}, nil
	case types.ContentSummary:
		if req.Summary == nil {
			return nil, &Error{Code: CodeInvalidInput, Message: "summary request payload is missing"}
		}
		result, err := e.RewriteSummary(ctx, req.Summary)
		if err != nil {
			return nil, err
		}
		return &Outcome{Type: types.ContentSummary, Summary: result}, nil
	case types.ContentSection:
		if req.Section == nil {
			return nil, &Error{Code: CodeInvalidInput, Message: "section request payload is missing"}
		}
		result, err := e.RewriteSection(ctx, req.Section)
		if err != nil {
			return nil, err
		}
		return &Outcome{Type: types.ContentSection, Section: result}, nil
	default:
		return nil, &Error{Code: CodeInvalidInput, Message: fmt.Sprintf("unknown request type %q", req.Type)}
	}
}

// RewriteBullet runs the full pipeline for a single bullet: plan, generate,
// validate, retry.
func (e *Engine) RewriteBullet(ctx context.Context, req *types.BulletRequest) (*types.RewriteResult, error) {
	if err := e.check.Struct(req); err != nil {
		return nil, &Error{Code: CodeInvalidInput, Message: "bullet request failed validation", Cause: err}
	}

	ledger, err := evidence.Build(req.Bullet, req.Extracted)
	if err != nil {
		return nil, &Error{Code: CodeEvidenceBuild, Message: "failed to build evidence ledger", Cause: err}
	}

	plan, err := e.planner.Plan(req.Bullet, ledger, req.Issues)
	if err != nil {
		return nil, &Error{Code: CodeInternal, Message: "failed to plan micro-actions", Cause: err}
	}

	basePrompt := prompts.BuildBulletPrompt(req.Bullet, ledger, plan)
	return e.runAttempts(ctx, attemptInput{
		contentType: types.ContentBullet,
		original:    req.Bullet,
		ledger:      ledger,
		constraints: plan.Constraints,
		basePrompt:  basePrompt,
		tier:        e.cfg.BulletTier,
	})
}

// RewriteSummary runs the pipeline for a professional summary. Summaries skip
// micro-action planning; the ledger and length cap alone constrain them.
func (e *Engine) RewriteSummary(ctx context.Context, req *types.SummaryRequest) (*types.RewriteResult, error) {
	if err := e.check.Struct(req); err != nil {
		return nil, &Error{Code: CodeInvalidInput, Message: "summary request failed validation", Cause: err}
	}

	ledger, err := evidence.BuildForSection(req.Summary, req.Extracted)
	if err != nil {
		return nil, &Error{Code: CodeEvidenceBuild, Message: "failed to build evidence ledger", Cause: err}
	}

	constraints := e.planner.ConstraintsFor(types.ContentSummary)
	basePrompt := prompts.BuildSummaryPrompt(req.Summary, req.TargetRole, ledger, constraints.MaxLength)
	return e.runAttempts(ctx, attemptInput{
		contentType: types.ContentSummary,
		original:    req.Summary,
		ledger:      ledger,
		constraints: constraints,
		basePrompt:  basePrompt,
		tier:        e.cfg.SummaryTier,
	})
}

// RewriteSection rewrites every bullet in a section through the parallel
// fan-out, preserving input order in the results.
func (e *Engine) RewriteSection(ctx context.Context, req *types.SectionRequest) (*types.SectionResult, error) {
	if err := e.check.Struct(req); err != nil {
		return nil, &Error{Code: CodeInvalidInput, Message: "section request failed validation", Cause: err}
	}

	bulletReqs := make([]types.BulletRequest, len(req.Bullets))
	for i, bullet := range req.Bullets {
		issues := []string{}
		if req.TargetRole != "" {
			issues = append(issues, planner.IssueRoleTailoring)
		}
		bulletReqs[i] = types.BulletRequest{
			Bullet:    bullet,
			Issues:    issues,
			Extracted: sectionEntities(req),
		}
	}

	results, err := e.RewriteBulletsParallel(ctx, bulletReqs)
	if err != nil {
		return nil, err
	}

	return &types.SectionResult{
		SectionTitle: req.SectionTitle,
		Results:      results,
	}, nil
}

// sectionEntities merges the target role into the extracted titles so the
// role-tailoring action has evidence to cite.
func sectionEntities(req *types.SectionRequest) *types.ExtractedEntities {
	if req.TargetRole == "" {
		return req.Extracted
	}
	merged := types.ExtractedEntities{}
	if req.Extracted != nil {
		merged = *req.Extracted
	}
	for _, title := range merged.Titles {
		if strings.EqualFold(title, req.TargetRole) {
			return &merged
		}
	}
	merged.Titles = append(append([]string(nil), merged.Titles...), req.TargetRole)
	return &merged
}

// CanImprove exposes the planner's cheap gate so upstream callers can skip
// bullets that would gain nothing from a rewrite.
func (e *Engine) CanImprove(text string) bool {
	return e.planner.CanImprove(text)
}
