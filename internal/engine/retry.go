package engine

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/rewrite-engine/internal/llm"
	"github.com/jonathan/rewrite-engine/internal/parsing"
	"github.com/jonathan/rewrite-engine/internal/prompts"
	"github.com/jonathan/rewrite-engine/internal/types"
	"github.com/jonathan/rewrite-engine/internal/validation"
)

// attemptState tracks the retry controller's state machine per request.
type attemptState string

const (
	statePlanned    attemptState = "PLANNED"
	stateGenerated  attemptState = "GENERATED"
	stateValidating attemptState = "VALIDATING"
	statePassed     attemptState = "PASSED"
	stateRetrying   attemptState = "RETRYING"
	stateExhausted  attemptState = "EXHAUSTED"
)

// attemptInput carries everything the retry loop needs. The ledger and
// constraints are never mutated between attempts; only the rendered prompt
// and the temperature change.
type attemptInput struct {
	contentType types.ContentType
	original    string
	ledger      *types.EvidenceLedger
	constraints types.RewriteConstraints
	basePrompt  prompts.Prompt
	tier        llm.ModelTier
}

// quotedToken pulls the concrete rejected token out of a validation message
// so it can be rendered verbatim into the strict retry prompt.
var quotedToken = regexp.MustCompile(`"([^"]+)"`)

// runAttempts is the retry controller. Backend timeouts and validation
// failures share one attempt budget. On exhaustion it returns the
// best-available attempt with Passed=false rather than an error; a failed
// rewrite is never promoted to success.
func (e *Engine) runAttempts(ctx context.Context, in attemptInput) (*types.RewriteResult, error) {
	requestID := uuid.NewString()
	log := e.log.With(
		zap.String("request_id", requestID),
		zap.String("content_type", string(in.contentType)),
	)
	log.Debug("attempt loop starting", zap.String("state", string(statePlanned)))

	strict := in.constraints
	var priorFailures []types.ValidationItem
	var best *types.RewriteResult
	var lastBackendErr error
	totalAttempts := e.cfg.MaxRetries + 1

	for attempt := 0; attempt < totalAttempts; attempt++ {
		prompt := in.basePrompt
		if attempt > 0 {
			prompt = prompts.BuildRetryPrompt(prompt, priorFailures)
			prompt = prompts.AddStrictConstraints(prompt, strict)
		}
		temperature := prompts.TemperatureForAttempt(in.contentType, attempt)

		raw, err := e.client.Generate(ctx, llm.Request{
			System:      prompt.System,
			User:        prompt.User,
			Temperature: temperature,
			Tier:        in.tier,
		})
		if err != nil {
			lastBackendErr = err
			log.Warn("generation attempt failed",
				zap.Int("attempt", attempt+1),
				zap.Bool("timeout", llm.IsTimeout(err)),
				zap.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		log.Debug("generation attempt complete",
			zap.Int("attempt", attempt+1),
			zap.String("state", string(stateGenerated)),
			zap.Float32("temperature", temperature))

		parsed, err := parsing.Parse(raw)
		if err != nil {
			// Unusable backend output counts against the same budget as an
			// unavailable backend.
			var parseErr *parsing.ParseError
			if !errors.As(err, &parseErr) {
				return nil, &Error{Code: CodeInternal, Message: "response parsing failed unexpectedly", Cause: err}
			}
			lastBackendErr = &llm.BackendError{Message: "backend returned unparseable output", Cause: err}
			log.Warn("response unparseable", zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}

		log.Debug("validating attempt", zap.Int("attempt", attempt+1), zap.String("state", string(stateValidating)))
		verdict := e.validator.ValidateRewrite(in.original, parsed.Improved, in.ledger, parsed.EvidenceMap)

		result := &types.RewriteResult{
			RequestID:   requestID,
			Original:    in.original,
			Improved:    parsed.Improved,
			EvidenceMap: parsed.EvidenceMap,
			Validation:  verdict,
			Reasoning:   parsed.Reasoning,
			Attempts:    attempt + 1,
		}

		if verdict.Passed {
			log.Info("rewrite passed validation",
				zap.Int("attempts", attempt+1),
				zap.String("state", string(statePassed)))
			return result, nil
		}

		priorFailures = validation.CriticalErrors(verdict)
		strict = accumulateForbidden(strict, priorFailures)
		if best == nil || verdict.CriticalCount() <= best.Validation.CriticalCount() {
			best = result
		}
		log.Warn("rewrite failed validation",
			zap.Int("attempt", attempt+1),
			zap.Int("critical_items", verdict.CriticalCount()),
			zap.Bool("fabrication", validation.HasFabricationErrors(verdict)),
			zap.String("state", string(stateRetrying)))
	}

	if best != nil {
		log.Warn("attempt budget exhausted, returning best failed attempt",
			zap.String("state", string(stateExhausted)),
			zap.Int("critical_items", best.Validation.CriticalCount()))
		return best, nil
	}

	if lastBackendErr != nil {
		code := CodeLLMError
		if llm.IsTimeout(lastBackendErr) {
			code = CodeTimeout
		}
		return nil, &Error{Code: code, Message: "generation backend unavailable after all attempts", Cause: lastBackendErr}
	}

	return nil, &Error{Code: CodeInternal, Message: "attempt loop produced neither result nor error"}
}

// accumulateForbidden copies the constraints and appends the concrete tokens
// behind each fabrication finding, so retry prompts can name them. The
// original constraints (and the plan holding them) are never mutated.
func accumulateForbidden(constraints types.RewriteConstraints, failures []types.ValidationItem) types.RewriteConstraints {
	out := types.RewriteConstraints{
		MaxLength:          constraints.MaxLength,
		ForbiddenNumbers:   append([]string(nil), constraints.ForbiddenNumbers...),
		ForbiddenTools:     append([]string(nil), constraints.ForbiddenTools...),
		ForbiddenCompanies: append([]string(nil), constraints.ForbiddenCompanies...),
	}
	for _, failure := range failures {
		match := quotedToken.FindStringSubmatch(failure.Message)
		if match == nil {
			continue
		}
		token := match[1]
		switch failure.Code {
		case types.CodeNewNumberAdded:
			out.ForbiddenNumbers = appendUnique(out.ForbiddenNumbers, token)
		case types.CodeNewToolAdded:
			out.ForbiddenTools = appendUnique(out.ForbiddenTools, token)
		case types.CodeNewCompanyAdded:
			out.ForbiddenCompanies = appendUnique(out.ForbiddenCompanies, token)
		}
	}
	return out
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
