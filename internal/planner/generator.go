package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/cyberglobes/querybuilder/internal/catalog"
	"github.com/cyberglobes/querybuilder/internal/llm"
	"github.com/cyberglobes/querybuilder/internal/plan"
)

// ErrBackendUnavailable means the model backend itself could not be
// reached. Distinct from GenerationError, which means the backend answered
// but never produced a schema-conformant plan.
var ErrBackendUnavailable = errors.New("model backend unavailable")

// GenerationError is returned when the retry budget is exhausted without a
// valid plan. No partial plan is ever returned alongside it.
type GenerationError struct {
	Attempts int
	LastErr  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("no valid plan after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *GenerationError) Unwrap() error {
	return e.LastErr
}

// maxRetries is the number of re-prompts after the first failed attempt.
const maxRetries = 2

// Generator turns a natural language request into a validated QueryPlan.
// The only non-deterministic component in the pipeline; everything
// downstream of the returned plan is pure.
type Generator struct {
	LLM        llm.LLMClient
	Catalog    *catalog.Store
	MaxRetries int
}

func NewGenerator(llmClient llm.LLMClient, cat *catalog.Store) *Generator {
	return &Generator{
		LLM:        llmClient,
		Catalog:    cat,
		MaxRetries: maxRetries,
	}
}

// Generate produces a schema-conformant QueryPlan for the prompt. Options
// are advisory generation context, except post_count, date_from and
// date_to which unconditionally override the generated metadata.
func (g *Generator) Generate(ctx context.Context, prompt string, options map[string]interface{}) (*plan.QueryPlan, error) {
	summary, err := g.Catalog.Summary(ctx)
	if err != nil {
		return nil, err
	}

	system := buildSystemPrompt(summary)
	user := buildUserMessage(prompt, options)

	log.Printf("Generating plan for: %s", prompt)

	var lastErr error
	attempts := g.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		turn := user
		if lastErr != nil {
			turn = fmt.Sprintf("%s\n\nYour previous response was not a valid QueryPlan: %v\nReturn a corrected JSON object.", user, lastErr)
		}

		response, err := g.LLM.Generate(ctx, system, turn)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}

		p, err := plan.Parse(response)
		if err == nil {
			err = p.Validate()
		}
		if err != nil {
			lastErr = err
			log.Printf("Plan attempt %d/%d rejected: %v", attempt+1, attempts, err)
			continue
		}

		applyOverrides(p, options)
		log.Printf("Generated plan with %d steps", len(p.Steps))
		return p, nil
	}

	return nil, &GenerationError{Attempts: attempts, LastErr: lastErr}
}

// buildUserMessage appends caller options to the prompt as plain text.
// Keys are sorted so the rendered turn is stable for a given request.
func buildUserMessage(prompt string, options map[string]interface{}) string {
	if len(options) == 0 {
		return prompt
	}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, options[k]))
	}

	return fmt.Sprintf("%s\n\nAdditional parameters: %s", prompt, strings.Join(parts, ", "))
}

// applyOverrides writes the three caller-controlled metadata fields over
// whatever the model produced. All other option keys are generation
// context only.
func applyOverrides(p *plan.QueryPlan, options map[string]interface{}) {
	if len(options) == 0 {
		return
	}

	if v, ok := options["post_count"]; ok {
		if n, ok := toInt(v); ok {
			p.Metadata.PostCount = n
		}
	}
	if v, ok := options["date_from"]; ok {
		p.Metadata.DateFrom = fmt.Sprintf("%v", v)
	}
	if v, ok := options["date_to"]; ok {
		p.Metadata.DateTo = fmt.Sprintf("%v", v)
	}
}

// toInt tolerates the types JSON decoding and callers actually produce.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
