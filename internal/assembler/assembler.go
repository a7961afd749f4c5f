package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cyberglobes/querybuilder/internal/plan"
)

// BuildMessage converts a QueryPlan into the formatted instruction
// message. Deterministic assembly - no model calls, no I/O.
func BuildMessage(p *plan.QueryPlan) string {
	lines := make([]string, 0, len(p.Steps))
	for i, step := range p.Steps {
		number := i + 1
		line := renderStepLine(step, number)

		// Description text and templates self-report dependencies when
		// authored that way; only annotate lines that don't.
		if len(step.RelatedSteps) > 0 && !hasDependencyClause(line) {
			line = strings.TrimRight(line, ".") + "." + relatedClause(step.RelatedSteps)
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderStepLine renders one step: templated scripter operations get their
// fixed text, everything else uses the step's own description.
func renderStepLine(step plan.StepPlan, number int) string {
	description := step.Description
	if step.Type == plan.StepScripter {
		if rendered, ok := renderOperation(step); ok {
			description = rendered
		}
	}
	return fmt.Sprintf("%d. [%s] %s", number, step.Type, description)
}

// hasDependencyClause reports whether a rendered line already carries a
// dependency clause. This is a substring contract on the literal marker
// "Related step" - downstream consumers parse the exact phrase, so the
// check must stay textual.
func hasDependencyClause(line string) bool {
	return strings.Contains(line, "Related step")
}

func relatedClause(related []int) string {
	if len(related) == 1 {
		return fmt.Sprintf(" Related step %d.", related[0])
	}
	parts := make([]string, len(related))
	for i, r := range related {
		parts[i] = strconv.Itoa(r)
	}
	return fmt.Sprintf(" Related steps %s.", strings.Join(parts, ", "))
}

// BuildResponse projects a plan and its assembled message into the
// transport response view. Step summaries carry the original model
// descriptions, not the templated renders.
func BuildResponse(p *plan.QueryPlan, message string) *GenerateResponse {
	steps := make([]StepResponse, 0, len(p.Steps))
	for i, step := range p.Steps {
		steps = append(steps, StepResponse{
			Number:          i + 1,
			Type:            step.Type,
			ServiceCategory: step.ServiceCategory,
			Initiator:       step.Initiator,
			Description:     step.Description,
		})
	}

	return &GenerateResponse{
		Success: true,
		Message: message,
		Steps:   steps,
		Params: ParamsResponse{
			Source:          p.Metadata.Source,
			TargetName:      p.Metadata.TargetName,
			TargetURL:       p.Metadata.TargetURL,
			NarrativeTopics: p.Metadata.NarrativeTopics,
		},
		StepCount: len(steps),
	}
}
