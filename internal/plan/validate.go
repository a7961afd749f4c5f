package plan

import (
	"fmt"
)

var stepTypes = map[string]bool{
	StepService:  true,
	StepScripter: true,
	StepAI:       true,
	StepAIImage:  true,
}

// Validate checks the structural contract of a generated plan: known step
// types, required fields per type, and related-step references that never
// point forward. Catalog membership of service categories is deliberately
// not checked here - the catalog is prompt-time guidance, and a plan that
// drifts from it is still accepted.
func (p *QueryPlan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan has no steps")
	}

	for i, step := range p.Steps {
		position := i + 1

		if !stepTypes[step.Type] {
			return fmt.Errorf("step %d: unknown step type %q", position, step.Type)
		}
		if step.Description == "" {
			return fmt.Errorf("step %d: missing description", position)
		}
		if step.Type == StepService {
			if step.ServiceCategory == "" {
				return fmt.Errorf("step %d: service step missing service_category", position)
			}
			if step.Initiator == "" {
				return fmt.Errorf("step %d: service step missing initiator", position)
			}
		}
		for _, r := range step.RelatedSteps {
			if r < 1 || r > position {
				return fmt.Errorf("step %d: related step %d is out of range (forward references are not allowed)", position, r)
			}
		}
	}

	return nil
}
