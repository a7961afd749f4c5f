package plan

import (
	"encoding/json"
	"fmt"
)

// Parse cleans and unmarshals an LLM response into a QueryPlan. It handles
// common model quirks like surrounding markdown or extra text by clamping
// to the outermost JSON object.
func Parse(response string) (*QueryPlan, error) {
	jsonStr := response

	start := -1
	end := -1

	for i, c := range jsonStr {
		if c == '{' {
			start = i
			break
		}
	}
	for i := len(jsonStr) - 1; i >= 0; i-- {
		if c := jsonStr[i]; c == '}' {
			end = i + 1
			break
		}
	}

	if start != -1 && end != -1 && start < end {
		jsonStr = jsonStr[start:end]
	} else if start == -1 {
		return nil, fmt.Errorf("no JSON object found in response (missing '{')")
	}

	var p QueryPlan
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan JSON: %w", err)
	}

	if p.Metadata.PostCount == 0 {
		p.Metadata.PostCount = DefaultPostCount
	}

	return &p, nil
}
