package assembler

type StepResponse struct {
	Number          int    `json:"number"`
	Type            string `json:"type"`
	ServiceCategory string `json:"service_category,omitempty"`
	Initiator       string `json:"initiator,omitempty"`
	Description     string `json:"description"`
}

// ParamsResponse deliberately exposes only the targeting subset of the
// plan metadata.
type ParamsResponse struct {
	Source          string `json:"source,omitempty"`
	TargetName      string `json:"target_name,omitempty"`
	TargetURL       string `json:"target_url,omitempty"`
	NarrativeTopics string `json:"narrative_topics,omitempty"`
}

type GenerateResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Steps     []StepResponse `json:"steps"`
	Params    ParamsResponse `json:"params"`
	StepCount int            `json:"step_count"`
}
