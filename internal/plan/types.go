package plan

// Step types form a closed set. Wire values are load-bearing: they appear
// verbatim in assembled messages ("1. [service] ...") and in stored
// feedback, so they never change even if display names do.
const (
	StepService  = "service"  // external data collection call
	StepScripter = "scripter" // code-level data processing
	StepAI       = "ai"       // AI text analysis / filtering
	StepAIImage  = "ai-image" // AI image analysis
)

// DefaultPostCount is used when neither the model nor the caller set one.
const DefaultPostCount = 50

// StepPlan is one unit of work inside a QueryPlan.
type StepPlan struct {
	Type            string                 `json:"type"`
	ServiceCategory string                 `json:"service_category,omitempty"` // only for type=service
	Initiator       string                 `json:"initiator,omitempty"`        // url, keyword, username, hashtag, image, ...
	Description     string                 `json:"description"`
	RelatedSteps    []int                  `json:"related_steps"` // 1-based references to previous steps
	Params          map[string]interface{} `json:"params"`
}

// QueryMetadata summarizes the plan. Keywords and narrative topics are
// comma-joined strings, never arrays - downstream consumers depend on that.
type QueryMetadata struct {
	Source          string `json:"source,omitempty"`
	TargetName      string `json:"target_name,omitempty"`
	TargetURL       string `json:"target_url,omitempty"`
	TargetID        string `json:"target_id,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
	NarrativeTopics string `json:"narrative_topics,omitempty"`
	BenchmarkSet    string `json:"benchmark_set,omitempty"`
	DateFrom        string `json:"date_from,omitempty"`
	DateTo          string `json:"date_to,omitempty"`
	PostCount       int    `json:"post_count"`
}

type QueryPlan struct {
	Steps    []StepPlan    `json:"steps"`
	Metadata QueryMetadata `json:"metadata"`
}
