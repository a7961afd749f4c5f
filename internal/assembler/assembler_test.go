package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyberglobes/querybuilder/internal/plan"
)

func makePlan(steps []plan.StepPlan, meta plan.QueryMetadata) *plan.QueryPlan {
	if meta.PostCount == 0 {
		meta.PostCount = plan.DefaultPostCount
	}
	return &plan.QueryPlan{Steps: steps, Metadata: meta}
}

func TestBuildMessage_SingleServiceStep(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{
			Type:            plan.StepService,
			ServiceCategory: "twitter_posts",
			Initiator:       "keyword",
			Description:     "Search Twitter for posts with keyword: climate change",
		},
	}, plan.QueryMetadata{Source: "twitter_posts"})

	msg := BuildMessage(p)
	assert.Equal(t, "1. [service] Search Twitter for posts with keyword: climate change", msg)
}

func TestBuildMessage_RelatedStepAppended(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{
			Type:            plan.StepService,
			ServiceCategory: "instagram_posts",
			Initiator:       "hashtag",
			Description:     "Scrap Instagram posts associated with hashtags: #protest",
		},
		{
			Type:            plan.StepService,
			ServiceCategory: "photo_location",
			Initiator:       "image",
			Description:     "Use photo location service to identify locations",
			RelatedSteps:    []int{1},
		},
	}, plan.QueryMetadata{Source: "instagram_posts"})

	msg := BuildMessage(p)
	lines := strings.Split(msg, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1. [service] "))
	assert.True(t, strings.HasPrefix(lines[1], "2. [service] "))
	assert.True(t, strings.HasSuffix(lines[1], " Related step 1."))
}

func TestBuildMessage_RelatedStepNotDuplicated(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{
			Type:        plan.StepService,
			Description: "Scrap tweets from user: @elonmusk",
		},
		{
			Type:         plan.StepAI,
			Description:  "Filter posts mentioning Tesla. Related step 1.",
			RelatedSteps: []int{1},
		},
	}, plan.QueryMetadata{})

	msg := BuildMessage(p)
	lines := strings.Split(msg, "\n")
	assert.Equal(t, 1, strings.Count(lines[1], "Related step"))
	assert.Equal(t, "2. [ai] Filter posts mentioning Tesla. Related step 1.", lines[1])
}

func TestBuildMessage_RelatedStepsPlural(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{Type: plan.StepService, Description: "Scrap tweets from user: @a"},
		{Type: plan.StepService, Description: "Scrap tweets from user: @b"},
		{
			Type:         plan.StepAI,
			Description:  "Summarize all collected posts",
			RelatedSteps: []int{1, 2},
		},
	}, plan.QueryMetadata{})

	msg := BuildMessage(p)
	lines := strings.Split(msg, "\n")
	assert.True(t, strings.HasSuffix(lines[2], " Related steps 1, 2."))
}

func TestBuildMessage_NormalizeTemplate(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{
			Type:            plan.StepService,
			ServiceCategory: "twitter_posts",
			Initiator:       "keyword",
			Description:     "Search Twitter for posts",
		},
		{
			Type:         plan.StepScripter,
			Description:  "Normalize Twitter data. Related step 1.",
			RelatedSteps: []int{1},
			Params:       map[string]interface{}{"operation": "normalize", "platform": "twitter"},
		},
	}, plan.QueryMetadata{Source: "twitter_posts"})

	msg := BuildMessage(p)
	assert.Contains(t, msg, "[scripter]")
	assert.Contains(t, msg, "tweet_id")
}

func TestBuildMessage_SentimentTemplate(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{
			Type:        plan.StepScripter,
			Description: "Analyze sentiment",
			Params:      map[string]interface{}{"operation": "sentiment"},
		},
	}, plan.QueryMetadata{})

	msg := BuildMessage(p)
	assert.Contains(t, msg, "Positive")
	assert.Contains(t, msg, "Negative")
}

func TestBuildMessage_KeywordsTemplate(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{
			Type:        plan.StepScripter,
			Description: "Match keywords",
			Params:      map[string]interface{}{"operation": "keywords", "keywords": "EV, electric, stock"},
		},
	}, plan.QueryMetadata{})

	msg := BuildMessage(p)
	assert.Contains(t, msg, "EV, electric, stock")
	assert.Contains(t, msg, "attribution_tags")
}

func TestBuildMessage_MentionsTargetTemplate(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{
			Type:        plan.StepScripter,
			Description: "Check target mentions",
			Params:      map[string]interface{}{"operation": "mentions_target", "target": "Tesla"},
		},
	}, plan.QueryMetadata{})

	msg := BuildMessage(p)
	assert.Contains(t, msg, "Check if posts mention target: Tesla.")
}

func TestBuildMessage_UnknownOperationFallsBackToDescription(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{
			Type:        plan.StepScripter,
			Description: "Deduplicate posts by content hash",
			Params:      map[string]interface{}{"operation": "dedupe"},
		},
	}, plan.QueryMetadata{})

	msg := BuildMessage(p)
	assert.Equal(t, "1. [scripter] Deduplicate posts by content hash", msg)
}

func TestBuildMessage_AIStepsVerbatim(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{Type: plan.StepAI, Description: "Classify posts by topic: politics, economy, social"},
		{Type: plan.StepAIImage, Description: "Detect objects in post images", RelatedSteps: []int{1}},
	}, plan.QueryMetadata{})

	msg := BuildMessage(p)
	lines := strings.Split(msg, "\n")
	assert.Equal(t, "1. [ai] Classify posts by topic: politics, economy, social", lines[0])
	assert.Equal(t, "2. [ai-image] Detect objects in post images. Related step 1.", lines[1])
}

func TestBuildMessage_Idempotent(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{Type: plan.StepService, Description: "Scrap tweets from user: @bbc"},
		{
			Type:         plan.StepScripter,
			Description:  "Normalize data",
			RelatedSteps: []int{1},
			Params:       map[string]interface{}{"operation": "normalize", "platform": "twitter"},
		},
	}, plan.QueryMetadata{})

	first := BuildMessage(p)
	second := BuildMessage(p)
	assert.Equal(t, first, second)
}

func TestBuildResponse(t *testing.T) {
	p := makePlan([]plan.StepPlan{
		{
			Type:            plan.StepService,
			ServiceCategory: "twitter_posts",
			Initiator:       "keyword",
			Description:     "Search Twitter",
		},
		{
			Type:         plan.StepScripter,
			Description:  "Normalize Twitter data",
			RelatedSteps: []int{1},
			Params:       map[string]interface{}{"operation": "normalize", "platform": "twitter"},
		},
	}, plan.QueryMetadata{
		Source:          "twitter_posts",
		TargetName:      "test",
		Keywords:        "hidden from params view",
		NarrativeTopics: "elections",
	})

	message := BuildMessage(p)
	resp := BuildResponse(p, message)

	assert.True(t, resp.Success)
	assert.Equal(t, message, resp.Message)
	assert.Equal(t, 2, resp.StepCount)
	assert.Equal(t, 1, resp.Steps[0].Number)
	assert.Equal(t, "service", resp.Steps[0].Type)
	assert.Equal(t, "twitter_posts", resp.Steps[0].ServiceCategory)
	// The projection keeps the original description, not the templated render
	assert.Equal(t, "Normalize Twitter data", resp.Steps[1].Description)
	assert.Equal(t, "twitter_posts", resp.Params.Source)
	assert.Equal(t, "test", resp.Params.TargetName)
	assert.Equal(t, "elections", resp.Params.NarrativeTopics)
}
