package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cyberglobes/querybuilder/internal/plan"
)

type workedExample struct {
	Input string
	Plan  plan.QueryPlan
}

// workedExamples anchor the output style and the comma-joined metadata
// convention. They cover the common shapes: single scrape, keyword search,
// multi-source collection, the full processing pipeline, image analysis and
// cross-platform profiling.
var workedExamples = []workedExample{
	// 1. Simple URL scrape
	{
		Input: "Scrape posts from this Facebook group: https://facebook.com/groups/example",
		Plan: plan.QueryPlan{
			Steps: []plan.StepPlan{
				{
					Type:            plan.StepService,
					ServiceCategory: "facebook_posts",
					Initiator:       "url",
					Description:     "Scrap posts from Facebook group: https://facebook.com/groups/example",
					RelatedSteps:    []int{},
					Params:          map[string]interface{}{"url": "https://facebook.com/groups/example"},
				},
			},
			Metadata: plan.QueryMetadata{
				Source:    "facebook_posts",
				TargetURL: "https://facebook.com/groups/example",
				PostCount: 50,
			},
		},
	},
	// 2. Keyword search
	{
		Input: "Search Twitter for posts about climate change",
		Plan: plan.QueryPlan{
			Steps: []plan.StepPlan{
				{
					Type:            plan.StepService,
					ServiceCategory: "twitter_posts",
					Initiator:       "keyword",
					Description:     "Search Twitter for posts with keyword: climate change",
					RelatedSteps:    []int{},
					Params:          map[string]interface{}{"keyword": "climate change"},
				},
			},
			Metadata: plan.QueryMetadata{
				Source:    "twitter_posts",
				Keywords:  "climate change",
				PostCount: 50,
			},
		},
	},
	// 3. Multi-source scrape (page + hashtag)
	{
		Input: "Get Instagram posts from @bbc and also search for #breakingnews",
		Plan: plan.QueryPlan{
			Steps: []plan.StepPlan{
				{
					Type:            plan.StepService,
					ServiceCategory: "instagram_posts",
					Initiator:       "username",
					Description:     "Scrap Instagram posts from user: @bbc",
					RelatedSteps:    []int{},
					Params:          map[string]interface{}{"username": "bbc"},
				},
				{
					Type:            plan.StepService,
					ServiceCategory: "instagram_posts",
					Initiator:       "hashtag",
					Description:     "Scrap Instagram posts associated with hashtags: #breakingnews",
					RelatedSteps:    []int{},
					Params:          map[string]interface{}{"hashtag": "breakingnews"},
				},
			},
			Metadata: plan.QueryMetadata{
				Source:     "instagram_posts",
				TargetName: "bbc",
				Keywords:   "breakingnews",
				PostCount:  50,
			},
		},
	},
	// 4. Scrape + normalize
	{
		Input: "Scrape TikTok videos about #cooking and normalize the data",
		Plan: plan.QueryPlan{
			Steps: []plan.StepPlan{
				{
					Type:            plan.StepService,
					ServiceCategory: "tiktok_videos",
					Initiator:       "hashtag",
					Description:     "Scrap TikTok videos associated with hashtags: #cooking",
					RelatedSteps:    []int{},
					Params:          map[string]interface{}{"hashtag": "cooking"},
				},
				{
					Type:         plan.StepScripter,
					Description:  "Normalize TikTok data to standard format. Related step 1.",
					RelatedSteps: []int{1},
					Params:       map[string]interface{}{"operation": "normalize", "platform": "tiktok"},
				},
			},
			Metadata: plan.QueryMetadata{
				Source:    "tiktok_videos",
				Keywords:  "cooking",
				PostCount: 50,
			},
		},
	},
	// 5. Full pipeline (scrape + normalize + sentiment + keywords + target + narratives)
	{
		Input: "Analyze sentiment and narratives of Twitter posts about @elonmusk mentioning Tesla, with keywords: EV, electric, stock",
		Plan: plan.QueryPlan{
			Steps: []plan.StepPlan{
				{
					Type:            plan.StepService,
					ServiceCategory: "twitter_posts",
					Initiator:       "username",
					Description:     "Scrap tweets from user: @elonmusk",
					RelatedSteps:    []int{},
					Params:          map[string]interface{}{"username": "elonmusk"},
				},
				{
					Type:         plan.StepScripter,
					Description:  "Normalize Twitter data to standard format. Related step 1.",
					RelatedSteps: []int{1},
					Params:       map[string]interface{}{"operation": "normalize", "platform": "twitter"},
				},
				{
					Type:         plan.StepScripter,
					Description:  "Analyze sentiment of post content. Classify each post as Positive, Negative, Neutral, or Unknown. Related step 2.",
					RelatedSteps: []int{2},
					Params:       map[string]interface{}{"operation": "sentiment"},
				},
				{
					Type:         plan.StepScripter,
					Description:  "Match posts against keywords: EV, electric, stock. Tag matching posts with attribution_tags. Related step 2.",
					RelatedSteps: []int{2},
					Params:       map[string]interface{}{"operation": "keywords", "keywords": "EV, electric, stock"},
				},
				{
					Type:         plan.StepScripter,
					Description:  "Check if posts mention target: Tesla. Related step 2.",
					RelatedSteps: []int{2},
					Params:       map[string]interface{}{"operation": "mentions_target", "target": "Tesla"},
				},
				{
					Type:         plan.StepScripter,
					Description:  "Classify posts into narrative categories. Related step 2.",
					RelatedSteps: []int{2},
					Params:       map[string]interface{}{"operation": "narratives"},
				},
			},
			Metadata: plan.QueryMetadata{
				Source:     "twitter_posts",
				TargetName: "elonmusk",
				Keywords:   "EV, electric, stock",
				PostCount:  50,
			},
		},
	},
	// 6. Image analysis workflow
	{
		Input: "Find Instagram posts by #iranprotest and detect photo locations",
		Plan: plan.QueryPlan{
			Steps: []plan.StepPlan{
				{
					Type:            plan.StepService,
					ServiceCategory: "instagram_posts",
					Initiator:       "hashtag",
					Description:     "Scrap 50 Instagram posts associated with hashtags: #iranprotest",
					RelatedSteps:    []int{},
					Params:          map[string]interface{}{"hashtag": "iranprotest"},
				},
				{
					Type:            plan.StepService,
					ServiceCategory: "photo_location",
					Initiator:       "image",
					Description:     "Use photo location service to identify locations of post images. Related step 1.",
					RelatedSteps:    []int{1},
					Params:          map[string]interface{}{},
				},
			},
			Metadata: plan.QueryMetadata{
				Source:    "instagram_posts",
				Keywords:  "iranprotest",
				PostCount: 50,
			},
		},
	},
	// 7. Cross-platform profiling
	{
		Input: "Find all social media profiles for username johndoe123",
		Plan: plan.QueryPlan{
			Steps: []plan.StepPlan{
				{
					Type:            plan.StepService,
					ServiceCategory: "username_search",
					Initiator:       "username",
					Description:     "Search for username across platforms: johndoe123",
					RelatedSteps:    []int{},
					Params:          map[string]interface{}{"username": "johndoe123"},
				},
				{
					Type:            plan.StepService,
					ServiceCategory: "instagram_profiles",
					Initiator:       "username",
					Description:     "Get Instagram profile for username: johndoe123. Related step 1.",
					RelatedSteps:    []int{1},
					Params:          map[string]interface{}{"username": "johndoe123"},
				},
				{
					Type:            plan.StepService,
					ServiceCategory: "twitter_profiles",
					Initiator:       "username",
					Description:     "Get Twitter profile for username: johndoe123. Related step 1.",
					RelatedSteps:    []int{1},
					Params:          map[string]interface{}{"username": "johndoe123"},
				},
				{
					Type:            plan.StepService,
					ServiceCategory: "tiktok_profiles",
					Initiator:       "username",
					Description:     "Get TikTok profile for username: johndoe123. Related step 1.",
					RelatedSteps:    []int{1},
					Params:          map[string]interface{}{"username": "johndoe123"},
				},
				{
					Type:            plan.StepService,
					ServiceCategory: "linkedin_profiles",
					Initiator:       "username",
					Description:     "Get LinkedIn profile for username: johndoe123. Related step 1.",
					RelatedSteps:    []int{1},
					Params:          map[string]interface{}{"username": "johndoe123"},
				},
			},
			Metadata: plan.QueryMetadata{
				Source:     "username_search",
				TargetName: "johndoe123",
				PostCount:  50,
			},
		},
	},
	// 8. Face search from photo
	{
		Input: "Run a face search on this photo to find matching profiles",
		Plan: plan.QueryPlan{
			Steps: []plan.StepPlan{
				{
					Type:            plan.StepService,
					ServiceCategory: "facecheck_search",
					Initiator:       "image",
					Description:     "Run face recognition search to find matching profiles from uploaded photo",
					RelatedSteps:    []int{},
					Params:          map[string]interface{}{},
				},
			},
			Metadata: plan.QueryMetadata{
				Source:    "facecheck_search",
				PostCount: 50,
			},
		},
	},
}

// fewShotExamples formats the worked examples for the system prompt.
func fewShotExamples() string {
	lines := []string{"EXAMPLES:"}
	for i, ex := range workedExamples {
		planJSON, err := json.MarshalIndent(ex.Plan, "", "  ")
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("\nExample %d:", i+1))
		lines = append(lines, fmt.Sprintf("User: %s", ex.Input))
		lines = append(lines, fmt.Sprintf("Plan: %s", planJSON))
	}
	return strings.Join(lines, "\n")
}
