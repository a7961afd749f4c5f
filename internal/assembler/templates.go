package assembler

import (
	"fmt"

	"github.com/cyberglobes/querybuilder/internal/plan"
)

// Scripter operations that have dedicated templates. Any other operation
// (or a scripter step without one) falls back to the step's own
// description.
const (
	opNormalize      = "normalize"
	opSentiment      = "sentiment"
	opKeywords       = "keywords"
	opMentionsTarget = "mentions_target"
	opNarratives     = "narratives"
)

// platformFields maps each platform's native field names onto the unified
// post schema. Rendered into normalize step descriptions.
var platformFields = map[string]string{
	"twitter":   "tweet_id -> post_id, full_text -> content, favorite_count -> likes, retweet_count -> shares",
	"instagram": "media_id -> post_id, caption -> content, like_count -> likes, comments_count -> comments",
	"tiktok":    "video_id -> post_id, desc -> content, digg_count -> likes, share_count -> shares",
	"facebook":  "post_id -> post_id, message -> content, reactions_count -> likes, shares_count -> shares",
	"linkedin":  "urn -> post_id, commentary -> content, num_likes -> likes, num_shares -> shares",
}

var platformNames = map[string]string{
	"twitter":   "Twitter",
	"instagram": "Instagram",
	"tiktok":    "TikTok",
	"facebook":  "Facebook",
	"linkedin":  "LinkedIn",
}

// renderOperation renders a templated scripter operation. Returns false
// when the operation has no template, in which case the caller uses the
// step's free-text description verbatim.
func renderOperation(step plan.StepPlan) (string, bool) {
	operation, _ := step.Params["operation"].(string)

	switch operation {
	case opNormalize:
		platform, _ := step.Params["platform"].(string)
		name := platformNames[platform]
		if name == "" {
			name = platform
		}
		fields, ok := platformFields[platform]
		if !ok {
			fields = "platform fields -> unified post schema"
		}
		return fmt.Sprintf("Normalize %s data to standard format. Map fields: %s.", name, fields), true

	case opSentiment:
		return "Analyze sentiment of post content. Classify each post as Positive, Negative, Neutral, or Unknown and store the result in sentiment_label.", true

	case opKeywords:
		keywords, _ := step.Params["keywords"].(string)
		return fmt.Sprintf("Match posts against keywords: %s. Tag matching posts with attribution_tags.", keywords), true

	case opMentionsTarget:
		target, _ := step.Params["target"].(string)
		return fmt.Sprintf("Check if posts mention target: %s.", target), true

	case opNarratives:
		return "Classify posts into narrative categories. Record matched categories as comma-separated narrative_ids.", true

	default:
		return "", false
	}
}
