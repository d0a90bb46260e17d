package scoring

import "strings"

// Negative keyword weights differ by entity: lead notes use the default,
// account interactions penalize harder.
const (
	DefaultNegativeWeight = 15
	AccountNegativeWeight = 20

	positiveWeight = 15
)

// Sentiment labels, bucketed at the -50/-20/20/50 thresholds.
const (
	LabelVeryNegative = "Very Negative"
	LabelNegative     = "Negative"
	LabelNeutral      = "Neutral"
	LabelPositive     = "Positive"
	LabelVeryPositive = "Very Positive"
)

var positiveKeywords = []string{
	"great", "excellent", "happy", "satisfied", "love", "amazing",
	"interested", "excited", "recommend", "fantastic", "perfect", "helpful",
}

var negativeKeywords = []string{
	"bad", "poor", "unhappy", "disappointed", "hate", "terrible",
	"cancel", "complaint", "issue", "problem", "frustrated", "slow",
}

// Sentiment performs a keyword bag-of-words scan over text and returns a
// score in [-100,100] plus its label. Each positive keyword match adds 15,
// each negative match subtracts negativeWeight. Empty text scores 0/Neutral.
func Sentiment(text string, negativeWeight int) (int, string) {
	score := 0
	lower := strings.ToLower(text)

	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			score += positiveWeight
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			score -= negativeWeight
		}
	}

	score = clamp(score, -100, 100)
	return score, SentimentLabel(score)
}

// SentimentLabel buckets a sentiment score into its display label
func SentimentLabel(score int) string {
	switch {
	case score <= -50:
		return LabelVeryNegative
	case score <= -20:
		return LabelNegative
	case score < 20:
		return LabelNeutral
	case score < 50:
		return LabelPositive
	default:
		return LabelVeryPositive
	}
}
