package observe

import "strings"

const thoughtfulMinWords = 12

var (
	personalCues = []string{"i am", "i like", "i love", "i enjoy", "my", "i work", "i live"}
	interestCues = []string{"you", "your", "tell me", "what about", "how about"}
	positiveCues = []string{"great", "amazing", "love", "like", "enjoy", "fantastic", "wonderful"}
	humorCues    = []string{"haha", "lol", "funny", "joke", "laugh"}
)

// Length buckets by word count.
const (
	LengthVeryShort = "very_short"
	LengthShort     = "short"
	LengthMedium    = "medium"
	LengthLong      = "long"
	LengthVeryLong  = "very_long"
)

// TurnContext describes a single utterance in isolation. Unlike observer
// tags, none of this carries over between turns.
type TurnContext struct {
	AsksQuestions        bool
	RespondsThoughtfully bool
	TokenCount           int
	QuestionMarks        int
	ExclamationMarks     int
	SharesPersonalInfo   bool
	ShowsInterest        bool
	PositiveSentiment    bool
	UsesHumor            bool
	LengthBucket         string
}

// AnalyzeTurn computes the per-utterance signals the compatibility engine
// consumes. Tokens are whitespace-separated words.
func AnalyzeTurn(message string) TurnContext {
	lower := strings.ToLower(message)
	words := len(strings.Fields(message))

	return TurnContext{
		AsksQuestions:        strings.Count(message, "?") > 0,
		RespondsThoughtfully: words >= thoughtfulMinWords,
		TokenCount:           words,
		QuestionMarks:        strings.Count(message, "?"),
		ExclamationMarks:     strings.Count(message, "!"),
		SharesPersonalInfo:   containsAny(lower, personalCues),
		ShowsInterest:        containsAny(lower, interestCues),
		PositiveSentiment:    containsAny(lower, positiveCues),
		UsesHumor:            containsAny(lower, humorCues),
		LengthBucket:         lengthBucket(words),
	}
}

func containsAny(lower string, cues []string) bool {
	for _, c := range cues {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}

func lengthBucket(words int) string {
	switch {
	case words < 5:
		return LengthVeryShort
	case words < 15:
		return LengthShort
	case words < 30:
		return LengthMedium
	case words < 50:
		return LengthLong
	default:
		return LengthVeryLong
	}
}
