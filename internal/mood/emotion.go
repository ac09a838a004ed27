// Package mood maps free text to an emotion and the emotion to food tags.
package mood

import "strings"

type Emotion string

const (
	Joy      Emotion = "joy"
	Sadness  Emotion = "sadness"
	Anger    Emotion = "anger"
	Fear     Emotion = "fear"
	Surprise Emotion = "surprise"
	Neutral  Emotion = "neutral"
)

// Emotions is the closed set in tie-break order.
var Emotions = []Emotion{Joy, Sadness, Anger, Fear, Surprise, Neutral}

// tagTable holds canonical tags (see restaurant.NormalizeTag).
var tagTable = map[Emotion][]string{
	Joy:      {"sweet", "dessert", "ice-cream", "cold", "fruit"},
	Sadness:  {"comfort", "warm", "cheesy", "fried", "coffee"},
	Anger:    {"spicy", "strong-flavor", "crispy"},
	Fear:     {"light", "soup", "healthy", "mild"},
	Surprise: {"unique", "fusion", "chef-special"},
	Neutral:  {"regular", "simple", "veg", "rice", "bread"},
}

// TagsFor returns a copy of the tag list for e, or the neutral list for unknown emotions.
func TagsFor(e Emotion) []string {
	tags, ok := tagTable[e]
	if !ok {
		tags = tagTable[Neutral]
	}
	return append([]string(nil), tags...)
}

// labelAliases folds the finer go_emotions labels onto the closed set.
var labelAliases = map[string]Emotion{
	"joy":            Joy,
	"amusement":      Joy,
	"excitement":     Joy,
	"love":           Joy,
	"optimism":       Joy,
	"gratitude":      Joy,
	"pride":          Joy,
	"admiration":     Joy,
	"approval":       Joy,
	"caring":         Joy,
	"relief":         Joy,
	"desire":         Joy,
	"sadness":        Sadness,
	"grief":          Sadness,
	"disappointment": Sadness,
	"remorse":        Sadness,
	"embarrassment":  Sadness,
	"anger":          Anger,
	"annoyance":      Anger,
	"disapproval":    Anger,
	"disgust":        Anger,
	"fear":           Fear,
	"nervousness":    Fear,
	"surprise":       Surprise,
	"realization":    Surprise,
	"curiosity":      Surprise,
	"confusion":      Surprise,
	"neutral":        Neutral,
}

// ParseEmotion normalizes a classifier label. Unknown labels report false.
func ParseEmotion(label string) (Emotion, bool) {
	e, ok := labelAliases[strings.ToLower(strings.TrimSpace(label))]
	return e, ok
}

var keywordGroups = []struct {
	emotion  Emotion
	keywords []string
}{
	{Sadness, []string{"sad", "upset", "tired"}},
	{Joy, []string{"happy", "excited", "joy"}},
	{Anger, []string{"angry", "frustrated", "irritated"}},
	{Fear, []string{"scared", "nervous", "worried"}},
	{Surprise, []string{"surprised", "amazed"}},
}

// KeywordEmotion scans text for the keyword groups in order; the first group
// with a match wins, Neutral otherwise.
func KeywordEmotion(text string) Emotion {
	lower := strings.ToLower(text)
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.emotion
			}
		}
	}
	return Neutral
}
