package mood

import (
	"context"
	"strings"

	"yumexpress-be/internal/apperr"
	"yumexpress-be/internal/logger"
	"yumexpress-be/internal/restaurant"

	"go.uber.org/zap"
)

// MaxResults caps the number of matched menu items.
const MaxResults = 20

const (
	SourceClassifier = "classifier"
	SourceKeywords   = "keywords"
	SourceDefault    = "default"
)

var ErrEmptyText = apperr.Validation("valid text is required for mood analysis")

type ItemFinder interface {
	FindMenuItemsByTags(ctx context.Context, tags []string, limit int) ([]restaurant.MenuItemMatch, error)
}

type Result struct {
	Mood   Emotion                    `json:"mood"`
	Source string                     `json:"source"`
	Tags   []string                   `json:"tags"`
	Items  []restaurant.MenuItemMatch `json:"items"`
}

type Matcher struct {
	classifiers *ClassifierProvider
	items       ItemFinder
}

func NewMatcher(classifiers *ClassifierProvider, items ItemFinder) *Matcher {
	return &Matcher{classifiers: classifiers, items: items}
}

// Match resolves text to an emotion, maps it to tags and returns menu items
// carrying any of those tags. An empty item list is not an error.
func (m *Matcher) Match(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}

	emotion, source := m.resolve(ctx, text)
	tags := TagsFor(emotion)

	items, err := m.items.FindMenuItemsByTags(ctx, tags, MaxResults)
	if err != nil {
		return Result{}, err
	}
	if items == nil {
		items = []restaurant.MenuItemMatch{}
	}

	logger.FromCtx(ctx).Info("mood matched",
		zap.String("mood", string(emotion)),
		zap.String("source", source),
		zap.Int("items", len(items)),
	)

	return Result{Mood: emotion, Source: source, Tags: tags, Items: items}, nil
}

// resolve tries the classifier, then keywords. A classifier failure is
// logged and treated as no result.
func (m *Matcher) resolve(ctx context.Context, text string) (Emotion, string) {
	if c, ok := m.classifiers.Get(); ok {
		pred, err := c.Classify(ctx, text)
		if err != nil {
			logger.FromCtx(ctx).Warn("mood classifier failed", zap.Error(err))
		} else if e, known := ParseEmotion(pred.Label); known && e != Neutral {
			return e, SourceClassifier
		}
	}

	if e := KeywordEmotion(text); e != Neutral {
		return e, SourceKeywords
	}
	return Neutral, SourceDefault
}
