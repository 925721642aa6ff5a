// Package langdetect provides an in-process language detector for running
// without AWS credentials (local development, offline tests). It satisfies
// the same interface as the Comprehend client.
package langdetect

import (
	"context"

	"github.com/abadojack/whatlanggo"

	"chat-processor/internal/domain"
)

type Detector struct{}

func New() *Detector {
	return &Detector{}
}

// DetectLanguages returns at most one candidate: whatlanggo's best guess
// with its confidence clamped to [0,1]. Scripts without an ISO-639-1 code
// yield an empty result, which callers treat as "no language identified".
func (d *Detector) DetectLanguages(_ context.Context, text string) ([]domain.LanguageCandidate, error) {
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return nil, nil
	}

	score := info.Confidence
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return []domain.LanguageCandidate{{Code: code, Score: score}}, nil
}
