package comprehend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"

	"chat-processor/internal/domain"
)

// comprehendAPI is the minimal Comprehend interface required by Client.
// *comprehend.Client from aws-sdk-go-v2 satisfies this interface.
type comprehendAPI interface {
	DetectDominantLanguage(ctx context.Context, params *comprehend.DetectDominantLanguageInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectDominantLanguageOutput, error)
}

// Client wraps Comprehend dominant-language detection.
type Client struct {
	api comprehendAPI
}

func New(api comprehendAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("comprehend: api must not be nil")
	}
	return &Client{api: api}, nil
}

// DetectLanguages returns the detected language candidates ranked by
// confidence descending. An empty result is not an error; it means the
// service could not identify a language.
func (c *Client) DetectLanguages(ctx context.Context, text string) ([]domain.LanguageCandidate, error) {
	out, err := c.api.DetectDominantLanguage(ctx, &comprehend.DetectDominantLanguageInput{
		Text: aws.String(text),
	})
	if err != nil {
		return nil, fmt.Errorf("comprehend: detect dominant language: %w", err)
	}
	if out == nil {
		return nil, nil
	}

	candidates := make([]domain.LanguageCandidate, 0, len(out.Languages))
	for _, lang := range out.Languages {
		if lang.LanguageCode == nil || *lang.LanguageCode == "" {
			continue
		}
		var score float64
		if lang.Score != nil {
			score = float64(*lang.Score)
		}
		candidates = append(candidates, domain.LanguageCandidate{
			Code:  *lang.LanguageCode,
			Score: score,
		})
	}

	// Callers take the first entry, so the ranking must not depend on the
	// service's response ordering.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates, nil
}
