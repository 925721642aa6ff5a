package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/translate"
)

// translateAPI is the minimal Translate interface required by Client.
// *translate.Client from aws-sdk-go-v2 satisfies this interface.
type translateAPI interface {
	TranslateText(ctx context.Context, params *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error)
}

// Client wraps Amazon Translate text translation.
type Client struct {
	api translateAPI
}

func New(api translateAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("translate: api must not be nil")
	}
	return &Client{api: api}, nil
}

// Translate translates text between the given explicit language codes.
func (c *Client) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	if sourceCode == "" || targetCode == "" {
		return "", errors.New("translate: source and target language codes are required")
	}

	out, err := c.api.TranslateText(ctx, &translate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(sourceCode),
		TargetLanguageCode: aws.String(targetCode),
	})
	if err != nil {
		return "", fmt.Errorf("translate: translate text %s->%s: %w", sourceCode, targetCode, err)
	}
	if out == nil || out.TranslatedText == nil {
		return "", errors.New("translate: response missing translated text")
	}
	return *out.TranslatedText, nil
}
