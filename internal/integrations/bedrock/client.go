package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"chat-processor/internal/domain"
)

// bedrockAPI is the minimal Bedrock runtime interface required by Client.
// *bedrockruntime.Client from aws-sdk-go-v2 satisfies this interface.
type bedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// invokeRequest is the Nova messages-API request body.
type invokeRequest struct {
	Messages        []message       `json:"messages"`
	InferenceConfig inferenceConfig `json:"inferenceConfig"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Text string `json:"text"`
}

type inferenceConfig struct {
	MaxNewTokens int32   `json:"max_new_tokens"`
	Temperature  float32 `json:"temperature"`
	TopP         float32 `json:"top_p"`
}

// invokeResponse is the minimal response shape for Nova models; the
// completion text lives at output.message.content[0].text.
type invokeResponse struct {
	Output struct {
		Message struct {
			Content []contentBlock `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

// Client is a focused Bedrock runtime client for single-prompt completions.
type Client struct {
	api bedrockAPI
}

func New(api bedrockAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("bedrock: api must not be nil")
	}
	return &Client{api: api}, nil
}

// Invoke submits one user prompt to the given model and returns the model's
// text output.
func (c *Client) Invoke(ctx context.Context, modelID, prompt string, cfg domain.InferenceConfig) (string, error) {
	if strings.TrimSpace(modelID) == "" {
		return "", errors.New("bedrock: model id must not be empty")
	}

	body, err := json.Marshal(invokeRequest{
		Messages: []message{
			{Role: "user", Content: []contentBlock{{Text: prompt}}},
		},
		InferenceConfig: inferenceConfig{
			MaxNewTokens: cfg.MaxTokens,
			Temperature:  cfg.Temperature,
			TopP:         cfg.TopP,
		},
	})
	if err != nil {
		return "", fmt.Errorf("bedrock: marshal request: %w", err)
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock: invoke model: %w", err)
	}
	if out == nil || len(out.Body) == 0 {
		return "", errors.New("bedrock: empty response body")
	}

	var decoded invokeResponse
	if err := json.Unmarshal(out.Body, &decoded); err != nil {
		return "", fmt.Errorf("bedrock: decode response: %w", err)
	}
	if len(decoded.Output.Message.Content) == 0 {
		return "", errors.New("bedrock: response contained no content blocks")
	}

	text := strings.TrimSpace(decoded.Output.Message.Content[0].Text)
	if text == "" {
		return "", errors.New("bedrock: response contained no text")
	}
	return text, nil
}
