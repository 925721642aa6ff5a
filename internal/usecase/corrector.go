package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"chat-processor/internal/domain"
)

type CompletionClient interface {
	Invoke(ctx context.Context, modelID, prompt string, cfg domain.InferenceConfig) (string, error)
}

// deterministicDecoding pins the completion call so repeated correction of
// identical input is expected to return consistent results.
var deterministicDecoding = domain.InferenceConfig{
	MaxTokens:   1000,
	Temperature: 0,
	TopP:        1,
}

// Corrector is the grammar correction stage. Correction is best-effort: on
// any completion failure the original text is returned unchanged, so this
// stage never blocks the pipeline.
type Corrector struct {
	llm    CompletionClient
	params *RuntimeParams
	log    *slog.Logger
}

func NewCorrector(llm CompletionClient, params *RuntimeParams, log *slog.Logger) (*Corrector, error) {
	if llm == nil {
		return nil, errors.New("usecase: completion client must not be nil")
	}
	if params == nil {
		return nil, errors.New("usecase: runtime params must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Corrector{llm: llm, params: params, log: log}, nil
}

// Correct returns a grammar- and spelling-corrected variant of text, or text
// itself when the completion service fails or returns nothing usable.
// Callers guarantee text is non-empty.
func (c *Corrector) Correct(ctx context.Context, text string) string {
	prompt := buildCorrectionPrompt(c.params.CorrectionInstruction(ctx), text)
	out, err := c.llm.Invoke(ctx, c.params.ModelID(ctx), prompt, deterministicDecoding)
	if err != nil {
		c.log.Warn("grammar correction failed, returning original text",
			"stage", "correct", "err", err)
		return text
	}
	out = strings.TrimSpace(out)
	if out == "" {
		c.log.Warn("grammar correction returned empty text, returning original text",
			"stage", "correct")
		return text
	}
	return out
}

// buildCorrectionPrompt assembles the completion prompt from the instruction
// block and the text to check. An empty instruction selects the built-in one.
func buildCorrectionPrompt(instruction, text string) string {
	if instruction == "" {
		instruction = defaultCorrectionInstruction()
	}
	return strings.Join([]string{
		instruction,
		"",
		"Text to check:",
		text,
		"",
		"Corrected text:",
	}, "\n")
}

func defaultCorrectionInstruction() string {
	return strings.Join([]string{
		"You are a grammar and spelling checker. Your task is to correct any spelling or grammar errors in the provided text while preserving the original meaning and tone.",
		"",
		"Rules:",
		"- Only fix spelling and grammar mistakes",
		"- Do not change the meaning or add new content",
		"- Preserve the original tone and style",
		"- Return ONLY the corrected text, nothing else",
		"- If the text is already correct, return it unchanged",
	}, "\n")
}
