package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"chat-processor/internal/domain"
)

const (
	// pivotLanguage is the canonical language agents converse in. It is the
	// only translation pivot; the pipeline never translates between two
	// non-English languages directly.
	pivotLanguage = "en"
	// detectionThreshold is the minimum confidence required before a
	// detected language triggers translation. At or below it the message is
	// treated as English.
	detectionThreshold = 0.5
)

type Detector interface {
	DetectLanguages(ctx context.Context, text string) ([]domain.LanguageCandidate, error)
}

type Translator interface {
	Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error)
}

type PreferenceStore interface {
	// Get returns the stored language code for a contact, or "" when no
	// preference exists.
	Get(ctx context.Context, contactID string) (string, error)
	Put(ctx context.Context, contactID, languageCode string) error
}

// Pipeline composes grammar correction with language detection, translation,
// and the per-conversation language preference. Every stage fails soft: a
// collaborator error degrades the result to an earlier stage's output and is
// logged, never returned. The Process methods therefore return plain strings.
type Pipeline struct {
	corrector  *Corrector
	detector   Detector
	translator Translator
	prefs      PreferenceStore
	log        *slog.Logger
}

func NewPipeline(corrector *Corrector, detector Detector, translator Translator, prefs PreferenceStore, log *slog.Logger) (*Pipeline, error) {
	if corrector == nil {
		return nil, errors.New("usecase: corrector must not be nil")
	}
	if detector == nil {
		return nil, errors.New("usecase: detector must not be nil")
	}
	if translator == nil {
		return nil, errors.New("usecase: translator must not be nil")
	}
	if prefs == nil {
		return nil, errors.New("usecase: preference store must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		corrector:  corrector,
		detector:   detector,
		translator: translator,
		prefs:      prefs,
		log:        log,
	}, nil
}

// ProcessCustomerMessage handles one inbound customer turn. A confident
// non-English detection records the language preference for the conversation
// and appends a corrected English translation inline; anything else, empty
// detection and failures included, degrades to grammar correction of the
// original content.
func (p *Pipeline) ProcessCustomerMessage(ctx context.Context, content, contactID string) string {
	candidates, err := p.detector.DetectLanguages(ctx, content)
	if err != nil {
		p.log.Warn("language detection failed, correcting only",
			"stage", "detect", "contactId", contactID, "err", err)
		return p.corrector.Correct(ctx, content)
	}
	if len(candidates) == 0 {
		return p.corrector.Correct(ctx, content)
	}

	top := candidates[0]
	if top.Code == pivotLanguage || top.Score <= detectionThreshold {
		return p.corrector.Correct(ctx, content)
	}

	// Record last-detected-language for the agent side of the conversation.
	// A failed write degrades translation continuity, not this message.
	if err := p.prefs.Put(ctx, contactID, top.Code); err != nil {
		p.log.Warn("language preference write failed",
			"stage", "preference_put", "contactId", contactID, "lang", top.Code, "err", err)
	}

	translated, err := p.translator.Translate(ctx, content, top.Code, pivotLanguage)
	if err != nil {
		p.log.Warn("customer translation failed, correcting only",
			"stage", "customer_translate", "contactId", contactID, "lang", top.Code, "err", err)
		return p.corrector.Correct(ctx, content)
	}

	corrected := p.corrector.Correct(ctx, translated)
	return fmt.Sprintf("%s (Translated to English: %s)", content, corrected)
}

// ProcessAgentMessage handles one outbound agent turn: correct, then
// translate into the conversation's stored language when one is recorded.
// Lookup and translation failures fall through to the corrected text alone.
func (p *Pipeline) ProcessAgentMessage(ctx context.Context, content, contactID string) string {
	corrected := p.corrector.Correct(ctx, content)

	code, err := p.prefs.Get(ctx, contactID)
	if err != nil {
		p.log.Warn("language preference read failed, skipping translation",
			"stage", "preference_get", "contactId", contactID, "err", err)
		return corrected
	}
	if code == "" || code == pivotLanguage {
		return corrected
	}

	translated, err := p.translator.Translate(ctx, corrected, pivotLanguage, code)
	if err != nil {
		// Logged distinctly from the no-preference case so telemetry can
		// tell a translation outage apart from an English conversation.
		p.log.Warn("agent translation failed, returning corrected text",
			"stage", "agent_translate", "contactId", contactID, "lang", code, "err", err)
		return corrected
	}
	return fmt.Sprintf("%s (Translated to %s: %s)", corrected, code, translated)
}

// CorrectOnly applies grammar correction without any translation. Used for
// messages from unrecognized participant roles.
func (p *Pipeline) CorrectOnly(ctx context.Context, content string) string {
	return p.corrector.Correct(ctx, content)
}
