package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// DefaultModelID is the Bedrock model used for grammar correction when no
// override is configured.
const DefaultModelID = "us.amazon.nova-lite-v1:0"

type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// RuntimeParams resolves the correction model id and instruction override.
// Values come from SSM Parameter Store when a prefix is configured and are
// loaded once per process; a load failure falls back to the compiled-in
// defaults and is not retried, so a Parameter Store outage is paid once per
// cold start and never blocks a message.
type RuntimeParams struct {
	params       ParamGetter
	paramPrefix  string
	defaultModel string
	log          *slog.Logger

	mu          sync.RWMutex
	loaded      bool
	modelID     string
	instruction string
}

// NewRuntimeParams creates a RuntimeParams resolver. getter may be nil, in
// which case the defaults are used without any remote lookup.
func NewRuntimeParams(getter ParamGetter, paramPrefix, defaultModel string, log *slog.Logger) *RuntimeParams {
	if log == nil {
		log = slog.Default()
	}
	defaultModel = strings.TrimSpace(defaultModel)
	if defaultModel == "" {
		defaultModel = DefaultModelID
	}
	return &RuntimeParams{
		params:       getter,
		paramPrefix:  strings.TrimRight(strings.TrimSpace(paramPrefix), "/"),
		defaultModel: defaultModel,
		log:          log,
	}
}

// ModelID returns the completion model id for this process.
func (p *RuntimeParams) ModelID(ctx context.Context) string {
	p.ensureLoaded(ctx)
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modelID
}

// CorrectionInstruction returns the configured instruction override, or the
// empty string when the built-in correction instruction should be used.
func (p *RuntimeParams) CorrectionInstruction(ctx context.Context) string {
	p.ensureLoaded(ctx)
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.instruction
}

func (p *RuntimeParams) ensureLoaded(ctx context.Context) {
	p.mu.RLock()
	if p.loaded {
		p.mu.RUnlock()
		return
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return
	}

	p.modelID = p.defaultModel
	p.instruction = ""
	p.loaded = true

	if p.params == nil || p.paramPrefix == "" {
		return
	}

	if v, err := p.params.GetParameter(ctx, p.paramPrefix+"/config/model_id"); err != nil {
		p.log.Warn("model id parameter unavailable, using default",
			"stage", "params_load", "default", p.defaultModel, "err", err)
	} else if v = strings.TrimSpace(v); v != "" {
		p.modelID = v
	}

	if v, err := p.params.GetParameter(ctx, p.paramPrefix+"/config/correction_prompt"); err != nil {
		p.log.Warn("correction prompt parameter unavailable, using built-in instruction",
			"stage", "params_load", "err", err)
	} else {
		p.instruction = strings.TrimSpace(v)
	}
}
