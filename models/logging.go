package models

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"

	"github.com/iterbot/iterbot"
)

// Logging decorates an iterbot.Model with zerolog call logging: one entry
// per call carrying latency, message count, and reply size or error.
type Logging struct {
	inner  iterbot.Model
	logger zerolog.Logger
}

// NewLogging wraps model so every call is logged.
func NewLogging(model iterbot.Model, logger zerolog.Logger) *Logging {
	return &Logging{inner: model, logger: logger}
}

// Name implements iterbot.Model.
func (m *Logging) Name() string {
	return m.inner.Name()
}

// Call implements iterbot.Model.
func (m *Logging) Call(ctx context.Context, messages []llms.MessageContent) (string, error) {
	start := time.Now()
	reply, err := m.inner.Call(ctx, messages)
	elapsed := time.Since(start)

	if err != nil {
		m.logger.Error().
			Str("model", m.inner.Name()).
			Int("messages", len(messages)).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("model call failed")
		return "", err
	}

	m.logger.Debug().
		Str("model", m.inner.Name()).
		Int("messages", len(messages)).
		Dur("elapsed", elapsed).
		Int("reply_chars", len(reply)).
		Msg("model call")
	return reply, nil
}

// Compile-time check that Logging implements iterbot.Model.
var _ iterbot.Model = (*Logging)(nil)
