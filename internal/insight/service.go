// Package insight formats recent entries into a prompt and asks a generative
// model for advice. Every failure path degrades to a fixed message; callers
// never branch on an error from here.
package insight

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"driversdash/internal/core"
)

// Provider generates prose from a system instruction and a user message.
type Provider interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type Service struct {
	provider Provider
	group    singleflight.Group
}

// New returns a service backed by provider. A nil provider is allowed; the
// service then always answers with the fallback message once enough data
// exists.
func New(provider Provider) *Service {
	return &Service{provider: provider}
}

// RequestInsights returns advice text for the given entries, most recent
// first. Concurrent calls while a request is in flight share its result
// instead of issuing another one.
func (s *Service) RequestInsights(ctx context.Context, entries []core.Entry) string {
	if len(entries) < MinEntries {
		return InsufficientDataMessage
	}
	if s.provider == nil {
		slog.WarnContext(ctx, "Insight provider not configured")
		return FallbackMessage
	}

	v, err, shared := s.group.Do("insights", func() (any, error) {
		return s.provider.Generate(ctx, systemInstruction, BuildUserPrompt(entries))
	})
	if err != nil {
		slog.ErrorContext(ctx, "Insight generation failed", "error", err, "entries", len(entries))
		return FallbackMessage
	}
	if shared {
		slog.DebugContext(ctx, "Insight request coalesced with one in flight")
	}
	return v.(string)
}
