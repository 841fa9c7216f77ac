package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	"github.com/noah-isme/clarifyai-api/internal/observability"
	"github.com/noah-isme/clarifyai-api/pkg/events"
)

func newRichTextPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("target").OnElements("a")
	return policy
}

// cleanRichText stores plain text verbatim and reduces markup to the UGC
// allow-list. The cleaned value must still fit within maxRunes.
func cleanRichText(policy *bluemonday.Policy, field, value string, maxRunes int) (string, error) {
	clean := value
	if containsMarkup(value) {
		clean = strings.TrimSpace(policy.Sanitize(value))
		if clean == "" {
			return "", &FieldError{Field: field, Err: ErrEmptyContent}
		}
	}
	if utf8.RuneCountInString(clean) > maxRunes {
		return "", &FieldError{Field: field, Err: ErrContentTooLong}
	}
	return clean, nil
}

// containsMarkup reports whether value holds at least one HTML element,
// comment or doctype. Bare '<', '>' and '&' in prose do not count.
func containsMarkup(value string) bool {
	if !strings.Contains(value, "<") {
		return false
	}
	tokenizer := html.NewTokenizer(strings.NewReader(value))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if errors.Is(tokenizer.Err(), io.EOF) {
				return false
			}
			return true
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
			return true
		}
	}
}

// normalizeTags lower-cases and trims tags, dropping empties and repeats.
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		clean := strings.ToLower(strings.TrimSpace(tag))
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		normalized = append(normalized, clean)
	}
	return normalized
}

func publishEvent(ctx context.Context, publisher events.Publisher, logger zerolog.Logger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		observability.EventPublishFailures().WithLabelValues(event.Type).Inc()
		logger.Warn().Err(err).Str("event", event.Type).Str("id", event.ID).Msg("failed to publish domain event")
	}
}

func failSpan(span trace.Span, err error, status string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
}
