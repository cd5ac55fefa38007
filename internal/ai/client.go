// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai generates text through Gemini's OpenAI-compatible endpoint,
// falling back across an ordered list of models.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// defaultModels is the ordered fallback chain. Earlier entries are preferred;
// later ones are tried when a model is unknown, quota-exhausted on the free
// tier, or failing.
var defaultModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-latest",
	"gemini-1.5-flash-002",
	"gemini-1.5-flash-8b",
}

// requestTimeout bounds a single model attempt.
const requestTimeout = 120 * time.Second

// Client generates text with model fallback.
type Client struct {
	api        openai.Client
	models     []string
	keyPrefix  string
	configured bool
}

// NewClient creates an AI client. An empty apiKey yields an unconfigured
// client whose calls fail fast with ErrNotConfigured.
func NewClient(apiKey, baseURL string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	return &Client{
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			// The model chain is the only retry mechanism; transport-level
			// retries would multiply quota consumption.
			option.WithMaxRetries(0),
		),
		models:     defaultModels,
		keyPrefix:  prefixKey(apiKey),
		configured: true,
	}
}

// prefixKey keeps the first few characters of a key for diagnostics.
func prefixKey(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[:8] + "..."
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.configured
}

// Models returns the fallback chain, for diagnostics.
func (c *Client) Models() []string {
	return c.models
}

// KeyPrefix returns a truncated form of the configured API key.
func (c *Client) KeyPrefix() string {
	return c.keyPrefix
}

// Generate sends the prompt to each model in order until one answers.
//
// Per attempt: an unknown model or a free-tier quota exhaustion moves to the
// next model; an auth failure or hard rate limit aborts immediately; any
// other failure is remembered and the next model is tried. When the chain is
// exhausted the last remembered error is returned, or a generic failure when
// nothing more specific was seen.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	var lastErr error
	for _, model := range c.models {
		text, err := c.attempt(ctx, model, prompt)
		if err == nil {
			return text, nil
		}

		switch Classify(err) {
		case KindModelNotFound:
			slog.Debug("model not available, trying next", "model", model)
		case KindQuotaFreeTier:
			slog.Warn("free-tier quota exhausted, trying next model", "model", model)
		case KindAuth:
			return "", fmt.Errorf("ai: authentication failed (%s): %w", keyGuidance, err)
		case KindQuotaHard:
			return "", fmt.Errorf("ai: rate limited, try again later: %w", err)
		default:
			slog.Warn("model attempt failed, trying next", "model", model, "error", err)
			lastErr = err
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("ai: all models failed, last error: %w", lastErr)
	}
	return "", errors.New("ai: all models failed")
}

// attempt runs a single chat completion against one model.
func (c *Client) attempt(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", model)
	}
	return resp.Choices[0].Message.Content, nil
}
