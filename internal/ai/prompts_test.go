// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"strings"
	"testing"
)

func TestChatPrompt(t *testing.T) {
	p := ChatPrompt("What does Oleg work with?", "Oleg is a Go developer.")
	if !strings.Contains(p, "What does Oleg work with?") {
		t.Error("prompt missing question")
	}
	if !strings.Contains(p, "Oleg is a Go developer.") {
		t.Error("prompt missing background context")
	}
	if !strings.Contains(p, "2-3 sentences") {
		t.Error("prompt missing length instruction")
	}
}

func TestChatPromptWithoutBackground(t *testing.T) {
	p := ChatPrompt("Hi", "")
	if strings.Contains(p, "Context:\n") {
		t.Error("prompt should omit empty context block")
	}
}

func TestResumePrompt(t *testing.T) {
	p := ResumePrompt("5 years of Go experience")
	for _, want := range []string{"strengths", "improvement", "assessment", "5 years of Go experience"} {
		if !strings.Contains(strings.ToLower(p), strings.ToLower(want)) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSummarizePrompt(t *testing.T) {
	p := SummarizePrompt("post body")
	if !strings.Contains(p, "5-6 lines") {
		t.Error("prompt missing summary length")
	}
	if !strings.Contains(p, "post body") {
		t.Error("prompt missing content")
	}
}

func TestRecommendationsPrompt(t *testing.T) {
	p := RecommendationsPrompt([]string{"Go", "SQLite", "React"})
	if !strings.Contains(p, "Go, SQLite, React") {
		t.Error("prompt missing joined skills")
	}
	if !strings.Contains(p, "3-5") {
		t.Error("prompt missing recommendation count")
	}
}
