// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import "strings"

// Input length limits per prompt type, in characters.
const (
	MaxChatQuestionLen = 500
	MaxResumeLen       = 5000
	MaxBlogContentLen  = 10000
)

// ChatPrompt builds the portfolio assistant prompt. The persona answers
// visitor questions about the portfolio owner, using the supplied background
// context, in 2-3 concise sentences.
func ChatPrompt(question, background string) string {
	var b strings.Builder
	b.WriteString("You are a helpful AI assistant on a personal portfolio website. ")
	b.WriteString("Answer questions about the portfolio owner based on the context below. ")
	b.WriteString("Be friendly and professional. Keep answers concise, 2-3 sentences. ")
	b.WriteString("If the context does not cover the question, say so honestly and suggest using the contact form.\n\n")
	if background != "" {
		b.WriteString("Context:\n")
		b.WriteString(background)
		b.WriteString("\n\n")
	}
	b.WriteString("Visitor question: ")
	b.WriteString(question)
	return b.String()
}

// ResumePrompt builds the resume critique prompt. The response covers
// strengths, areas for improvement, skill gaps, and an overall assessment.
func ResumePrompt(resumeText string) string {
	var b strings.Builder
	b.WriteString("You are an experienced technical recruiter. Analyze the resume below and provide:\n")
	b.WriteString("1. Key strengths\n")
	b.WriteString("2. Areas for improvement\n")
	b.WriteString("3. Missing skills worth adding\n")
	b.WriteString("4. Overall assessment\n\n")
	b.WriteString("Be specific and constructive.\n\n")
	b.WriteString("Resume:\n")
	b.WriteString(resumeText)
	return b.String()
}

// SummarizePrompt builds the blog summary prompt for a 5-6 line summary.
func SummarizePrompt(content string) string {
	var b strings.Builder
	b.WriteString("Summarize the following blog post in 5-6 lines. ")
	b.WriteString("Capture the main ideas and keep the author's tone.\n\n")
	b.WriteString(content)
	return b.String()
}

// RecommendationsPrompt builds the skill recommendations prompt, asking for
// 3-5 suggestions given the current skill set.
func RecommendationsPrompt(skills []string) string {
	var b strings.Builder
	b.WriteString("Given a developer with the following skills, recommend 3-5 technologies ")
	b.WriteString("or skills to learn next. For each, give a one-line reason tied to the existing skill set.\n\n")
	b.WriteString("Current skills: ")
	b.WriteString(strings.Join(skills, ", "))
	return b.String()
}
