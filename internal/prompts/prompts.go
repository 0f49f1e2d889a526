// Package prompts turns a task kind, a style variant and the user's text into
// the instruction sent to the language model. Every function here is pure and
// degrades unknown inputs to a generic wording instead of failing.
package prompts

import (
	"fmt"
	"strings"
)

type FunctionChoice string

const (
	AnswerQuestion          FunctionChoice = "answer_question"
	SummarizeText           FunctionChoice = "summarize_text"
	GenerateCreativeContent FunctionChoice = "generate_creative_content"
)

const (
	DefaultQuestionStyle = "general"
	DefaultSummaryStyle  = "standard"
	DefaultContentType   = "story"
	DefaultCreativeStyle = "standard"
)

// ParseFunctionChoice reports whether s names one of the known task kinds.
func ParseFunctionChoice(s string) (FunctionChoice, bool) {
	switch c := FunctionChoice(s); c {
	case AnswerQuestion, SummarizeText, GenerateCreativeContent:
		return c, true
	}
	return "", false
}

var questionTemplates = map[string]string{
	"general":  "Answer the following question clearly and concisely: %s",
	"detailed": "Provide a comprehensive answer to the following question, including relevant context and details: %s",
	"concise":  "Give a brief, direct answer to: %s",
}

const questionFallback = "Answer the question: %s"

var summaryTemplates = map[string]string{
	"standard":   "Summarize the following text, capturing its main ideas and important details:\n\n%s",
	"key_points": "Extract the most important key points and main arguments from the following text in bullet points:\n\n%s",
	"very_short": "Provide a very brief, one-paragraph summary of the following text:\n\n%s",
}

const summaryFallback = "Summarize this text: %s"

type creativeKey struct {
	contentType string
	style       string
}

var creativeTemplates = map[creativeKey]string{
	{"story", "standard"}:         "Write a short story about: %s",
	{"story", "imaginative"}:      "Craft an imaginative and engaging short story, full of vivid descriptions, centered around the theme of: %s",
	{"story", "structured"}:       "Write a story about '%s' with a clear beginning, rising action, climax, falling action, and resolution. Aim for about 3-4 paragraphs.",
	{"poem", "standard"}:          "Write a poem about: %s",
	{"poem", "imaginative"}:       "Compose an evocative and artistic poem that captures the essence of: %s. Use metaphors and imagery.",
	{"poem", "structured"}:        "Write a four-stanza poem about '%s' with an AABB rhyme scheme.",
	{"essay_idea", "standard"}:    "Generate an idea for an essay on the topic: %s",
	{"essay_idea", "imaginative"}: "Brainstorm a unique and thought-provoking essay topic related to: %s, including a potential thesis statement.",
	{"essay_idea", "structured"}:  "Suggest three distinct essay ideas for the topic '%s', each with a brief outline of key arguments.",
}

const creativeFallback = "Generate creative content based on: %s"

// QuestionAnswering wraps a question in the lead-in for style.
func QuestionAnswering(query, style string) string {
	return render(questionTemplates, style, questionFallback, query)
}

// Summarization wraps text to summarize in the lead-in for style.
func Summarization(text, style string) string {
	return render(summaryTemplates, style, summaryFallback, text)
}

// CreativeContent looks up the (contentType, style) template; pairs outside
// the table get the generic creative prompt.
func CreativeContent(topic, contentType, style string) string {
	return render(creativeTemplates, creativeKey{contentType, style}, creativeFallback, topic)
}

// SplitCreativeStyle splits a compound "<content_type>_<style>" key on its
// first underscore. A key without one is a style for the default content type.
//
// Content types that contain an underscore themselves are split too early:
// "essay_idea_standard" yields ("essay", "idea_standard"), which has no
// template and ends at the generic creative prompt.
func SplitCreativeStyle(key string) (contentType, style string) {
	contentType, style, found := strings.Cut(key, "_")
	if !found {
		return DefaultContentType, key
	}
	return contentType, style
}

// Build produces the prompt for a form submission. ok is false when choice
// is not a known task kind.
func Build(choice FunctionChoice, style, input string) (prompt string, ok bool) {
	switch choice {
	case AnswerQuestion:
		return QuestionAnswering(input, style), true
	case SummarizeText:
		return Summarization(input, style), true
	case GenerateCreativeContent:
		contentType, creativeStyle := SplitCreativeStyle(style)
		return CreativeContent(input, contentType, creativeStyle), true
	}
	return "", false
}

func render[K comparable](table map[K]string, key K, fallback, text string) string {
	format, ok := table[key]
	if !ok {
		format = fallback
	}
	return fmt.Sprintf(format, text)
}
