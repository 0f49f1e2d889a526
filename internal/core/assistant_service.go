package core

import (
	"context"
	"html"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/promptdesk/assistant/internal/eventlog"
	"github.com/promptdesk/assistant/internal/prompts"
	"github.com/promptdesk/assistant/internal/store"
	"github.com/promptdesk/assistant/internal/utils"
)

const InvalidFunctionMessage = "Invalid function selected."

// Generator produces model text for a finished prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) Result
}

// PromptRequest carries the raw form fields of a generate submission.
type PromptRequest struct {
	FunctionChoice string
	Style          string
	Input          string
}

// Outcome is what the result view shows. RawResponse is kept verbatim so a
// later feedback submission can quote it.
type Outcome struct {
	Query        string
	Prompt       string
	ResponseHTML string
	RawResponse  string
	Failure      FailureKind
}

type AssistantService struct {
	llm      Generator
	feedback store.FeedbackStore
	logger   logrus.FieldLogger
	now      func() time.Time
}

func NewAssistantService(llm Generator, feedback store.FeedbackStore, logger logrus.FieldLogger) *AssistantService {
	return &AssistantService{
		llm:      llm,
		feedback: feedback,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AssistantService) Generate(ctx context.Context, req PromptRequest) Outcome {
	out := Outcome{Query: req.Input}

	choice, ok := prompts.ParseFunctionChoice(req.FunctionChoice)
	if !ok {
		s.logger.Errorf("Invalid function choice received: %s", req.FunctionChoice)
		out.ResponseHTML = html.EscapeString(InvalidFunctionMessage)
		return out
	}

	prompt, _ := prompts.Build(choice, req.Style, req.Input)
	out.Prompt = prompt

	s.logger.Infof("Generating response for function: %s, style: %s, input: '%s...' using Gemini.",
		choice, req.Style, eventlog.Preview(req.Input))
	result := s.llm.Generate(ctx, prompt)
	out.Failure = result.Failure
	out.RawResponse = result.Display()
	s.logger.Infof("AI Response generated: '%s...'", eventlog.Preview(out.RawResponse))

	rendered, err := utils.RenderMarkdown(out.RawResponse)
	if err != nil {
		s.logger.Warnf("Falling back to plain text response: %v", err)
		rendered = "<p>" + html.EscapeString(out.RawResponse) + "</p>"
	}
	out.ResponseHTML = rendered
	return out
}

// SubmitFeedback records a thumbs-up/down. Only the literal "yes" counts as
// helpful. Persistence errors are not reported to the caller.
func (s *AssistantService) SubmitFeedback(query, response, helpfulField string) store.FeedbackRecord {
	helpful := helpfulField == "yes"
	record := store.NewFeedbackRecord(query, response, helpful, s.now())

	// Append failures are logged by the store itself.
	_ = s.feedback.Append(record)
	s.logger.Infof("User feedback received: Query='%s...', Helpful=%t", eventlog.Preview(query), helpful)
	return record
}

func (s *AssistantService) ListFeedback() ([]store.FeedbackRecord, error) {
	return s.feedback.All()
}
