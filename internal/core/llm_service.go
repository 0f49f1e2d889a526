package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/promptdesk/assistant/internal/eventlog"
)

const defaultModelName = "gemini-2.0-flash"

const (
	NoContentMessage     = "Could not generate a response. Please try again."
	BlockedMessage       = "Your request was blocked due to safety concerns. Please try a different query."
	requestFailedMessage = "An error occurred while generating response: %s. Please check the logs."
)

// FailureKind classifies why a generation produced no model text.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNoContent
	FailureBlocked
	FailureRequest
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNoContent:
		return "no_content"
	case FailureBlocked:
		return "blocked"
	case FailureRequest:
		return "request_failed"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// Result is the outcome of one model call: either Text, or a Failure with
// an optional Detail.
type Result struct {
	Text    string
	Failure FailureKind
	Detail  string
}

func (r Result) OK() bool {
	return r.Failure == FailureNone
}

// Display returns the text shown to the user for this result.
func (r Result) Display() string {
	switch r.Failure {
	case FailureNone:
		return r.Text
	case FailureNoContent:
		return NoContentMessage
	case FailureBlocked:
		return BlockedMessage
	default:
		return fmt.Sprintf(requestFailedMessage, r.Detail)
	}
}

// contentGenerator is the part of *genai.GenerativeModel the service uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type LLMService struct {
	client  *genai.Client
	model   contentGenerator
	initErr error
	logger  logrus.FieldLogger
}

// NewLLMService connects to Gemini. A missing key or a client that cannot be
// created is logged; the service is still returned and reports the problem
// on every Generate call.
func NewLLMService(apiKey, modelName string, logger logrus.FieldLogger) *LLMService {
	if modelName == "" {
		modelName = defaultModelName
	}
	if apiKey == "" {
		logger.Error("GOOGLE_API_KEY environment variable not set. API calls might fail.")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		logger.Errorf("Failed to create GenAI client: %v", err)
		return &LLMService{
			initErr: fmt.Errorf("failed to create GenAI client: %w", err),
			logger:  logger,
		}
	}

	return &LLMService{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}
}

func newLLMServiceWithGenerator(model contentGenerator, logger logrus.FieldLogger) *LLMService {
	return &LLMService{model: model, logger: logger}
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			s.logger.Warnf("Error closing GenAI client: %v", err)
		}
	}
}

// Generate sends prompt to the model and returns the first candidate's first
// text part. Exactly one log entry is written per call.
func (s *LLMService) Generate(ctx context.Context, prompt string) Result {
	if s.model == nil {
		s.logger.Errorf("Error calling Gemini API: %v", s.initErr)
		return Result{Failure: FailureRequest, Detail: s.initErr.Error()}
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			reason := blockReason(blocked)
			s.logger.Errorf("Gemini API call blocked for prompt: '%s...'. Reason: %s", eventlog.Preview(prompt), reason)
			return Result{Failure: FailureBlocked, Detail: reason}
		}
		s.logger.Errorf("Error calling Gemini API: %v", err)
		return Result{Failure: FailureRequest, Detail: err.Error()}
	}

	text, ok := firstText(resp)
	if !ok {
		s.logger.Errorf("Gemini API returned no content for prompt: '%s...'", eventlog.Preview(prompt))
		return Result{Failure: FailureNoContent}
	}

	s.logger.Infof("Gemini API call successful for prompt: '%s...'", eventlog.Preview(prompt))
	return Result{Text: text}
}

func firstText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", false
	}
	return string(txt), true
}

func blockReason(err *genai.BlockedError) string {
	switch {
	case err.PromptFeedback != nil:
		return fmt.Sprintf("%v", err.PromptFeedback.BlockReason)
	case err.Candidate != nil:
		return fmt.Sprintf("%v", err.Candidate.FinishReason)
	}
	return err.Error()
}
