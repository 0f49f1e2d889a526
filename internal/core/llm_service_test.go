package core

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdesk/assistant/internal/eventlog"
)

type fakeGenerator struct {
	resp    *genai.GenerateContentResponse
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, p := range parts {
		if txt, ok := p.(genai.Text); ok {
			f.prompts = append(f.prompts, string(txt))
		}
	}
	return f.resp, f.err
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

type testLogs struct {
	events bytes.Buffer
	errors bytes.Buffer
}

func (l *testLogs) logger() *logrus.Logger {
	return eventlog.New(&l.events, &l.errors, nil)
}

func (l *testLogs) errorLines() int {
	return strings.Count(l.errors.String(), "\n")
}

func (l *testLogs) eventLines() int {
	return strings.Count(l.events.String(), "\n")
}

func TestLLMService_Generate_Success(t *testing.T) {
	var logs testLogs
	gen := &fakeGenerator{resp: textResponse(genai.Text("Paris"), genai.Text("ignored"))}
	svc := newLLMServiceWithGenerator(gen, logs.logger())

	res := svc.Generate(context.Background(), "Give a brief, direct answer to: capital of France?")

	require.True(t, res.OK())
	assert.Equal(t, "Paris", res.Text)
	assert.Equal(t, "Paris", res.Display())
	assert.Equal(t, []string{"Give a brief, direct answer to: capital of France?"}, gen.prompts)
	assert.Equal(t, 1, logs.eventLines())
	assert.Zero(t, logs.errorLines())
	assert.Contains(t, logs.events.String(), "Gemini API call successful")
}

func TestLLMService_Generate_NoContent(t *testing.T) {
	tests := map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"nil content":   {Candidates: []*genai.Candidate{{}}},
		"no parts":      textResponse(),
		"non-text part": textResponse(genai.Blob{MIMEType: "image/png", Data: []byte{1}}),
	}
	for name, resp := range tests {
		t.Run(name, func(t *testing.T) {
			var logs testLogs
			svc := newLLMServiceWithGenerator(&fakeGenerator{resp: resp}, logs.logger())

			res := svc.Generate(context.Background(), "prompt")

			assert.Equal(t, FailureNoContent, res.Failure)
			assert.Equal(t, NoContentMessage, res.Display())
			assert.Equal(t, 1, logs.errorLines())
			assert.Zero(t, logs.eventLines())
			assert.Contains(t, logs.errors.String(), "returned no content for prompt: 'prompt...'")
		})
	}
}

func TestLLMService_Generate_BlockedPrompt(t *testing.T) {
	var logs testLogs
	blocked := &genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}
	svc := newLLMServiceWithGenerator(&fakeGenerator{err: blocked}, logs.logger())

	res := svc.Generate(context.Background(), "something unsafe")

	assert.Equal(t, FailureBlocked, res.Failure)
	assert.Equal(t, BlockedMessage, res.Display())
	assert.NotEmpty(t, res.Detail)
	assert.Equal(t, 1, logs.errorLines())
	assert.Contains(t, logs.errors.String(), "Gemini API call blocked for prompt: 'something unsafe...'. Reason:")
}

func TestLLMService_Generate_BlockedCandidate(t *testing.T) {
	var logs testLogs
	blocked := &genai.BlockedError{Candidate: &genai.Candidate{FinishReason: genai.FinishReasonSafety}}
	svc := newLLMServiceWithGenerator(&fakeGenerator{err: blocked}, logs.logger())

	res := svc.Generate(context.Background(), "p")

	assert.Equal(t, FailureBlocked, res.Failure)
	assert.Equal(t, 1, logs.errorLines())
}

func TestLLMService_Generate_RequestError(t *testing.T) {
	var logs testLogs
	svc := newLLMServiceWithGenerator(&fakeGenerator{err: errors.New("rpc error: code = Unauthenticated")}, logs.logger())

	res := svc.Generate(context.Background(), "p")

	assert.Equal(t, FailureRequest, res.Failure)
	assert.Equal(t, "An error occurred while generating response: rpc error: code = Unauthenticated. Please check the logs.", res.Display())
	assert.Equal(t, 1, logs.errorLines())
	assert.Contains(t, logs.errors.String(), "Error calling Gemini API: rpc error")
}

func TestLLMService_Generate_ClientUnavailable(t *testing.T) {
	var logs testLogs
	svc := &LLMService{initErr: errors.New("failed to create GenAI client: boom"), logger: logs.logger()}

	res := svc.Generate(context.Background(), "p")

	assert.Equal(t, FailureRequest, res.Failure)
	assert.Contains(t, res.Display(), "boom")
	assert.Equal(t, 1, logs.errorLines())
	svc.Close()
}

func TestResult_Display(t *testing.T) {
	assert.Equal(t, "text", Result{Text: "text"}.Display())
	assert.Equal(t, NoContentMessage, Result{Failure: FailureNoContent}.Display())
	assert.Equal(t, BlockedMessage, Result{Failure: FailureBlocked, Detail: "SAFETY"}.Display())
	assert.Equal(t, "An error occurred while generating response: x. Please check the logs.",
		Result{Failure: FailureRequest, Detail: "x"}.Display())
}

func TestFailureKind_String(t *testing.T) {
	assert.Equal(t, "none", FailureNone.String())
	assert.Equal(t, "blocked", FailureBlocked.String())
	assert.Equal(t, "FailureKind(9)", FailureKind(9).String())
}
