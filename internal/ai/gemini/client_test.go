package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type modelCall struct {
	model    string
	prompt   string
	deadline time.Time
}

type fakeModels struct {
	mu    sync.Mutex
	calls []modelCall
	resp  *genai.GenerateContentResponse
	err   error
	block bool
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	call := modelCall{model: model}
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		call.prompt = contents[0].Parts[0].Text
	}
	call.deadline, _ = ctx.Deadline()

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeneratorJoinsResponseParts(t *testing.T) {
	models := &fakeModels{resp: textResponse(" first ", "", "second")}
	g := newGenerator(models, "gemini-pro", time.Second, zap.NewNop())

	output, err := g.GenerateContent(context.Background(), "  prompt  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "first\nsecond" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(models.calls))
	}
	if models.calls[0].model != "gemini-pro" || models.calls[0].prompt != "prompt" {
		t.Fatalf("unexpected call: %+v", models.calls[0])
	}
	if models.calls[0].deadline.IsZero() {
		t.Fatalf("expected call to carry a deadline")
	}
}

func TestGeneratorDoesNotRetry(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}}
	g := newGenerator(models, "", time.Second, zap.NewNop())

	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error")
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
	if models.calls[0].model != defaultModel {
		t.Fatalf("expected default model, got %q", models.calls[0].model)
	}
}

func TestGeneratorTimesOut(t *testing.T) {
	models := &fakeModels{block: true}
	g := newGenerator(models, "gemini-pro", 20*time.Millisecond, zap.NewNop())

	_, err := g.GenerateContent(context.Background(), "prompt")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestGeneratorRejectsEmptyInputAndOutput(t *testing.T) {
	models := &fakeModels{resp: textResponse("   ")}
	g := newGenerator(models, "gemini-pro", time.Second, zap.NewNop())

	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if len(models.calls) != 0 {
		t.Fatalf("expected no calls for empty prompt, got %d", len(models.calls))
	}

	if _, err := g.GenerateContent(context.Background(), "prompt"); !errors.Is(err, errEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}

	var nilGenerator *Generator
	if _, err := nilGenerator.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for nil generator")
	}
}
