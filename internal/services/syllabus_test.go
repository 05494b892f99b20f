package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/singhHariom1/Studysync-AI/internal/logger"
)

func newTestSyllabusService(t *testing.T, client GeminiClient, extractedText, method string) *syllabusService {
	t.Helper()
	return &syllabusService{
		log:    newTestLogger(t).With("service", "SyllabusService"),
		client: client,
		extract: func(log *logger.Logger, data []byte, filename string) (string, string) {
			return extractedText, method
		},
	}
}

func TestExtractTopics_NotConfigured(t *testing.T) {
	ss := newTestSyllabusService(t, nil, "some text", ExtractMethodContent)
	_, err := ss.ExtractTopics(context.Background(), []byte("%PDF"), "syllabus.pdf")
	if !errors.Is(err, ErrGeminiNotConfigured) {
		t.Fatalf("expected ErrGeminiNotConfigured, got %v", err)
	}
}

func TestExtractTopics_EmptyDocumentRejectedBeforeAICall(t *testing.T) {
	client := &fakeGeminiClient{generate: func(ctx context.Context, prompt string) (string, error) {
		return "1. Topic", nil
	}}
	ss := newTestSyllabusService(t, client, "   \n  ", ExtractMethodContent)

	_, err := ss.ExtractTopics(context.Background(), []byte("%PDF"), "scan.pdf")
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if atomic.LoadInt64(&client.calls) != 0 {
		t.Fatalf("empty document must not reach the model, got %d calls", client.calls)
	}
}

func TestExtractTopics_ContentPromptCarriesDocumentText(t *testing.T) {
	var gotPrompt string
	client := &fakeGeminiClient{generate: func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "1. Operating Systems\n2. Networks", nil
	}}
	ss := newTestSyllabusService(t, client, "Unit 1: Operating Systems basics", ExtractMethodContent)

	result, err := ss.ExtractTopics(context.Background(), []byte("%PDF"), "cs-syllabus.pdf")
	if err != nil {
		t.Fatalf("ExtractTopics: %v", err)
	}
	if !strings.Contains(gotPrompt, "Unit 1: Operating Systems basics") {
		t.Fatalf("expected content prompt to embed document text, got %q", gotPrompt)
	}
	if strings.Contains(gotPrompt, "Based on the filename") {
		t.Fatalf("content extraction must not use the filename prompt")
	}
	if result.Method != ExtractMethodContent {
		t.Fatalf("expected method %q, got %q", ExtractMethodContent, result.Method)
	}
	if len(result.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %v", result.Topics)
	}
	if result.FileName != "cs-syllabus.pdf" {
		t.Fatalf("unexpected filename: %q", result.FileName)
	}
}

func TestExtractTopics_SentinelSwitchesToFilenamePrompt(t *testing.T) {
	var gotPrompt string
	client := &fakeGeminiClient{generate: func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "1. Data Structures", nil
	}}
	sentinel := PDFFilenameSentinel + " dsa-notes.pdf"
	ss := newTestSyllabusService(t, client, sentinel, ExtractMethodFilename)

	result, err := ss.ExtractTopics(context.Background(), []byte("not a pdf"), "dsa-notes.pdf")
	if err != nil {
		t.Fatalf("ExtractTopics: %v", err)
	}
	if !strings.Contains(gotPrompt, `Based on the filename "dsa-notes.pdf"`) {
		t.Fatalf("expected filename prompt, got %q", gotPrompt)
	}
	if result.Method != ExtractMethodFilename {
		t.Fatalf("expected method %q, got %q", ExtractMethodFilename, result.Method)
	}
}

func TestExtractTopics_WrapsModelError(t *testing.T) {
	client := &fakeGeminiClient{generate: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("rate limited")
	}}
	ss := newTestSyllabusService(t, client, "real document text", ExtractMethodContent)

	_, err := ss.ExtractTopics(context.Background(), []byte("%PDF"), "syllabus.pdf")
	if err == nil || !strings.Contains(err.Error(), "Failed to process syllabus") {
		t.Fatalf("expected wrapped processing error, got %v", err)
	}
}

func TestBuildContentTopicPrompt_TruncatesLongDocuments(t *testing.T) {
	text := strings.Repeat("a", syllabusPromptMaxChars+500)
	prompt := buildContentTopicPrompt(text)
	if strings.Contains(prompt, strings.Repeat("a", syllabusPromptMaxChars+1)) {
		t.Fatalf("expected document text truncated to %d chars", syllabusPromptMaxChars)
	}
	if !strings.Contains(prompt, strings.Repeat("a", syllabusPromptMaxChars)) {
		t.Fatalf("expected the leading slice of the document to survive")
	}
}

func TestParseNumberedTopics(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		max  int
		want []string
	}{
		{
			name: "plain numbered list",
			raw:  "Here are the topics:\n1. Operating Systems\n2. Computer Networks\n\nGood luck!",
			max:  10,
			want: []string{"1. Operating Systems", "2. Computer Networks"},
		},
		{
			name: "indented lines trimmed",
			raw:  "  1. Databases  \n\t2. Compilers",
			max:  10,
			want: []string{"1. Databases", "2. Compilers"},
		},
		{
			name: "caps at max",
			raw:  "1. A\n2. B\n3. C",
			max:  2,
			want: []string{"1. A", "2. B"},
		},
		{
			name: "no numbered lines",
			raw:  "The syllabus covers many things.",
			max:  10,
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumberedTopics(tt.raw, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d topics, got %v", len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("topic %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
