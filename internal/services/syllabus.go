package services

import (
  "context"
  "errors"
  "fmt"
  "regexp"
  "strings"

  "github.com/singhHariom1/Studysync-AI/internal/logger"
)

// ErrEmptyDocument is returned when no text at all could be produced for
// prompting (corrupted upload, image-only scan with an empty name).
var ErrEmptyDocument = errors.New("Could not extract text from PDF. The file might be corrupted or contain only images.")

const (
  // Model input is bounded; only the leading slice of the document is sent.
  syllabusPromptMaxChars = 8000
  syllabusTopicCount     = 10
)

type SyllabusResult struct {
  FileName              string    `json:"fileName"`
  Topics                []string  `json:"topics"`
  RawResponse           string    `json:"rawResponse"`
  ExtractedTextLength   int       `json:"extractedTextLength"`
  Method                string    `json:"method"`
}

type SyllabusService interface {
  ExtractTopics(ctx context.Context, data []byte, filename string) (*SyllabusResult, error)
}

type syllabusService struct {
  log     *logger.Logger
  client  GeminiClient
  extract func(log *logger.Logger, data []byte, filename string) (string, string)
}

func NewSyllabusService(log *logger.Logger, client GeminiClient) SyllabusService {
  serviceLog := log.With("service", "SyllabusService")
  return &syllabusService{
    log:     serviceLog,
    client:  client,
    extract: ExtractTextFromPDF,
  }
}

func (ss *syllabusService) ExtractTopics(ctx context.Context, data []byte, filename string) (*SyllabusResult, error) {
  if ss.client == nil {
    return nil, ErrGeminiNotConfigured
  }

  text, method := ss.extract(ss.log, data, filename)
  ss.log.Info("Processed PDF upload", "filename", filename, "extracted_length", len(text), "method", method)
  if strings.TrimSpace(text) == "" {
    return nil, ErrEmptyDocument
  }

  var prompt string
  if IsFilenameSentinel(text) {
    prompt = buildFilenameTopicPrompt(FilenameFromSentinel(text))
  } else {
    prompt = buildContentTopicPrompt(text)
  }

  raw, err := ss.client.GenerateContent(ctx, prompt)
  if err != nil {
    ss.log.Error("Gemini topic extraction failed", "filename", filename, "error", err)
    return nil, fmt.Errorf("Failed to process syllabus: %w", err)
  }

  topics := ParseNumberedTopics(raw, syllabusTopicCount)
  ss.log.Info("Extracted topics from syllabus", "filename", filename, "topics", len(topics))

  return &SyllabusResult{
    FileName:            filename,
    Topics:              topics,
    RawResponse:         raw,
    ExtractedTextLength: len(text),
    Method:              method,
  }, nil
}

func buildContentTopicPrompt(text string) string {
  if len(text) > syllabusPromptMaxChars {
    text = text[:syllabusPromptMaxChars]
  }
  return fmt.Sprintf(`Extract the %d most important study topics from this syllabus/resume.

Document content:
%s

Please analyze the content and provide exactly %d topics in a numbered list format like this:
1. Topic Name
2. Topic Name
3. Topic Name
...

Focus on:
- Main subjects, chapters, or key learning areas
- Skills, technologies, or competencies mentioned
- Educational qualifications or certifications
- Work experience areas or specializations

Make the topics concise but descriptive. If the document appears to be a resume, extract key skills and areas of expertise. If it's a syllabus, extract main subjects and learning objectives.`, syllabusTopicCount, text, syllabusTopicCount)
}

func buildFilenameTopicPrompt(filename string) string {
  return fmt.Sprintf(`Based on the filename "%s", generate %d relevant study topics or skills that would typically be found in this type of document.

Please analyze the filename and provide exactly %d topics in a numbered list format like this:
1. Topic Name
2. Topic Name
3. Topic Name
...

Focus on:
- Skills, technologies, or competencies that would be relevant
- Educational topics or learning areas
- Professional skills or certifications
- Industry-specific knowledge areas

Make the topics concise but descriptive based on what the filename suggests.`, filename, syllabusTopicCount, syllabusTopicCount)
}

var numberedLineRegex = regexp.MustCompile(`^\d+\.`)

// ParseNumberedTopics keeps lines shaped like "3. Topic", trimmed, capped at
// max. Fewer matches than requested is fine; the model is asked for exactly
// ten but not trusted to comply.
func ParseNumberedTopics(raw string, max int) []string {
  lines := strings.Split(raw, "\n")
  topics := make([]string, 0, max)
  for _, line := range lines {
    trimmed := strings.TrimSpace(line)
    if !numberedLineRegex.MatchString(trimmed) {
      continue
    }
    topics = append(topics, trimmed)
    if len(topics) == max {
      break
    }
  }
  return topics
}
