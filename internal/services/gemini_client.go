package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "net/http"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/singhHariom1/Studysync-AI/internal/logger"
)

// ErrGeminiNotConfigured is returned by every AI-backed operation when the
// process was started without a GEMINI_API_KEY. The user-facing message is
// fixed so all endpoints fail the same way.
var ErrGeminiNotConfigured = errors.New("Gemini API key not configured. Please add GEMINI_API_KEY to your .env file")

type GeminiModel struct {
  Name               string    `json:"name"`
  DisplayName        string    `json:"displayName,omitempty"`
  SupportedMethods   []string  `json:"supportedGenerationMethods,omitempty"`
}

type GeminiClient interface {
  GenerateContent(ctx context.Context, prompt string) (string, error)
  ListModels(ctx context.Context) ([]GeminiModel, error)
}

type geminiClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client
}

func NewGeminiClient(log *logger.Logger) (GeminiClient, error) {
  apiKey := os.Getenv("GEMINI_API_KEY")
  if apiKey == "" {
    return nil, ErrGeminiNotConfigured
  }

  baseURL := os.Getenv("GEMINI_BASE_URL")
  if baseURL == "" {
    baseURL = "https://generativelanguage.googleapis.com"
  }

  model := os.Getenv("GEMINI_MODEL")
  if model == "" {
    model = "gemini-2.5-flash"
  }

  timeoutSec := 60
  if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  return &geminiClient{
    log:        log.With("service", "GeminiClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
  }, nil
}

type geminiHTTPError struct {
  StatusCode int
  Body       string
}

func (e *geminiHTTPError) Error() string {
  return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

func (c *geminiClient) do(ctx context.Context, method, path string, body any, out any) error {
  var buf bytes.Buffer
  if body != nil {
    if err := json.NewEncoder(&buf).Encode(body); err != nil {
      return err
    }
  }

  req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
  if err != nil {
    return err
  }
  req.Header.Set("x-goog-api-key", c.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return err
  }

  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return readErr
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return &geminiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }
  if out == nil {
    return nil
  }
  if uErr := json.Unmarshal(raw, out); uErr != nil {
    return fmt.Errorf("gemini decode error: %w; raw=%s", uErr, string(raw))
  }
  return nil
}

type geminiPart struct {
  Text string `json:"text"`
}

type geminiContent struct {
  Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
  Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
  Candidates []struct {
    Content struct {
      Parts []geminiPart `json:"parts"`
    } `json:"content"`
    FinishReason string `json:"finishReason,omitempty"`
  } `json:"candidates"`
  PromptFeedback struct {
    BlockReason string `json:"blockReason,omitempty"`
  } `json:"promptFeedback"`
}

func (c *geminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
  req := generateContentRequest{
    Contents: []geminiContent{
      {Parts: []geminiPart{{Text: prompt}}},
    },
  }

  var resp generateContentResponse
  path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
  if err := c.do(ctx, "POST", path, req, &resp); err != nil {
    return "", err
  }
  if resp.PromptFeedback.BlockReason != "" {
    return "", fmt.Errorf("gemini blocked prompt: %s", resp.PromptFeedback.BlockReason)
  }
  var text strings.Builder
  for _, cand := range resp.Candidates {
    for _, part := range cand.Content.Parts {
      text.WriteString(part.Text)
    }
    break
  }
  if text.Len() == 0 {
    return "", fmt.Errorf("no text candidates in gemini response")
  }
  return text.String(), nil
}

type listModelsResponse struct {
  Models []GeminiModel `json:"models"`
}

func (c *geminiClient) ListModels(ctx context.Context) ([]GeminiModel, error) {
  var resp listModelsResponse
  if err := c.do(ctx, "GET", "/v1beta/models", nil, &resp); err != nil {
    return nil, err
  }
  return resp.Models, nil
}
