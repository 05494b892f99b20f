package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/singhHariom1/Studysync-AI/internal/logger"
	"github.com/singhHariom1/Studysync-AI/internal/services"
)

type fakeResourceService struct {
	suggest    func(ctx context.Context, topics []string) (map[string][]string, int, error)
	configured bool
}

func (f *fakeResourceService) Suggest(ctx context.Context, topics []string) (map[string][]string, int, error) {
	return f.suggest(ctx, topics)
}

func (f *fakeResourceService) Configured() bool {
	return f.configured
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newResourcesRouter(t *testing.T, svc services.ResourceService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rh := NewResourcesHandler(newTestLogger(t), svc)
	router := gin.New()
	router.POST("/api/resources/suggest", rh.Suggest)
	router.GET("/api/resources/health", rh.Health)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestResourcesSuggest_Success(t *testing.T) {
	svc := &fakeResourceService{
		configured: true,
		suggest: func(ctx context.Context, topics []string) (map[string][]string, int, error) {
			out := make(map[string][]string, len(topics))
			for _, topic := range topics {
				out[topic] = []string{"[Video - YouTube](https://youtube.com/watch?v=x)"}
			}
			return out, len(topics), nil
		},
	}
	router := newResourcesRouter(t, svc)

	w := postJSON(t, router, "/api/resources/suggest", `{"topics":["Recursion","Graphs"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success     bool                `json:"success"`
		Resources   map[string][]string `json:"resources"`
		TotalTopics int                 `json:"totalTopics"`
		Message     string              `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.TotalTopics != 2 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Message != "Generated resources for 2 topics" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if len(resp.Resources["Recursion"]) != 1 {
		t.Fatalf("missing resources for topic: %+v", resp.Resources)
	}
}

func TestResourcesSuggest_BadRequests(t *testing.T) {
	svc := &fakeResourceService{
		configured: true,
		suggest: func(ctx context.Context, topics []string) (map[string][]string, int, error) {
			if topics == nil {
				return nil, 0, services.ErrTopicsRequired
			}
			if len(topics) == 0 {
				return nil, 0, services.ErrAtLeastOneTopic
			}
			return nil, 0, services.ErrTooManyTopics
		},
	}
	router := newResourcesRouter(t, svc)

	tests := []struct {
		name   string
		body   string
		substr string
	}{
		{"malformed json", `{"topics": "oops"}`, "Topics array is required"},
		{"missing topics", `{}`, "Topics array is required"},
		{"empty topics", `{"topics":[]}`, "At least one topic is required"},
		{"too many topics", `{"topics":["a","b","c","d","e","f","g","h","i","j","k"]}`, "Maximum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/resources/suggest", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.substr) {
				t.Fatalf("expected error containing %q, got %s", tt.substr, w.Body.String())
			}
		})
	}
}

func TestResourcesSuggest_NotConfiguredIs500(t *testing.T) {
	svc := &fakeResourceService{
		suggest: func(ctx context.Context, topics []string) (map[string][]string, int, error) {
			return nil, 0, services.ErrGeminiNotConfigured
		},
	}
	router := newResourcesRouter(t, svc)

	w := postJSON(t, router, "/api/resources/suggest", `{"topics":["Recursion"]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "GEMINI_API_KEY") {
		t.Fatalf("expected configuration message, got %s", w.Body.String())
	}
}

func TestResourcesHealth(t *testing.T) {
	router := newResourcesRouter(t, &fakeResourceService{configured: true})

	req := httptest.NewRequest(http.MethodGet, "/api/resources/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Status              string `json:"status"`
		GeminiConfigured    bool   `json:"geminiConfigured"`
		MaxTopicsPerRequest int    `json:"maxTopicsPerRequest"`
		TimeoutPerTopic     int64  `json:"timeoutPerTopic"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" || !resp.GeminiConfigured {
		t.Fatalf("unexpected health payload: %+v", resp)
	}
	if resp.MaxTopicsPerRequest != services.MaxTopicsPerRequest {
		t.Fatalf("unexpected topic cap: %d", resp.MaxTopicsPerRequest)
	}
	if resp.TimeoutPerTopic != services.TimeoutPerTopic.Milliseconds() {
		t.Fatalf("unexpected timeout: %d", resp.TimeoutPerTopic)
	}
}
