package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "net/http"
  "net/url"
  "regexp"
  "strings"
  "time"

  "golang.org/x/sync/errgroup"

  "github.com/singhHariom1/Studysync-AI/internal/logger"
)

const (
  MaxTopicsPerRequest = 10
  TimeoutPerTopic     = 15 * time.Second
)

var (
  ErrTopicsRequired   = errors.New("Topics array is required")
  ErrAtLeastOneTopic  = errors.New("At least one topic is required")
  ErrTooManyTopics    = fmt.Errorf("Maximum %d topics allowed per request", MaxTopicsPerRequest)
  ErrNoValidTopics    = errors.New("No valid topics provided")
)

var (
  markdownLinkRegex = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
  bareURLRegex      = regexp.MustCompile(`https?://[^\s]+`)
  videoDomainRegex  = regexp.MustCompile(`(?i)(?:youtube\.com|youtu\.be)`)
  leadingOrdinal    = regexp.MustCompile(`^\d+\.\s*`)
)

type ResourceService interface {
  Suggest(ctx context.Context, topics []string) (map[string][]string, int, error)
  Configured() bool
}

type resourceService struct {
  log             *logger.Logger
  client          GeminiClient
  httpClient      *http.Client
  youtubeAPIKey   string
  timeoutPerTopic time.Duration
}

func NewResourceService(log *logger.Logger, client GeminiClient, youtubeAPIKey string) ResourceService {
  serviceLog := log.With("service", "ResourceService")
  return &resourceService{
    log:             serviceLog,
    client:          client,
    httpClient:      &http.Client{Timeout: 10 * time.Second},
    youtubeAPIKey:   youtubeAPIKey,
    timeoutPerTopic: TimeoutPerTopic,
  }
}

func (rs *resourceService) Configured() bool {
  return rs.client != nil
}

// Suggest fans out one generation per topic, each racing a fixed timeout.
// Every input topic ends up with a non-empty list of at most two links; a
// slow or failing topic gets deterministic search-engine fallbacks and never
// blocks the others. The map is keyed by the topics as given.
func (rs *resourceService) Suggest(ctx context.Context, topics []string) (map[string][]string, int, error) {
  if rs.client == nil {
    return nil, 0, ErrGeminiNotConfigured
  }
  if topics == nil {
    return nil, 0, ErrTopicsRequired
  }
  if len(topics) == 0 {
    return nil, 0, ErrAtLeastOneTopic
  }
  if len(topics) > MaxTopicsPerRequest {
    return nil, 0, ErrTooManyTopics
  }

  validTopics := make([]string, 0, len(topics))
  for _, topic := range topics {
    if strings.TrimSpace(topic) != "" {
      validTopics = append(validTopics, topic)
    }
  }
  if len(validTopics) == 0 {
    return nil, 0, ErrNoValidTopics
  }

  rs.log.Info("Starting resource generation", "topics", len(validTopics))

  results := make([][]string, len(validTopics))
  g, gctx := errgroup.WithContext(ctx)
  for i, topic := range validTopics {
    i, topic := i, topic
    g.Go(func() error {
      // The per-topic deadline doubles as cancellation: losing the race
      // aborts the in-flight HTTP call instead of leaking it.
      topicCtx, cancel := context.WithTimeout(gctx, rs.timeoutPerTopic)
      defer cancel()

      links, err := rs.generateResourcesForTopic(topicCtx, topic)
      if err != nil || len(links) == 0 {
        rs.log.Warn("Falling back to search links for topic", "topic", topic, "error", err)
        results[i] = FallbackResources(topic)
        return nil
      }
      rs.log.Debug("Generated resources for topic", "topic", topic, "count", len(links))
      results[i] = links
      return nil
    })
  }
  _ = g.Wait()

  resources := make(map[string][]string, len(validTopics))
  for i, topic := range validTopics {
    resources[topic] = results[i]
  }
  return resources, len(validTopics), nil
}

func (rs *resourceService) generateResourcesForTopic(ctx context.Context, topic string) ([]string, error) {
  prompt := fmt.Sprintf(`Suggest 2 high-quality beginner-friendly resources (1 YouTube link and 1 article or PDF) to learn the topic: %s.
Provide only the clickable links with a short title label. Keep answers concise.
Format each resource as: "🎥 [Title - YouTube](link)" or "📘 [Title - Source](link)"`, CleanTopic(topic))

  response, err := rs.client.GenerateContent(ctx, prompt)
  if err != nil {
    return nil, err
  }

  links := ParseMarkdownLinks(response)
  if len(links) == 0 {
    links = parseBareURLs(response)
  }
  if len(links) > 2 {
    links = links[:2]
  }

  for i, link := range links {
    links[i] = rs.verifyVideoLink(ctx, topic, link)
  }
  return links, nil
}

// ParseMarkdownLinks extracts every [title](url) occurrence, re-serialized
// into canonical markdown-link strings.
func ParseMarkdownLinks(response string) []string {
  matches := markdownLinkRegex.FindAllStringSubmatch(response, -1)
  links := make([]string, 0, len(matches))
  for _, m := range matches {
    links = append(links, fmt.Sprintf("[%s](%s)", m[1], m[2]))
  }
  return links
}

func parseBareURLs(response string) []string {
  urls := bareURLRegex.FindAllString(response, -1)
  if len(urls) > 2 {
    urls = urls[:2]
  }
  links := make([]string, 0, len(urls))
  for i, u := range urls {
    links = append(links, fmt.Sprintf("[Resource %d](%s)", i+1, u))
  }
  return links
}

// FallbackResources builds the deterministic search links used whenever a
// topic's generation errors or times out.
func FallbackResources(topic string) []string {
  return []string{
    fmt.Sprintf("[Search %s on YouTube](https://youtube.com/results?search_query=%s)", topic, url.QueryEscape(topic)),
    fmt.Sprintf("[Search %s on Google](https://google.com/search?q=%s)", topic, url.QueryEscape(topic+" tutorial")),
  }
}

func youtubeSearchFallback(topic string) string {
  return fmt.Sprintf("[Search %s on YouTube](https://youtube.com/results?search_query=%s)", topic, url.QueryEscape(topic))
}

// CleanTopic strips the leading ordinal and markdown emphasis markers that
// extracted topics often carry ("3. **Data Structures**").
func CleanTopic(topic string) string {
  cleaned := strings.TrimSpace(topic)
  cleaned = leadingOrdinal.ReplaceAllString(cleaned, "")
  cleaned = strings.NewReplacer("**", "", "*", "", "__", "", "_", "").Replace(cleaned)
  return strings.TrimSpace(cleaned)
}

// verifyVideoLink checks that a video resource is still publicly viewable
// and swaps in the search fallback when it is not. Runs only for video
// domains and only when a YouTube data API key is configured.
func (rs *resourceService) verifyVideoLink(ctx context.Context, topic, link string) string {
  if rs.youtubeAPIKey == "" {
    return link
  }
  m := markdownLinkRegex.FindStringSubmatch(link)
  if m == nil {
    return link
  }
  rawURL := m[2]
  if !videoDomainRegex.MatchString(rawURL) {
    return link
  }
  videoID := extractYouTubeVideoID(rawURL)
  if videoID == "" {
    return link
  }
  alive, err := rs.videoIsPublic(ctx, videoID)
  if err != nil {
    rs.log.Warn("Video liveness check failed, replacing link", "topic", topic, "video_id", videoID, "error", err)
    return youtubeSearchFallback(topic)
  }
  if !alive {
    rs.log.Info("Video not publicly viewable, replacing link", "topic", topic, "video_id", videoID)
    return youtubeSearchFallback(topic)
  }
  return link
}

func extractYouTubeVideoID(rawURL string) string {
  u, err := url.Parse(rawURL)
  if err != nil {
    return ""
  }
  if strings.Contains(u.Host, "youtu.be") {
    return strings.Trim(u.Path, "/")
  }
  return u.Query().Get("v")
}

type youtubeVideosResponse struct {
  Items []struct {
    Status struct {
      PrivacyStatus string `json:"privacyStatus"`
    } `json:"status"`
  } `json:"items"`
}

func (rs *resourceService) videoIsPublic(ctx context.Context, videoID string) (bool, error) {
  endpoint := fmt.Sprintf("https://www.googleapis.com/youtube/v3/videos?part=status&id=%s&key=%s",
    url.QueryEscape(videoID), url.QueryEscape(rs.youtubeAPIKey))
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
  if err != nil {
    return false, err
  }
  resp, err := rs.httpClient.Do(req)
  if err != nil {
    return false, err
  }
  defer resp.Body.Close()
  if resp.StatusCode != http.StatusOK {
    return false, fmt.Errorf("youtube api status %d", resp.StatusCode)
  }
  var body youtubeVideosResponse
  if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
    return false, err
  }
  if len(body.Items) == 0 {
    return false, nil
  }
  return body.Items[0].Status.PrivacyStatus == "public", nil
}
