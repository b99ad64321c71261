package guide

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultBaseURL = "https://en.wikivoyage.org/wiki"
	maxBriefRunes  = 1200
)

// Client fetches short destination briefs used to ground generation prompts.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a guide client. An empty baseURL selects the default
// travel wiki.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(firstNonEmpty(baseURL, defaultBaseURL), "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Brief fetches the destination's guide page and returns its opening
// paragraphs, capped in length. Any failure simply means generation goes
// ahead without background text.
func (c *Client) Brief(ctx context.Context, destination string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(destination), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build guide request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch guide page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("guide page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse guide page: %w", err)
	}

	// Remove noise so only readable prose is left.
	doc.Find("script, style, nav, footer, table, .infobox").Remove()

	var sb strings.Builder
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return true
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
		return sb.Len() < maxBriefRunes
	})

	brief := truncateRunes(sb.String(), maxBriefRunes)
	if brief == "" {
		return "", fmt.Errorf("no readable content for %q", destination)
	}
	return brief, nil
}

// pageURL maps a destination like "Hyderabad, India" to its page slug.
// Guide pages are titled by place name, so anything after a comma is
// dropped.
func (c *Client) pageURL(destination string) string {
	name := strings.TrimSpace(destination)
	if i := strings.Index(name, ","); i > 0 {
		name = strings.TrimSpace(name[:i])
	}
	slug := strings.ReplaceAll(name, " ", "_")
	return c.baseURL + "/" + url.PathEscape(slug)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
