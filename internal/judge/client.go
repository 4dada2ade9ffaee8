// Package judge talks to the external judge site: account existence checks
// and resolution of shared-submission links. All HTML scraping is contained
// here; callers only see the SharedSubmission contract.
package judge

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/doyensec/safeurl"

	"github.com/jooddae/bojbot/internal/metrics"
)

const (
	defaultBaseURL       = "https://www.acmicpc.net"
	defaultShortLinkBase = "http://boj.kr/"

	userAgent = "bojbot/1.0"
)

// shareTokenPattern is the shape of the opaque token in a share link.
var shareTokenPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// SharedSubmission is the resolved content of a shared-submission page.
type SharedSubmission struct {
	JudgeID string
	Content string
}

// Client fetches pages from the judge site.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger

	// Overridable in tests.
	baseURL       string
	shortLinkBase string
}

// NewClient builds a Client on top of httpClient. Share links are
// user-controlled URLs, so production callers should pass the client from
// NewSafeHTTPClient. An empty baseURL selects the public judge site.
func NewClient(httpClient *http.Client, logger *slog.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:    httpClient,
		logger:        logger.With("component", "judge_client"),
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		shortLinkBase: defaultShortLinkBase,
	}
}

// NewSafeHTTPClient returns an HTTP client that refuses requests resolving
// to private, loopback, link-local or metadata addresses, including after
// DNS resolution (rebinding protection).
func NewSafeHTTPClient(timeout time.Duration) *http.Client {
	cfg := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()
	return safeurl.Client(cfg).Client
}

// UserExists reports whether judgeID is a registered account on the judge
// site, based on the profile page status code.
func (c *Client) UserExists(ctx context.Context, judgeID string) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.JudgeRequestDuration.WithLabelValues("user_exists").Observe(time.Since(start).Seconds())
	}()

	resp, err := c.get(ctx, c.baseURL+"/user/"+judgeID)
	if err != nil {
		return false, fmt.Errorf("fetch user page: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

// Ping reports whether the judge site front page is reachable. Used by the
// readiness probe; any response, even an error status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.get(ctx, c.baseURL+"/")
	if err != nil {
		return fmt.Errorf("ping judge site: %w", err)
	}
	resp.Body.Close()
	return nil
}

// SharedSubmission resolves link to the judge account and first source line
// of the shared submission it points at. It returns (nil, nil) when the link
// does not have an accepted shape or the page does not parse, and an error
// only for network failures.
func (c *Client) SharedSubmission(ctx context.Context, link string) (*SharedSubmission, error) {
	token, ok := c.shareToken(link)
	if !ok {
		return nil, nil
	}

	start := time.Now()
	defer func() {
		metrics.JudgeRequestDuration.WithLabelValues("shared_submission").Observe(time.Since(start).Seconds())
	}()

	resp, err := c.get(ctx, c.baseURL+"/source/share/"+token)
	if err != nil {
		return nil, fmt.Errorf("fetch shared submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("shared submission page returned error status",
			"status", resp.StatusCode, "token", token)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.logger.Warn("parse shared submission page", "error", err, "token", token)
		return nil, nil
	}

	return extractSubmission(doc), nil
}

// shareToken normalizes the two accepted link shapes (the full share URL
// and the short link) down to the bare token.
func (c *Client) shareToken(link string) (string, bool) {
	token := link
	if rest, ok := strings.CutPrefix(token, c.baseURL+"/source/share/"); ok {
		token = rest
	} else if rest, ok := strings.CutPrefix(token, c.shortLinkBase); ok {
		token = rest
	}

	if !shareTokenPattern.MatchString(token) {
		return "", false
	}
	return token, true
}

// extractSubmission pulls (judge id, first source line) out of the share
// page. The breadcrumb container carries the submitter on its fourth line;
// the source lives in the first textarea of the form body.
func extractSubmission(doc *goquery.Document) *SharedSubmission {
	crumbs := doc.Find("div.breadcrumbs div.container").First().Text()
	lines := strings.Split(crumbs, "\n")
	if len(lines) < 4 {
		return nil
	}
	judgeID := strings.TrimSpace(lines[3])

	source := doc.Find("div.form-group div.col-md-12 textarea").First().Text()
	content, _, _ := strings.Cut(source, "\n")

	if judgeID == "" || content == "" {
		return nil
	}
	return &SharedSubmission{JudgeID: judgeID, Content: content}
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	return c.httpClient.Do(req)
}
