// Package fetcher pulls job postings from the web so a prep session can be
// seeded from a real listing instead of a hand-written description.
package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/abhishek622/prepai/pkg"
)

const maxDescriptionLen = 8000

var whitespaceRe = regexp.MustCompile(`[ \t]+`)

type JobPosting struct {
	Title       string
	URL         string
	Description string
}

// FetchJobPosting downloads the page and extracts its title and visible
// text. It is deliberately generic: job boards differ too much for
// per-site selectors to be worth maintaining.
func FetchJobPosting(ctx context.Context, rawURL, userAgent string) (*JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch job posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch job posting: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse job posting html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		title = h1
	}

	doc.Find("script, style, noscript, nav, footer, header, iframe").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return nil, fmt.Errorf("job posting has no body")
	}

	text := cleanText(body.Text())
	if text == "" {
		return nil, fmt.Errorf("job posting has no readable text")
	}
	text = pkg.Truncate(text, maxDescriptionLen)

	return &JobPosting{Title: title, URL: rawURL, Description: text}, nil
}

func cleanText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
