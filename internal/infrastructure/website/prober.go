package website

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var spaLinkRegex = regexp.MustCompile(`(?i)spa|sauna|wellness`)

// maxHomepageBytes caps how much of a homepage is parsed
const maxHomepageBytes = 2 << 20

// Prober looks for a spa or sauna page on a venue website
type Prober struct {
	httpClient *http.Client
	timeout    time.Duration
	debug      bool
}

// NewProber creates a prober; timeout applies to each request
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// SetDebug enables per-request logging
func (p *Prober) SetDebug(debug bool) {
	p.debug = debug
}

// FindSpaPage tries origin+path with HEAD for each path and returns the first 2xx.
// If none answers it scans the homepage for a same-host link mentioning spa, sauna
// or wellness. When nothing is found it returns baseURL.
func (p *Prober) FindSpaPage(ctx context.Context, baseURL string, paths []string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return baseURL, fmt.Errorf("invalid website url %q", baseURL)
	}
	origin := base.Scheme + "://" + base.Host

	for _, path := range paths {
		if ctx.Err() != nil {
			return baseURL, ctx.Err()
		}
		candidate := origin + path
		if p.head(ctx, candidate) {
			log.Printf("[WEBSITE] Found spa page %s", candidate)
			return candidate, nil
		}
	}

	if link := p.homepageLink(ctx, base); link != "" {
		log.Printf("[WEBSITE] Found spa link on homepage: %s", link)
		return link, nil
	}

	return baseURL, nil
}

func (p *Prober) head(ctx context.Context, target string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "SaunaFinder/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if p.debug {
			log.Printf("[WEBSITE] HEAD %s failed: %v", target, err)
		}
		return false
	}
	resp.Body.Close()

	if p.debug {
		log.Printf("[WEBSITE] HEAD %s -> %d", target, resp.StatusCode)
	}
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// homepageLink returns the first same-host link whose href or text mentions a spa
func (p *Prober) homepageLink(ctx context.Context, base *url.URL) string {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "SaunaFinder/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxHomepageBytes))
	if err != nil {
		return ""
	}

	found := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "mailto:") {
			return true
		}
		if !spaLinkRegex.MatchString(href) && !spaLinkRegex.MatchString(s.Text()) {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if !strings.EqualFold(abs.Hostname(), base.Hostname()) {
			return true
		}
		abs.Fragment = ""
		found = abs.String()
		return false
	})
	return found
}
