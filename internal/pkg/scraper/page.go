// Package scraper extracts readable text from company web pages for AI drafting.
package scraper

import (
	"context"
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gocolly/colly/v2"
)

// Config controls fetching. Private, loopback and link-local targets are
// refused unless AllowPrivateNetworks is set.
type Config struct {
	UserAgent            string
	Timeout              time.Duration
	MaxChars             int
	AllowPrivateNetworks bool
}

// Page is the text extracted from one URL
type Page struct {
	URL         string
	Title       string
	Description string
	Body        string
}

// Text joins the page parts into one prompt friendly block
func (p Page) Text() string {
	var b strings.Builder
	if p.Title != "" {
		fmt.Fprintf(&b, "タイトル: %s\n", p.Title)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "説明: %s\n", p.Description)
	}
	fmt.Fprintf(&b, "URL: %s\n\n%s", p.URL, p.Body)
	return b.String()
}

// Fetcher loads a page and returns its text
type Fetcher struct {
	cfg     Config
	allowed func(netip.AddrPort) bool
}

// NewFetcher creates a Fetcher with defaults filled in
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = 8000
	}
	f := &Fetcher{cfg: cfg, allowed: allowPublic}
	if cfg.AllowPrivateNetworks {
		f.allowed = allowAll
	}
	return f
}

// Fetch visits rawURL and collects title, meta description and visible body text
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid page url %q", rawURL)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.checkHost(ctx, u.Hostname(), urlPort(u)); err != nil {
		return nil, err
	}

	c := colly.NewCollector(colly.AllowedDomains(u.Hostname()))
	if f.cfg.UserAgent != "" {
		c.UserAgent = f.cfg.UserAgent
	}
	c.WithTransport(f.transport())
	c.SetRequestTimeout(f.cfg.Timeout)

	page := &Page{URL: u.String()}
	var reqErr error

	c.OnHTML("head > title", func(e *colly.HTMLElement) {
		if page.Title == "" {
			page.Title = collapseSpace(e.Text)
		}
	})
	c.OnHTML(`meta[name="description"], meta[property="og:description"]`, func(e *colly.HTMLElement) {
		if page.Description == "" {
			page.Description = collapseSpace(e.Attr("content"))
		}
	})
	c.OnHTML("body", func(e *colly.HTMLElement) {
		e.DOM.Find("script, style, noscript, nav, footer, svg").Remove()
		page.Body = collapseSpace(e.DOM.Text())
	})
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(page.URL); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", page.URL, err)
	}
	c.Wait()
	if reqErr != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", page.URL, reqErr)
	}

	page.Body = truncate(page.Body, f.cfg.MaxChars)
	return page, nil
}

func urlPort(u *url.URL) uint16 {
	if p, err := strconv.ParseUint(u.Port(), 10, 16); err == nil {
		return uint16(p)
	}
	if u.Scheme == "https" {
		return 443
	}
	return 80
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
