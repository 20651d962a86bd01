package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	urlFetchTimeout = 10 * time.Second

	// ScrapedTextLimit caps how many characters of scraped page text
	// are kept.
	ScrapedTextLimit = 8000
)

var ErrFetch = errors.New("failed to fetch url")

// URLScraper fetches a page and reduces it to readable text.
type URLScraper struct {
	client *resty.Client
}

func NewURLScraper() *URLScraper {
	return &URLScraper{
		client: resty.New().SetTimeout(urlFetchTimeout),
	}
}

// Scrape fetches url, strips script and style markup, collapses
// whitespace runs and truncates the result to ScrapedTextLimit
// characters. Non-2xx responses and transport failures fail with
// ErrFetch.
func (s *URLScraper) Scrape(ctx context.Context, url string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	doc.Find("script, style").Remove()

	return TruncateRunes(strings.Join(strings.Fields(doc.Text()), " "), ScrapedTextLimit), nil
}

// TruncateRunes keeps at most limit characters, never splitting a
// multi-byte rune.
func TruncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
