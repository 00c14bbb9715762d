// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package source

import (
	"context"
	"html"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/GYCODES/manga-translate/internal/platform/constants"
)

var (
	// chapterNumberPattern extracts "Chapter 12.5" style numbering.
	chapterNumberPattern = regexp.MustCompile(`(?i)chapter[\s._-]*([0-9]+(?:\.[0-9]+)?)`)

	// bareNumberPattern is the fallback for links labeled only "12.5".
	bareNumberPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
)

// Mirror scrapes a read-online aggregator site.
//
// The mirror has no stable API; chapters are identified by their absolute
// reader URLs, which stand in for provider IDs. Markup drifts, so every
// selector has a loose fallback and parse misses degrade to skipped entries
// rather than failures.
type Mirror struct {
	client *client
	policy *bluemonday.Policy
	logger *slog.Logger
}

// NewMirror creates the scrape-based fallback provider.
func NewMirror(baseURL string, rps float64, logger *slog.Logger) *Mirror {
	return &Mirror{
		client: newClient(constants.SourceMirror, baseURL, rps),
		policy: bluemonday.StrictPolicy(),
		logger: logger,
	}
}

// Name implements [Provider].
func (p *Mirror) Name() string { return constants.SourceMirror }

// # Chapter Listing

/*
ListChapters scrapes the chapter index of the first series matching the
queried title.

Chapters come back in DOM order with their reader URL as ID. Numbers are
parsed from link text where present; entries whose text carries no number at
all are returned with an empty Number and normalized by the caller.
*/
func (p *Mirror) ListChapters(ctx context.Context, q Query) ([]ChapterRef, error) {
	if strings.TrimSpace(q.Title) == "" {
		return nil, nil
	}

	seriesURL, err := p.FindMangaID(ctx, q.Title)
	if err != nil {
		return nil, err
	}
	if seriesURL == "" {
		return nil, nil
	}

	document, err := p.client.getDocument(ctx, "list_chapters", seriesURL)
	if err != nil {
		return nil, err
	}

	links := document.Find("li.chapter a")
	if links.Length() == 0 {
		links = document.Find("a[href*='/chapter']")
	}

	var refs []ChapterRef
	links.Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		label := p.cleanText(link)
		refs = append(refs, ChapterRef{
			ID:     p.absoluteURL(href),
			Number: parseChapterNumber(label),
			Title:  label,
		})
	})

	p.logger.DebugContext(ctx, "mirror_series_scraped",
		slog.String("series_url", seriesURL),
		slog.Int("chapters", len(refs)),
	)

	return refs, nil
}

// FindMangaID implements [Provider] by scraping the search results page.
// The "ID" it returns is the absolute series page URL.
func (p *Mirror) FindMangaID(ctx context.Context, title string) (string, error) {
	values := url.Values{}
	values.Set("q", title)

	document, err := p.client.getDocument(ctx, "search", p.client.endpoint("/search", values))
	if err != nil {
		return "", err
	}

	link := document.Find("a.series-card").First()
	if link.Length() == 0 {
		link = document.Find("a[href^='/manga/']").First()
	}

	href, ok := link.Attr("href")
	if !ok || href == "" {
		return "", nil
	}

	return p.absoluteURL(href), nil
}

// # Page Listing

/*
ListPages scrapes the reader page whose URL is the chapter ID.

The mirror serves a single image tier, so the data-saver quality reports
empty without a fetch; the cascade then moves on with no wasted round trip.
*/
func (p *Mirror) ListPages(ctx context.Context, req PageRequest) ([]string, error) {
	if req.Quality == QualityDataSaver {
		return nil, nil
	}
	if !strings.HasPrefix(req.ChapterID, "http") {
		return nil, nil
	}

	document, err := p.client.getDocument(ctx, "list_pages", req.ChapterID)
	if err != nil {
		return nil, err
	}

	images := document.Find("img.page-image")
	if images.Length() == 0 {
		images = document.Find(".reading-content img")
	}
	if images.Length() == 0 {
		images = document.Find("#reader img")
	}

	var pages []string
	images.Each(func(_ int, image *goquery.Selection) {
		// Lazy-loading mirrors put the real URL in data-src.
		src, ok := image.Attr("data-src")
		if !ok || strings.TrimSpace(src) == "" {
			src, ok = image.Attr("src")
		}
		if !ok || strings.TrimSpace(src) == "" {
			return
		}

		pages = append(pages, p.absoluteURL(strings.TrimSpace(src)))
	})

	return pages, nil
}

// # Scrape Helpers

// cleanText strips markup from a scraped node and normalizes whitespace.
func (p *Mirror) cleanText(selection *goquery.Selection) string {
	rawHTML, err := selection.Html()
	if err != nil {
		rawHTML = selection.Text()
	}

	stripped := html.UnescapeString(p.policy.Sanitize(rawHTML))
	return strings.Join(strings.Fields(stripped), " ")
}

// absoluteURL resolves scraped hrefs against the mirror base.
func (p *Mirror) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return p.client.baseURL + href
}

// parseChapterNumber extracts and canonicalizes a chapter number from link
// text ("Chapter 003" → "3"). Returns "" when no number is present.
func parseChapterNumber(label string) string {
	var match string
	if groups := chapterNumberPattern.FindStringSubmatch(label); len(groups) == 2 {
		match = groups[1]
	} else {
		match = bareNumberPattern.FindString(label)
	}
	if match == "" {
		return ""
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return ""
	}

	return strconv.FormatFloat(value, 'f', -1, 64)
}
