// Package fetch harvests raw articles from configured news sites.
// It is deliberately dumb: selectors in, RawArticle values out. All
// decision logic lives downstream in nlp and dedup.
package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"github.com/jonesrussell/crimewatch/internal/config"
	"github.com/jonesrussell/crimewatch/internal/domain"
	"github.com/jonesrussell/crimewatch/internal/logger"
	"github.com/jonesrussell/crimewatch/internal/nlp"
)

// URLChecker answers whether an article URL is already stored, so the
// fetcher can skip the download entirely.
type URLChecker interface {
	HasURL(ctx context.Context, url string) (bool, error)
}

// Fetcher downloads listing pages and article pages for one site at a
// time, respecting per-domain delays and a global request budget.
type Fetcher struct {
	cfg     config.Fetch
	filter  *nlp.KeywordFilter
	urls    URLChecker
	limiter *rate.Limiter
	log     logger.Logger
}

// New creates a fetcher. filter may be nil to disable the crime
// keyword pre-filter; urls may be nil to disable the already-stored
// skip (both are used in tests).
func New(cfg config.Fetch, filter *nlp.KeywordFilter, urls URLChecker, log logger.Logger) *Fetcher {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Fetcher{
		cfg:     cfg,
		filter:  filter,
		urls:    urls,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
	}
}

// FetchSite harvests one site: collects candidate article links from
// the listing page, drops links that are stored already or carry no
// crime keyword, then fetches each remaining article page. Articles
// come back in discovery order. Pages with empty headline or content
// are returned as-is; downstream degrades gracefully.
func (f *Fetcher) FetchSite(ctx context.Context, site config.Site) ([]domain.RawArticle, error) {
	links, err := f.collectLinks(ctx, site)
	if err != nil {
		return nil, err
	}
	f.log.Info("article links collected",
		logger.String("site", site.Name),
		logger.Int("links", len(links)),
	)

	var articles []domain.RawArticle
	for _, link := range links {
		if len(articles) >= f.cfg.MaxArticles {
			break
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return articles, fmt.Errorf("rate limit wait: %w", err)
		}

		art, err := f.fetchArticle(site, link)
		if err != nil {
			f.log.Warn("article fetch failed",
				logger.String("url", link),
				logger.Error(err),
			)
			continue
		}
		articles = append(articles, art)
	}
	return articles, nil
}

// candidateLink is a discovered article link with its anchor text.
type candidateLink struct {
	url  string
	text string
}

func (f *Fetcher) collectLinks(ctx context.Context, site config.Site) ([]string, error) {
	c, err := f.newCollector(site)
	if err != nil {
		return nil, err
	}

	var candidates []candidateLink
	c.OnHTML(site.ArticleSelector, func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if href == "" {
			// Selector matched a heading; look for a link inside it.
			href, _ = e.DOM.Find("a[href]").First().Attr("href")
		}
		if href == "" {
			return
		}
		candidates = append(candidates, candidateLink{
			url:  e.Request.AbsoluteURL(href),
			text: strings.TrimSpace(e.Text),
		})
	})
	c.OnError(func(r *colly.Response, err error) {
		f.log.Warn("listing page request failed",
			logger.String("url", r.Request.URL.String()),
			logger.Int("status", r.StatusCode),
			logger.Error(err),
		)
	})

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if err := c.Visit(site.URL); err != nil {
		return nil, fmt.Errorf("visit %s: %w", site.URL, err)
	}

	seen := make(map[string]struct{})
	var links []string
	for _, cand := range candidates {
		if _, dup := seen[cand.url]; dup {
			continue
		}
		seen[cand.url] = struct{}{}

		if f.filter != nil && cand.text != "" && !f.filter.Relevant(cand.text) {
			continue
		}
		if f.urls != nil {
			stored, err := f.urls.HasURL(ctx, cand.url)
			if err != nil {
				return nil, fmt.Errorf("check stored url: %w", err)
			}
			if stored {
				continue
			}
		}
		links = append(links, cand.url)
	}
	return links, nil
}

func (f *Fetcher) fetchArticle(site config.Site, url string) (domain.RawArticle, error) {
	c, err := f.newCollector(site)
	if err != nil {
		return domain.RawArticle{}, err
	}

	art := domain.RawArticle{Source: site.Name, URL: url}
	c.OnHTML("html", func(e *colly.HTMLElement) {
		art.Headline = strings.TrimSpace(e.ChildText(site.HeadlineSelector))

		// Body text can be spread over many matching nodes; join them
		// in document order.
		var parts []string
		e.DOM.Find(site.ContentSelector).Each(func(_ int, sel *goquery.Selection) {
			if t := strings.TrimSpace(sel.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		art.Content = strings.Join(parts, " ")
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(url); err != nil {
		return domain.RawArticle{}, fmt.Errorf("visit %s: %w", url, err)
	}
	if fetchErr != nil {
		return domain.RawArticle{}, fmt.Errorf("fetch %s: %w", url, fetchErr)
	}
	return art, nil
}

// newCollector builds a synchronous collector with the site's domain
// scope and the configured politeness settings.
func (f *Fetcher) newCollector(site config.Site) (*colly.Collector, error) {
	opts := []colly.CollectorOption{
		colly.UserAgent(f.cfg.UserAgent),
	}
	if len(site.AllowedDomains) > 0 {
		opts = append(opts, colly.AllowedDomains(site.AllowedDomains...))
	}

	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(f.cfg.Timeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       f.cfg.Delay,
		RandomDelay: f.cfg.RandomDelay,
		Parallelism: 1,
	}); err != nil {
		return nil, fmt.Errorf("set fetch rate limit: %w", err)
	}
	return c, nil
}
