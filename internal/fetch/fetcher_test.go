package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/crimewatch/internal/config"
	"github.com/jonesrussell/crimewatch/internal/logger"
	"github.com/jonesrussell/crimewatch/internal/nlp"
)

const listingPage = `<html><body>
<a class="article" href="/articles/1">Robbery at downtown bank</a>
<a class="article" href="/articles/1">Robbery at downtown bank</a>
<a class="article" href="/articles/2">Two arrested after assault</a>
<a class="article" href="/articles/3">Farmers market opens Saturday</a>
</body></html>`

func articlePage(title, body string) string {
	return fmt.Sprintf(`<html><body>
<h1 class="headline">%s</h1>
<div class="story"><p>%s</p><p>More details to follow.</p></div>
</body></html>`, title, body)
}

func newTestSite(t *testing.T) (*httptest.Server, config.Site) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingPage)
	})
	mux.HandleFunc("/articles/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Robbery at downtown bank", "Police said the robbery happened Monday."))
	})
	mux.HandleFunc("/articles/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Two arrested after assault", "Officers made two arrests."))
	})
	mux.HandleFunc("/articles/3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Farmers market opens Saturday", "Fresh produce returns."))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, config.Site{
		Name:             "testsite",
		URL:              srv.URL + "/",
		ArticleSelector:  "a.article",
		HeadlineSelector: "h1.headline",
		ContentSelector:  "div.story p",
	}
}

func testFetchConfig() config.Fetch {
	return config.Fetch{
		UserAgent:         "crimewatch-test",
		Timeout:           5 * time.Second,
		RequestsPerSecond: 100,
		MaxArticles:       10,
	}
}

func TestFetchSiteCollectsArticles(t *testing.T) {
	_, site := newTestSite(t)

	f := New(testFetchConfig(), nil, nil, logger.NewNop())
	arts, err := f.FetchSite(context.Background(), site)
	require.NoError(t, err)
	require.Len(t, arts, 3)

	// Duplicate listing link fetched once, discovery order preserved.
	assert.Equal(t, "Robbery at downtown bank", arts[0].Headline)
	assert.Contains(t, arts[0].Content, "Police said the robbery happened Monday.")
	assert.Contains(t, arts[0].Content, "More details to follow.")
	assert.Equal(t, "testsite", arts[0].Source)
	assert.Contains(t, arts[0].URL, "/articles/1")
}

func TestFetchSiteKeywordFilter(t *testing.T) {
	_, site := newTestSite(t)

	f := New(testFetchConfig(), nlp.NewKeywordFilter(), nil, logger.NewNop())
	arts, err := f.FetchSite(context.Background(), site)
	require.NoError(t, err)

	// The farmers market link carries no crime keyword in its anchor
	// text and is never fetched.
	require.Len(t, arts, 2)
	assert.Equal(t, "Robbery at downtown bank", arts[0].Headline)
	assert.Equal(t, "Two arrested after assault", arts[1].Headline)
}

type staticURLChecker map[string]bool

func (c staticURLChecker) HasURL(ctx context.Context, url string) (bool, error) {
	return c[url], nil
}

func TestFetchSiteSkipsStoredURLs(t *testing.T) {
	srv, site := newTestSite(t)

	checker := staticURLChecker{srv.URL + "/articles/1": true}
	f := New(testFetchConfig(), nil, checker, logger.NewNop())
	arts, err := f.FetchSite(context.Background(), site)
	require.NoError(t, err)

	for _, a := range arts {
		assert.NotContains(t, a.URL, "/articles/1")
	}
}

func TestFetchSiteMaxArticlesCap(t *testing.T) {
	_, site := newTestSite(t)

	cfg := testFetchConfig()
	cfg.MaxArticles = 1
	f := New(cfg, nil, nil, logger.NewNop())
	arts, err := f.FetchSite(context.Background(), site)
	require.NoError(t, err)
	assert.Len(t, arts, 1)
}
