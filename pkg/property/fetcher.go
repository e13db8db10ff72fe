package property

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	configpkg "github.com/minhyannv/property-assistant-go/pkg/config"
	loggerpkg "github.com/minhyannv/property-assistant-go/pkg/logger"
)

// ErrMalformed marks page or record content that is not valid JSON.
var ErrMalformed = errors.New("malformed property data")

const (
	userAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	nextDataSel     = "script#__NEXT_DATA__"
	clientCachePath = "props.pageProps.componentProps.gdpClientCache"
)

// Fetcher retrieves home-details pages, optionally through a proxy, and
// extracts the embedded property record.
type Fetcher struct {
	httpClient *http.Client
	proxied    bool
	logger     loggerpkg.Logger
	verbose    bool
}

// FetcherOption configures optional Fetcher dependencies.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the HTTP client. The proxy setting is not applied
// to a caller-supplied client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// WithLogger injects a logger; verbose enables debug lines.
func WithLogger(l loggerpkg.Logger, verbose bool) FetcherOption {
	return func(f *Fetcher) {
		f.logger = loggerpkg.OrNop(l)
		f.verbose = verbose
	}
}

// NewFetcher builds a Fetcher. A proxy without a domain means a direct connection.
func NewFetcher(proxy configpkg.ProxyConfig, opts ...FetcherOption) (*Fetcher, error) {
	proxyURL, err := proxy.URL()
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	if proxyURL != nil {
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	f := &Fetcher{
		httpClient: &http.Client{Transport: transport},
		proxied:    proxyURL != nil,
		logger:     loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// Fetch downloads pageURL and returns the raw JSON property record. A page
// that carries no property data yields (nil, nil).
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loggerpkg.Debug(f.verbose, f.logger, "fetching property page", map[string]any{
		"url":     pageURL,
		"proxied": f.proxied,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	nextData := strings.TrimSpace(doc.Find(nextDataSel).First().Text())
	loggerpkg.Debug(f.verbose, f.logger, "page parsed", map[string]any{
		"next_data_bytes": len(nextData),
	})
	return extractProperty(nextData)
}

// extractProperty walks the Next.js page state down to the first cached
// property object.
func extractProperty(nextData string) ([]byte, error) {
	if nextData == "" {
		return nil, nil
	}
	if !gjson.Valid(nextData) {
		return nil, fmt.Errorf("%w: page state is not valid JSON", ErrMalformed)
	}

	cache := gjson.Get(nextData, clientCachePath)
	if !cache.Exists() {
		return nil, nil
	}

	// The cache is usually a JSON document encoded as a string.
	cacheJSON := cache.Raw
	if cache.Type == gjson.String {
		cacheJSON = cache.String()
	}
	if !gjson.Valid(cacheJSON) {
		return nil, fmt.Errorf("%w: client cache is not valid JSON", ErrMalformed)
	}

	var record []byte
	gjson.Parse(cacheJSON).ForEach(func(_, entry gjson.Result) bool {
		prop := entry.Get("property")
		if prop.IsObject() && len(prop.Map()) > 0 {
			record = []byte(prop.Raw)
		}
		return false
	})
	return record, nil
}
