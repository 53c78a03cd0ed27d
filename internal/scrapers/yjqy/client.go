// client.go contains the http plumbing shared by every page of the site, the
// extractors for the individual pages live in their own files.

package yjqy

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
	"yjqy-scraper/internal/components/assert"
	"yjqy-scraper/internal/components/telemetry"
	"yjqy-scraper/pkg/htmlutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseUrl   = "http://qy.yjzqy.net:9090/"
	DefaultUserAgent = "yjqy-scraper/1.0"

	// every page on the site is served as gb2312 regardless of what the
	// headers say
	pageCharset = "gb2312"
)

var tracer = telemetry.Tracer("yjqy.internal.scrapers.yjqy")

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string
	// Timeout of 0 leaves requests without a deadline.
	Timeout time.Duration
	// RequestsPerSecond of 0 disables client side rate limiting.
	RequestsPerSecond float64
	CloudflareBypass  bool
	// MessageOutput receives a dump of every http exchange, can be nil.
	MessageOutput telemetry.MessageOutput
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	tel telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("yjqy", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if !strings.HasSuffix(opts.BaseUrl, "/") {
		opts.BaseUrl += "/"
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", opts.BaseUrl)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}

	if opts.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel, opts.MessageOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    httpClient,
		tel:     tel,
	}, nil
}

func schoolPath(code, page string) string {
	return fmt.Sprintf("/sc/%s/%s", url.PathEscape(code), page)
}

// fetch executes the request and parses the gb2312 body of a 2xx response.
func (c *Client) fetch(ctx context.Context, method, path string, form map[string]string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	)

	req := c.Http.R().SetContext(ctx)
	if form != nil {
		req.SetFormData(form)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, &TransportError{
			Method: method,
			Url:    c.BaseUrl.JoinPath(path).String(),
			Err:    err,
		}
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, res.Status())
		return nil, &TransportError{
			Method:     method,
			Url:        res.Request.URL,
			StatusCode: res.StatusCode(),
		}
	}

	doc, err := htmlutil.ParseDocument(res.Body(), pageCharset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, &ParseError{Page: path, Reason: "decode html", Err: err}
	}
	return doc, nil
}
