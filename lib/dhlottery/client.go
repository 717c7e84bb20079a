package dhlottery

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"dhapi/lib/chrono"
	"dhapi/lib/restyutil"
	"dhapi/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("dhlottery")

const (
	report_client_bootstrap = "client.bootstrap"
	report_client_login     = "client.login"
	report_client_round     = "client.round"
	report_client_buy       = "client.buy"
	report_client_balance   = "client.balance"
	report_client_vaccount  = "client.virtual-account"
	report_client_observer  = "client.observer"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = rate.Limit(2)
)

type ClientOptions struct {
	Username string
	Password string

	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	// PurchaseUrl defaults to DefaultPurchaseUrl.
	PurchaseUrl string
	// Timeout is applied to every request, it defaults to DefaultTimeout.
	Timeout time.Duration
	// RateLimit is the maximum amount of requests per second, it defaults
	// to DefaultRateLimit.
	RateLimit rate.Limit

	Telemetry telemetry.API
	Clock     chrono.API
	// HttpOutput receives every request/response pair when it is not nil,
	// the password never reaches it.
	HttpOutput restyutil.InstrumentOutput
}

// Client is an authenticated session on the lottery portal. A Client is
// not safe for concurrent use.
type Client struct {
	baseUrl     *url.URL
	purchaseUrl *url.URL
	http        *resty.Client
	jar         http.CookieJar

	username  string
	sessionId string
	clock     chrono.API
	tel       telemetry.API
	observers []PurchaseObserver
}

// NewClient establishes a session and logs in, the returned Client is ready
// to make authenticated calls.
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	ctx, span := tracer.Start(ctx, "NewClient")
	defer span.End()

	c, err := newClient(opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create client")
		return nil, err
	}
	err = c.bootstrap(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to bootstrap session")
		return nil, err
	}
	err = c.login(ctx, opts.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to login")
		return nil, err
	}
	return c, nil
}

func newClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.PurchaseUrl == "" {
		opts.PurchaseUrl = DefaultPurchaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = DefaultRateLimit
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.SlogAPI{}
	}
	if opts.Clock == nil {
		clock, err := chrono.NewStandardImpl()
		if err != nil {
			return nil, fmt.Errorf("%w: load timezone: %w", ErrProtocol, err)
		}
		opts.Clock = clock
	}
	if opts.Username == "" || opts.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrAuthentication)
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base url: %w", ErrProtocol, err)
	}
	purchaseUrl, err := url.Parse(opts.PurchaseUrl)
	if err != nil {
		return nil, fmt.Errorf("%w: parse purchase url: %w", ErrProtocol, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create cookie jar: %w", ErrProtocol, err)
	}

	tel := telemetry.NewScopedAPI("dhlottery", opts.Telemetry)

	client := resty.New()
	client.SetBaseURL(baseUrl.String())
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeaders(defaultHeaders)
	client.SetHeader("Origin", baseUrl.String())
	client.SetHeader("Referer", baseUrl.String())
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(
		baseUrl.Hostname(),
		purchaseUrl.Hostname(),
	))
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, tel, "dhlottery/http")
	// after the instrumentation so a cancelled wait still ends up in a span
	limiter := rate.NewLimiter(opts.RateLimit, 2)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})
	restyutil.DumpMessages(client, opts.HttpOutput, "password")

	return &Client{
		baseUrl:     baseUrl,
		purchaseUrl: purchaseUrl,
		http:        client,
		jar:         jar,
		username:    opts.Username,
		clock:       opts.Clock,
		tel:         tel,
	}, nil
}

func (c *Client) Username() string {
	return c.username
}

// bootstrap opens a browser-like session, the portal issues the session
// cookie on the first page load.
func (c *Client) bootstrap(ctx context.Context) error {
	res, err := c.send(ctx, http.MethodGet, endpointDefaultSession, nil)
	if err != nil {
		c.tel.ReportBroken(report_client_bootstrap, err)
		return err
	}

	if res.RawResponse != nil && res.RawResponse.Request != nil &&
		res.RawResponse.Request.URL.Path == endpointSystemCheck {
		c.tel.ReportWarning(report_client_bootstrap, "portal under maintenance")
		return fmt.Errorf("%w: the portal is under maintenance", ErrProtocol)
	}

	var sessionId string
	for _, cookie := range c.jar.Cookies(c.baseUrl) {
		if cookie.Name == sessionCookie {
			sessionId = cookie.Value
			break
		}
	}
	if sessionId == "" {
		err := fmt.Errorf("%w: the portal did not issue a %s cookie", ErrProtocol, sessionCookie)
		c.tel.ReportBroken(report_client_bootstrap, err)
		return err
	}

	// the purchase host shares the session but never issues the cookie itself
	c.jar.SetCookies(c.purchaseUrl, []*http.Cookie{{
		Name:  sessionCookie,
		Value: sessionId,
		Path:  "/",
	}})
	c.sessionId = sessionId
	c.tel.ReportDebug("session established")
	return nil
}

func (c *Client) login(ctx context.Context, password string) error {
	form := loginRequest{
		ReturnUrl: c.baseUrl.String() + endpointMain,
		UserId:    c.username,
		Password:  password,
	}
	res, err := c.send(ctx, http.MethodPost, endpointLogin, form.formData())
	if err != nil {
		c.tel.ReportBroken(report_client_login, err)
		return err
	}
	doc, err := parseDocument(res)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProtocol, err)
	}

	// the login form is rendered again with a retry button when the
	// credentials were rejected
	if doc.Find("a.btn_common").Length() > 0 {
		c.tel.ReportWarning(report_client_login, c.username)
		return fmt.Errorf(
			"%w: the portal rejected the credentials of '%s'",
			ErrAuthentication, c.username,
		)
	}
	c.tel.ReportDebug("logged in", c.username)
	return nil
}

// send performs a request, transport failures and non-2xx responses are
// both ErrNetwork. `endpoint` is either relative to the base url or absolute.
func (c *Client) send(ctx context.Context, method, endpoint string, form map[string]string) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if form != nil {
		req.SetFormData(form)
	}
	res, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, endpoint, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s %s: unexpected status %s", ErrNetwork, method, endpoint, res.Status())
	}
	return res, nil
}

func (c *Client) purchaseEndpoint(path string) string {
	return c.purchaseUrl.JoinPath(path).String()
}

func parseDocument(res *resty.Response) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse html of %s: %w", res.Request.URL, err)
	}
	return doc, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
