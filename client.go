package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type client struct {
	api      *transport
	transfer *transport
	authKey  string
	logger   zerolog.Logger
	quota    *quotaGuard

	maxAttempts int
	backoffMin  time.Duration
	backoffMax  time.Duration

	pollInterval time.Duration
	pollMax      time.Duration
	waitTimeout  time.Duration

	// injected timing, replaced in tests to avoid real sleeps
	sleep  sleepFunc
	jitter func() float64
}

var _ Client = (*client)(nil)

type Option func(*client)

func WithServerURL(serverURL string) Option {
	return func(c *client) {
		c.api.resty.SetBaseURL(serverURL)
		c.transfer.resty.SetBaseURL(serverURL)
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.api.resty.SetTimeout(timeout)
		}
	}
}

// WithRestyClient allows callers to provide a preconfigured API client.
// Its retry machinery is disabled; retrying is this package's job.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *client) {
		if restyClient != nil {
			c.api = &transport{resty: restyClient.SetRetryCount(0)}
		}
	}
}

// WithTransferClient overrides the client used for result downloads,
// which tolerate much longer response times than API calls.
func WithTransferClient(transfer *resty.Client) Option {
	return func(c *client) {
		if transfer != nil {
			c.transfer = &transport{resty: transfer.SetRetryCount(0)}
		}
	}
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *client) {
		c.logger = logger
	}
}

// WithHeader adds a header to every request, e.g. a session correlation
// header. The client never interprets these.
func WithHeader(key, value string) Option {
	return func(c *client) {
		c.api.resty.SetHeader(key, value)
		c.transfer.resty.SetHeader(key, value)
	}
}

// WithHeaders adds a set of headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *client) {
		c.api.resty.SetHeaders(headers)
		c.transfer.resty.SetHeaders(headers)
	}
}

// WithMaxRetries caps the attempts per logical call (upload, one status
// poll, download).
func WithMaxRetries(attempts int) Option {
	return func(c *client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithBackoff bounds the delay between retried attempts.
func WithBackoff(min, max time.Duration) Option {
	return func(c *client) {
		if min > 0 {
			c.backoffMin = min
		}
		if max >= c.backoffMin {
			c.backoffMax = max
		}
	}
}

// WithPollInterval bounds the delay between status polls.
func WithPollInterval(initial, max time.Duration) Option {
	return func(c *client) {
		if initial > 0 {
			c.pollInterval = initial
		}
		if max >= c.pollInterval {
			c.pollMax = max
		}
	}
}

// WithDocumentWaitTimeout customizes the maximum wait for one document
// translation. Zero waits forever.
func WithDocumentWaitTimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.waitTimeout = timeout
	}
}

func NewClient(authKey string, opts ...Option) Client {
	c := &client{
		api:          &transport{resty: newDefaultAPIClient()},
		transfer:     &transport{resty: newTransferClient()},
		authKey:      authKey,
		logger:       zerolog.Nop(),
		quota:        newQuotaGuard(),
		maxAttempts:  DefaultMaxAttempts,
		backoffMin:   DefaultBackoffMin,
		backoffMax:   DefaultBackoffMax,
		pollInterval: DefaultPollInterval,
		pollMax:      DefaultPollMax,
		waitTimeout:  DocumentWaitTimeout,
		sleep:        sleepWithContext,
		jitter:       defaultJitter,
	}

	for _, opt := range opts {
		opt(c)
	}

	if authKey != "" {
		c.api.resty.SetHeader(authHeader, authKeyScheme+" "+authKey)
		c.transfer.resty.SetHeader(authHeader, authKeyScheme+" "+authKey)
	}

	return c
}

// Name returns the service name.
func (c *client) Name() string {
	return ServiceName
}

// Version returns the API version.
func (c *client) Version() string {
	return APIVersion
}

func (c *client) retry() *retryPolicy {
	return &retryPolicy{
		maxAttempts: c.maxAttempts,
		backoffMin:  c.backoffMin,
		backoffMax:  c.backoffMax,
		sleep:       c.sleep,
		jitter:      c.jitter,
		logger:      c.logger,
	}
}

func (c *client) poller() *pollScheduler {
	return &pollScheduler{
		initial: c.pollInterval,
		min:     c.pollInterval,
		max:     c.pollMax,
		growth:  pollGrowthFactor,
		maxWait: c.waitTimeout,
		sleep:   c.sleep,
		logger:  c.logger,
	}
}

func newDefaultAPIClient() *resty.Client {
	return resty.New().
		SetBaseURL(DefaultServerURL).
		SetTimeout(DefaultTimeout).
		SetRetryCount(0)
}

func newTransferClient() *resty.Client {
	return resty.New().
		SetBaseURL(DefaultServerURL).
		SetTimeout(DocumentWaitTimeout).
		SetRetryCount(0)
}
