package websocket

import (
	"sync"
	"time"

	"github.com/cryptowatch/clock"
	"github.com/google/uuid"
	"github.com/juju/errors"
)

const (
	// DefaultURL is the production websocket endpoint.
	DefaultURL = "wss://www.deribit.com/ws/api/v2"

	// DefaultRequestTimeout bounds a single round trip when
	// WSParams.RequestTimeout is left zero.
	DefaultRequestTimeout = 30 * time.Second
)

// The following errors are returned from Client and ChannelClient.
var (
	// ErrMissingAPIKey means no API key was provided at construction.
	ErrMissingAPIKey = errors.New("an API key must be provided")

	// ErrMissingSecretKey means no secret key was provided at construction.
	ErrMissingSecretKey = errors.New("a secret key must be provided")

	// ErrNotLoggedIn means an access token was needed but no login
	// exchange has succeeded yet.
	ErrNotLoggedIn = errors.New("access token not available")

	// ErrAuthnFailed means the login exchange returned an error envelope.
	// It is fatal to the current call but does not poison future calls: a
	// fresh login is attempted the next time one is needed.
	ErrAuthnFailed = errors.New("authentication failed")

	// ErrNotConnected means the connection is not established when the
	// client tried to e.g. send a message, or close the connection.
	ErrNotConnected = errors.New("not connected")
)

// WSParams contains options for constructing a client.
type WSParams struct {
	// APIKey and SecretKey authenticate with the exchange. Both are
	// mandatory for Client; ChannelClient only uses public channels and
	// needs neither.
	APIKey    string
	SecretKey string

	// URL is the websocket endpoint to connect to. You will not have to
	// set this unless testing against a non-production environment since
	// a default is always used.
	URL string

	// RequestTimeout bounds each send/receive round trip. This is a
	// hardening addition of this client: the upstream protocol specifies
	// no timeout.
	RequestTimeout time.Duration

	// Clock is used for token-expiry arithmetic; tests inject a mock.
	// Defaults to the wall clock.
	Clock clock.Clock
}

// WarningCB defines a callback function for OnWarning.
type WarningCB func(msg string)

// Client is the request/response client. Typically you will get an
// instance using NewClient, register any bus listeners you need, and then
// call its API methods; each method opens its own connection for the
// duration of the call.
//
// The session (access token state) is shared by concurrent calls on one
// Client and is internally synchronized; everything else is per-call.
type Client struct {
	id      string
	params  WSParams
	session *session
	bus     *NotificationBus

	mtx              sync.Mutex
	warningListeners []WarningCB
}

// NewClient creates a new Client with the given params. Missing
// credentials are rejected immediately rather than at first use.
func NewClient(params *WSParams) (*Client, error) {
	// Make a copy of params struct because we might alter it below
	p := *params

	if p.APIKey == "" {
		return nil, errors.Trace(ErrMissingAPIKey)
	}
	if p.SecretKey == "" {
		return nil, errors.Trace(ErrMissingSecretKey)
	}
	if p.URL == "" {
		p.URL = DefaultURL
	}
	if p.RequestTimeout == 0 {
		p.RequestTimeout = DefaultRequestTimeout
	}
	if p.Clock == nil {
		p.Clock = clock.New()
	}

	return &Client{
		id:      uuid.New().String(),
		params:  p,
		session: newSession(p.APIKey, p.SecretKey, p.Clock),
		bus:     NewNotificationBus(),
	}, nil
}

// ID returns the instance id of this client, useful for correlating log
// lines when running several clients.
func (c *Client) ID() string {
	return c.id
}

// URL returns the url the client connects to.
func (c *Client) URL() string {
	return c.params.URL
}

// Bus returns the client's notification bus. Each client owns its own
// bus; there is no process-wide signal registry.
func (c *Client) Bus() *NotificationBus {
	return c.bus
}

// IsLoggedIn reports whether at least one login exchange has succeeded.
func (c *Client) IsLoggedIn() bool {
	return c.session.isLoggedIn()
}

// AccessToken returns the current access token, or ErrNotLoggedIn if no
// login exchange has succeeded yet.
func (c *Client) AccessToken() (string, error) {
	return c.session.token()
}

// TokenExpiry returns the absolute token expiry time. The second return
// value is false while the expiry is unknown, which callers must treat as
// "unknown", not "never expires".
func (c *Client) TokenExpiry() (time.Time, bool) {
	return c.session.expiry()
}

// TokenLifespan returns how long the current token remains valid. A
// negative lifespan means the token has expired; expiry is advisory only
// and the client never forces a re-login because of it.
func (c *Client) TokenLifespan() (time.Duration, bool) {
	return c.session.lifespan()
}

// OnWarning registers a callback for sanitizer warnings (zero amounts,
// remapped legacy enum values and the like). Without a listener the
// warnings are dropped silently.
func (c *Client) OnWarning(cb WarningCB) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.warningListeners = append(c.warningListeners, cb)
}

func (c *Client) warn(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	c.mtx.Lock()
	listeners := append([]WarningCB(nil), c.warningListeners...)
	c.mtx.Unlock()

	for _, w := range warnings {
		for _, cb := range listeners {
			cb(w)
		}
	}
}
