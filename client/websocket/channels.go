package websocket

import (
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/juju/errors"

	"deribit-sdk-go/client/rpc"
	"deribit-sdk-go/common"
	"deribit-sdk-go/sanitize"
)

// BookChannel returns the order-book updates channel for an instrument,
// e.g. "book.BTC-PERPETUAL.1.10.100ms". Zero group and depth are omitted.
// Only the 100ms interval is supported for book updates, so the interval
// component is fixed.
func BookChannel(instrument string, group, depth int) string {
	cn := common.ChannelName{
		Category:   common.ChannelBook,
		Instrument: sanitize.Instrument(instrument),
		Interval:   sanitize.Interval(common.DefaultIntervalMS),
	}

	if g, ok := sanitize.Group(group, false); ok {
		cn.Group = strconv.Itoa(g)
	}
	if d, ok := sanitize.Depth(depth, false); ok {
		cn.Depth = strconv.Itoa(d)
	}

	return cn.String()
}

// TradesChannel returns the executed-trades channel for an instrument at
// the given millisecond interval, e.g. "trades.BTC-PERPETUAL.100ms".
func TradesChannel(instrument string, intervalMS int) string {
	cn := common.ChannelName{
		Category:   common.ChannelTrades,
		Instrument: sanitize.Instrument(instrument),
		Interval:   sanitize.Interval(intervalMS),
	}
	return cn.String()
}

// QuoteChannel returns the best bid/ask channel for an instrument, e.g.
// "quote.BTC-PERPETUAL".
func QuoteChannel(instrument string) string {
	cn := common.ChannelName{
		Category:   common.ChannelQuote,
		Instrument: sanitize.Instrument(instrument),
	}
	return cn.String()
}

// MessageCB defines a callback for every raw frame received on a channel
// connection. Frames are delivered from a single goroutine, in arrival
// order; a blocked callback blocks the whole connection.
type MessageCB func(data []byte)

// ChannelClientParams contains options for creating a ChannelClient.
type ChannelClientParams struct {
	// URL defaults to DefaultURL.
	URL string

	// OnMessage receives every frame the server pushes on the connection.
	OnMessage MessageCB
}

// ChannelClient maintains one long-lived connection for public
// market-data subscriptions and tracks two channel sets: the channels the
// caller wants (pending) and the set last confirmed to the server
// (active). Subscribe and Unsubscribe only edit the pending set; Apply
// sends one subscription message naming the full pending set and, only if
// the send succeeds, replaces active with a snapshot of pending. A failed
// Apply leaves active untouched and pending dirty, and it is up to the
// caller to Apply again; there is no automatic retry.
type ChannelClient struct {
	url       string
	onMessage MessageCB

	mtx     sync.Mutex
	conn    *websocket.Conn
	active  []string
	pending []string
}

// NewChannelClient creates a new ChannelClient with the given params. The
// caller must Connect explicitly, so that callbacks can be in place before
// any frame arrives.
func NewChannelClient(params *ChannelClientParams) *ChannelClient {
	url := params.URL
	if url == "" {
		url = DefaultURL
	}

	return &ChannelClient{
		url:       url,
		onMessage: params.OnMessage,
	}
}

// Connect dials the endpoint and starts the read loop. Connecting an
// already connected client is an error.
func (cc *ChannelClient) Connect() error {
	cc.mtx.Lock()
	defer cc.mtx.Unlock()

	if cc.conn != nil {
		return errors.New("already connected")
	}

	conn, _, err := websocket.DefaultDialer.Dial(cc.url, nil)
	if err != nil {
		return errors.Annotatef(err, "dialing %s", cc.url)
	}
	cc.conn = conn

	go cc.readLoop(conn)

	return nil
}

// Close shuts the connection down. The channel sets survive a Close, so a
// later Connect plus Apply restores the previous subscriptions.
func (cc *ChannelClient) Close() error {
	cc.mtx.Lock()
	defer cc.mtx.Unlock()

	if cc.conn == nil {
		return errors.Trace(ErrNotConnected)
	}

	err := cc.conn.Close()
	cc.conn = nil
	return errors.Trace(err)
}

// readLoop delivers incoming frames to the message callback until the
// connection dies.
func (cc *ChannelClient) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if cc.onMessage != nil {
			cc.onMessage(data)
		}
	}
}

// Subscribe adds a channel to the pending set. Channels already pending
// or already confirmed are left alone. The change is not sent to the
// server until Apply.
func (cc *ChannelClient) Subscribe(channel string) {
	cc.mtx.Lock()
	defer cc.mtx.Unlock()

	if containsChannel(cc.active, channel) || containsChannel(cc.pending, channel) {
		return
	}
	cc.pending = append(cc.pending, channel)
}

// Unsubscribe removes a channel from the pending set. The change is not
// sent to the server until Apply.
func (cc *ChannelClient) Unsubscribe(channel string) {
	cc.mtx.Lock()
	defer cc.mtx.Unlock()

	for i, ch := range cc.pending {
		if ch == channel {
			cc.pending = append(cc.pending[:i:i], cc.pending[i+1:]...)
			return
		}
	}
}

// Apply sends one subscription message naming the full pending set. On a
// successful send the active set becomes a snapshot copy of pending; on
// failure the active set is left exactly as it was.
func (cc *ChannelClient) Apply() error {
	cc.mtx.Lock()
	defer cc.mtx.Unlock()

	if cc.conn == nil {
		return errors.Trace(ErrNotConnected)
	}

	msg := subscriptionRequest(append([]string(nil), cc.pending...))
	data, err := rpc.Marshal(msg)
	if err != nil {
		return errors.Trace(err)
	}

	if err := cc.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.Annotatef(err, "sending subscription message")
	}

	cc.active = append([]string(nil), cc.pending...)
	return nil
}

// Active returns a copy of the confirmed channel set.
func (cc *ChannelClient) Active() []string {
	cc.mtx.Lock()
	defer cc.mtx.Unlock()

	return append([]string(nil), cc.active...)
}

// Pending returns a copy of the desired channel set.
func (cc *ChannelClient) Pending() []string {
	cc.mtx.Lock()
	defer cc.mtx.Unlock()

	return append([]string(nil), cc.pending...)
}

// SubscribeOrderBook subscribes to book updates for an instrument and
// applies the change immediately.
func (cc *ChannelClient) SubscribeOrderBook(instrument string) error {
	cc.Subscribe(BookChannel(instrument, 0, 0))
	return errors.Trace(cc.Apply())
}

// SubscribeTrades subscribes to executed trades for an instrument and
// applies the change immediately.
func (cc *ChannelClient) SubscribeTrades(instrument string) error {
	cc.Subscribe(TradesChannel(instrument, common.DefaultIntervalMS))
	return errors.Trace(cc.Apply())
}

// SubscribeQuotes subscribes to best bid/ask quotes for an instrument and
// applies the change immediately.
func (cc *ChannelClient) SubscribeQuotes(instrument string) error {
	cc.Subscribe(QuoteChannel(instrument))
	return errors.Trace(cc.Apply())
}

func containsChannel(channels []string, channel string) bool {
	for _, ch := range channels {
		if ch == channel {
			return true
		}
	}
	return false
}
