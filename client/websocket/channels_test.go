package websocket

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestChannelFormatters(t *testing.T) {
	assert.Equal(t, "book.BTC-PERPETUAL.100ms", BookChannel("btc-perpetual", 0, 0))
	assert.Equal(t, "book.BTC-PERPETUAL.1.10.100ms", BookChannel("BTC-PERPETUAL", 1, 10))

	// Grouping snaps to the supported granularities.
	assert.Equal(t, "book.BTC-PERPETUAL.5.20.100ms", BookChannel("BTC-PERPETUAL", 7, 20))

	assert.Equal(t, "trades.BTC-PERPETUAL.100ms", TradesChannel("BTC-PERPETUAL", 0))
	assert.Equal(t, "trades.ETH-PERPETUAL.500ms", TradesChannel("eth-perpetual", 500))

	assert.Equal(t, "quote.BTC-PERPETUAL", QuoteChannel("btc-perpetual"))
}

func TestChannelClientTracksSets(t *testing.T) {
	cc := NewChannelClient(&ChannelClientParams{})

	cc.Subscribe("book.BTC-PERPETUAL.100ms")
	cc.Subscribe("quote.BTC-PERPETUAL")
	cc.Subscribe("book.BTC-PERPETUAL.100ms") // duplicate, ignored

	assert.Equal(t, []string{"book.BTC-PERPETUAL.100ms", "quote.BTC-PERPETUAL"}, cc.Pending())
	assert.Empty(t, cc.Active())

	cc.Unsubscribe("quote.BTC-PERPETUAL")
	assert.Equal(t, []string{"book.BTC-PERPETUAL.100ms"}, cc.Pending())

	// Nothing has been sent, so applying without a connection fails and
	// leaves both sets as they were.
	err := cc.Apply()
	assert.Equal(t, ErrNotConnected, errors.Cause(err))
	assert.Empty(t, cc.Active())
	assert.Equal(t, []string{"book.BTC-PERPETUAL.100ms"}, cc.Pending())
}

func TestChannelClientApply(t *testing.T) {
	respond := func(req map[string]interface{}) map[string]interface{} {
		// Subscription confirmations are pushed asynchronously; the
		// client does not wait for them.
		return nil
	}

	err := withTestServer(t, respond, func(tp *testServerParams) error {
		cc := NewChannelClient(&ChannelClientParams{URL: tp.url})

		if err := cc.Connect(); err != nil {
			return errors.Trace(err)
		}
		defer cc.Close()

		assert.Error(t, cc.Connect())

		cc.Subscribe("book.BTC-PERPETUAL.100ms")
		cc.Subscribe("trades.BTC-PERPETUAL.100ms")
		if err := cc.Apply(); err != nil {
			return errors.Trace(err)
		}

		assert.Equal(t, []string{
			"book.BTC-PERPETUAL.100ms",
			"trades.BTC-PERPETUAL.100ms",
		}, cc.Active())

		// The server saw exactly one subscription message naming the full
		// pending set.
		deadline := time.Now().Add(time.Second)
		for len(tp.requests()) == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}

		reqs := tp.requests()
		if !assert.Equal(t, 1, len(reqs)) {
			return nil
		}
		assert.Equal(t, methodSubscribe, reqs[0]["method"])
		params, _ := reqs[0]["params"].(map[string]interface{})
		assert.Equal(t, []interface{}{
			"book.BTC-PERPETUAL.100ms",
			"trades.BTC-PERPETUAL.100ms",
		}, params["channels"])

		return nil
	})
	if err != nil {
		t.Fatal(errors.ErrorStack(err))
	}
}

func TestChannelClientDeliversFrames(t *testing.T) {
	respond := func(req map[string]interface{}) map[string]interface{} {
		return map[string]interface{}{"jsonrpc": "2.0", "id": req["id"], "result": "ok"}
	}

	err := withTestServer(t, respond, func(tp *testServerParams) error {
		frames := make(chan []byte, 8)
		cc := NewChannelClient(&ChannelClientParams{
			URL:       tp.url,
			OnMessage: func(data []byte) { frames <- data },
		})

		if err := cc.Connect(); err != nil {
			return errors.Trace(err)
		}
		defer cc.Close()

		// The reply to the subscription message arrives through the same
		// read loop as pushed notifications.
		if err := cc.SubscribeTrades("BTC-PERPETUAL"); err != nil {
			return errors.Trace(err)
		}

		select {
		case data := <-frames:
			assert.Contains(t, string(data), "ok")
		case <-time.After(time.Second):
			t.Error("no frame delivered")
		}

		return nil
	})
	if err != nil {
		t.Fatal(errors.ErrorStack(err))
	}
}

func TestChannelClientCloseWithoutConnect(t *testing.T) {
	cc := NewChannelClient(&ChannelClientParams{})
	assert.Equal(t, ErrNotConnected, errors.Cause(cc.Close()))
}
