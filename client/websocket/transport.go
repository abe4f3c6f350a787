package websocket

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/juju/errors"

	"deribit-sdk-go/client/rpc"
)

// dispatchFunc is invoked with the complete ordered batch of replies once
// every round trip of a call has finished. The default dispatcher fans the
// batch out on the client's bus under the topic of the call.
type dispatchFunc func(responses []*rpc.Response)

// request opens one websocket connection for the duration of the call,
// performs the login exchange when the call requires authentication or no
// login has happened yet, attaches the access token to authenticated
// messages, and then sends each message in turn, awaiting each reply
// before sending the next. The replies come back in submission order, one
// per message.
//
// One connection per call is a deliberate trade: every call pays the full
// connect/login/close cost, and in exchange no connection state outlives
// the call.
//
// Business-level failures are not raised: a reply carrying an error
// envelope is returned in the batch like any other, so batches can
// partially succeed. Only connection failures, malformed frames and
// rejected logins abort the call.
func (c *Client) request(ctx context.Context, msgs []*rpc.Request, authRequired bool, dispatch dispatchFunc) ([]*rpc.Response, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.params.URL, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "dialing %s", c.params.URL)
	}
	defer conn.Close()

	if authRequired || !c.session.isLoggedIn() {
		if err := c.login(ctx, conn); err != nil {
			return nil, errors.Trace(err)
		}
	}

	if authRequired {
		if err := c.session.attachToken(msgs); err != nil {
			return nil, errors.Trace(err)
		}
	}

	responses := make([]*rpc.Response, 0, len(msgs))
	for _, msg := range msgs {
		resp, err := c.roundTrip(ctx, conn, msg)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if err := resp.Validate(); err != nil {
			return nil, errors.Trace(err)
		}
		responses = append(responses, resp)
	}

	if dispatch != nil {
		dispatch(responses)
	}

	return responses, nil
}

// login performs the authentication exchange on an open connection. A
// reply carrying an error envelope is fatal to the call. The token is
// stored (and the login notification published) only on the first
// successful login of this client; later logins on fresh connections
// reuse the session as-is.
func (c *Client) login(ctx context.Context, conn *websocket.Conn) error {
	resp, err := c.roundTrip(ctx, conn, c.session.loginRequest())
	if err != nil {
		return errors.Trace(err)
	}
	if resp.HasError() {
		return errors.Annotatef(ErrAuthnFailed, "%s", resp.Error.Message)
	}

	if !c.session.isLoggedIn() {
		if err := c.session.applyLoginResult(resp); err != nil {
			return errors.Trace(err)
		}
		c.bus.Publish(TopicLogin, resp)
	}

	return nil
}

// roundTrip sends one request frame and awaits its reply. Both directions
// share a single deadline: the configured per-round-trip timeout, tightened
// by the context deadline when that is sooner.
func (c *Client) roundTrip(ctx context.Context, conn *websocket.Conn, req *rpc.Request) (*rpc.Response, error) {
	data, err := rpc.Marshal(req)
	if err != nil {
		return nil, errors.Trace(err)
	}

	deadline := time.Now().Add(c.params.RequestTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := conn.SetWriteDeadline(deadline); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, errors.Annotatef(err, "sending %s", req.Method)
	}

	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, errors.Trace(err)
	}
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return nil, errors.Annotatef(err, "awaiting reply to %s", req.Method)
	}

	resp, err := rpc.Unmarshal(raw)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return resp, nil
}

// publishTo returns the default dispatcher for a call: fan the complete
// batch out on the bus under the given topic.
func (c *Client) publishTo(topic Topic) dispatchFunc {
	if topic == "" {
		return nil
	}
	return func(responses []*rpc.Response) {
		c.bus.Publish(topic, responses)
	}
}
