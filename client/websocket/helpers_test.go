package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/juju/errors"
)

// responderFunc computes the reply frame for one received request frame.
// Returning nil leaves the request unanswered, which makes the client's
// round trip time out or fail on connection close.
type responderFunc func(req map[string]interface{}) map[string]interface{}

type testServerParams struct {
	url string

	mtx      sync.Mutex
	received []map[string]interface{}
}

// requests returns a snapshot of every request frame the server has seen,
// across all connections, in arrival order.
func (tp *testServerParams) requests() []map[string]interface{} {
	tp.mtx.Lock()
	defer tp.mtx.Unlock()

	return append([]map[string]interface{}(nil), tp.received...)
}

// methods returns the method names of every received request, in order.
func (tp *testServerParams) methods() []string {
	reqs := tp.requests()
	out := make([]string, 0, len(reqs))
	for _, req := range reqs {
		m, _ := req["method"].(string)
		out = append(out, m)
	}
	return out
}

// withTestServer runs cb against a websocket server which answers every
// request frame via respond. Each incoming connection gets its own
// read/respond loop, which matches the one-connection-per-call transport.
func withTestServer(
	t *testing.T,
	respond responderFunc,
	cb func(tp *testServerParams) error,
) error {
	tp := &testServerParams{}

	upgrader := websocket.Upgrader{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrading test connection: %s", err)
			return
		}
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var req map[string]interface{}
			if err := json.Unmarshal(data, &req); err != nil {
				t.Errorf("test server received a non-JSON frame: %s", err)
				return
			}

			tp.mtx.Lock()
			tp.received = append(tp.received, req)
			tp.mtx.Unlock()

			reply := respond(req)
			if reply == nil {
				continue
			}

			out, err := json.Marshal(reply)
			if err != nil {
				t.Errorf("marshalling test reply: %s", err)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
				return
			}
		}
	}))
	defer ts.Close()

	u, err := url.Parse(ts.URL)
	if err != nil {
		return errors.Trace(err)
	}
	u.Scheme = "ws"
	tp.url = u.String()

	if err := cb(tp); err != nil {
		return errors.Trace(err)
	}

	return nil
}

const (
	testAccessToken  = "test-access-token"
	testRefreshToken = "test-refresh-token"

	// Microsecond receive timestamp stamped on the test login reply.
	testLoginUsIn = int64(1680000000000000)
)

// okResponder answers the login exchange with a fixed token pair and every
// other request with the given result, echoing request ids.
func okResponder(result interface{}) responderFunc {
	return func(req map[string]interface{}) map[string]interface{} {
		if req["method"] == methodAuth {
			return loginReply(req)
		}
		return map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req["id"],
			"result":  result,
		}
	}
}

func loginReply(req map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req["id"],
		"usIn":    testLoginUsIn,
		"result": map[string]interface{}{
			"access_token":  testAccessToken,
			"refresh_token": testRefreshToken,
			"expires_in":    3600,
			"token_type":    "bearer",
		},
	}
}

func errorReply(req map[string]interface{}, code int, message string) map[string]interface{} {
	return map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req["id"],
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
}

func newTestClient(t *testing.T, url string) *Client {
	client, err := NewClient(&WSParams{
		APIKey:    "test-key",
		SecretKey: "test-secret",
		URL:       url,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}
