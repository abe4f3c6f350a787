// Package rpc implements the JSON-RPC 2.0 request and response envelopes
// used by the exchange: one complete JSON document per websocket text
// frame, correlated by a client-generated id.
package rpc

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/juju/errors"
)

// Version is the protocol version stamped on every request.
const Version = "2.0"

// ErrMalformedResponse means a response frame carried neither a result nor
// an error, which the protocol does not allow.
var ErrMalformedResponse = errors.New("malformed response: no result and no error")

// Request is a single JSON-RPC request frame.
type Request struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      string                 `json:"id"`
	Method  string                 `json:"method"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// Error is the error envelope of a failed response.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Response is a single JSON-RPC response frame. Result can be any JSON
// value; exactly one of Result and Error is present on a well-formed
// response. UsIn and UsOut are the exchange's microsecond receive and send
// timestamps.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  *Error      `json:"error,omitempty"`
	UsIn   int64       `json:"usIn,omitempty"`
	UsOut  int64       `json:"usOut,omitempty"`
}

// HasError reports whether the response carries an error envelope.
func (r *Response) HasError() bool {
	return r.Error != nil
}

// ResultMap returns the result as a key-value mapping. The second return
// value is false when the result is absent or is not a JSON object.
func (r *Response) ResultMap() (map[string]interface{}, bool) {
	m, ok := r.Result.(map[string]interface{})
	return m, ok
}

// Validate checks the response for protocol violations: a frame with no
// error must carry a result.
func (r *Response) Validate() error {
	if r.Result == nil && r.Error == nil {
		return errors.Trace(ErrMalformedResponse)
	}
	return nil
}

// New returns a request for the given method with a fresh id and the fixed
// protocol version, and no params yet.
func New(method string) *Request {
	return &Request{
		JSONRPC: Version,
		ID:      NewID(),
		Method:  method,
	}
}

// MergeParams copies the given key-value pairs into the request params,
// creating the params map if needed. Nil values and empty strings denote
// absent optional fields and are dropped; boolean false and numeric zero
// are legitimate values and are kept. The request is returned for
// chaining.
func MergeParams(req *Request, kvp map[string]interface{}) *Request {
	if req.Params == nil {
		req.Params = make(map[string]interface{}, len(kvp))
	}

	for k, v := range kvp {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		req.Params[k] = v
	}

	return req
}

const (
	idLetters = 3
	idDigits  = 7
)

// NewID generates a fresh correlation id: three uppercase letters followed
// by seven digits, the first of which is never zero. Uniqueness is not
// guaranteed, but collisions are vanishingly unlikely within the
// single-connection, sequential-response regime the ids are used in.
func NewID() string {
	buf := make([]byte, idLetters+idDigits)
	randomBytes(buf)

	out := make([]byte, idLetters+idDigits)
	for i := 0; i < idLetters; i++ {
		out[i] = 'A' + buf[i]%26
	}

	// First digit is 1-9 so the numeric part never loses a leading zero.
	out[idLetters] = '1' + buf[idLetters]%9
	for i := idLetters + 1; i < idLetters+idDigits; i++ {
		out[i] = '0' + buf[i]%10
	}

	return string(out)
}

func randomBytes(buf []byte) {
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("reading random bytes: %s", err))
	}
}

// Marshal encodes a request as one complete JSON document.
func Marshal(req *Request) ([]byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Annotatef(err, "marshalling request %s", req.ID)
	}
	return data, nil
}

// Unmarshal decodes a response frame.
func Unmarshal(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Annotatef(err, "unmarshalling response")
	}
	return &resp, nil
}
