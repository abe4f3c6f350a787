package websocket

import (
	"sync"
	"time"

	"github.com/cryptowatch/clock"
	"github.com/juju/errors"

	"deribit-sdk-go/client/rpc"
)

// session owns the token state of one client: the access and refresh
// tokens plus the computed expiry. It is the only place tokens are
// written, and every access goes through the mutex so that concurrent
// calls sharing a client see a consistent snapshot.
//
// The session performs no I/O itself; the transport sends the login
// request it builds and feeds the decoded reply back in.
type session struct {
	mtx sync.Mutex

	key    string
	secret string
	clk    clock.Clock

	accessToken  string
	refreshToken string
	tokenExpiry  time.Time
}

func newSession(key, secret string, clk clock.Clock) *session {
	return &session{
		key:    key,
		secret: secret,
		clk:    clk,
	}
}

// loginRequest builds the public/auth request.
func (s *session) loginRequest() *rpc.Request {
	return s.withCredentials(rpc.New(methodAuth))
}

// logoutRequest builds the private/logout request.
func (s *session) logoutRequest() *rpc.Request {
	return s.withCredentials(rpc.New(methodLogout))
}

// withCredentials adds the client-credentials grant to any request, so the
// same helper serves the initial login and token-refresh framing.
func (s *session) withCredentials(req *rpc.Request) *rpc.Request {
	return rpc.MergeParams(req, map[string]interface{}{
		"grant_type":    "client_credentials",
		"client_id":     s.key,
		"client_secret": s.secret,
	})
}

func (s *session) isLoggedIn() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.accessToken != ""
}

// token returns the access token, or ErrNotLoggedIn when no login
// exchange has succeeded yet. Token access on an empty session must fail,
// never silently proceed.
func (s *session) token() (string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.accessToken == "" {
		return "", errors.Trace(ErrNotLoggedIn)
	}
	return s.accessToken, nil
}

// expiry returns the absolute expiry time of the access token; false
// while it is unknown.
func (s *session) expiry() (time.Time, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.tokenExpiry.IsZero() {
		return time.Time{}, false
	}
	return s.tokenExpiry, true
}

// lifespan returns how much longer the token is valid; a negative value
// means it has already expired. Expiry is advisory: nothing in the client
// acts on it.
func (s *session) lifespan() (time.Duration, bool) {
	s.mtx.Lock()
	expiry := s.tokenExpiry
	s.mtx.Unlock()

	if expiry.IsZero() {
		return 0, false
	}
	return expiry.Sub(s.clk.Now()), true
}

// applyLoginResult consumes a decoded login reply: it stores the access
// and refresh tokens and computes the token expiry from the exchange's
// usIn receive timestamp plus the reported lifespan.
//
// The expiry computation is best effort: when the reply lacks the timing
// fields the tokens are still stored and any previous expiry is left
// unchanged.
func (s *session) applyLoginResult(resp *rpc.Response) error {
	if resp.HasError() {
		return errors.Annotatef(ErrAuthnFailed, "%s", resp.Error.Message)
	}

	result, ok := resp.ResultMap()
	if !ok {
		return errors.Annotatef(ErrAuthnFailed, "login result is not an object")
	}

	access, _ := result["access_token"].(string)
	refresh, _ := result["refresh_token"].(string)
	if access == "" {
		return errors.Annotatef(ErrAuthnFailed, "login result carries no access token")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.accessToken = access
	s.refreshToken = refresh

	if lifespan, ok := result["expires_in"].(float64); ok && resp.UsIn > 0 {
		issued := time.UnixMicro(resp.UsIn).UTC()
		s.tokenExpiry = issued.Add(time.Duration(lifespan * float64(time.Second)))
	}

	return nil
}

// attachToken inserts the access token into the params of each pending
// request. It fails with ErrNotLoggedIn when no token is held.
func (s *session) attachToken(reqs []*rpc.Request) error {
	token, err := s.token()
	if err != nil {
		return errors.Trace(err)
	}

	for _, req := range reqs {
		rpc.MergeParams(req, map[string]interface{}{"access_token": token})
	}
	return nil
}
