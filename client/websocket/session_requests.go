package websocket

import "deribit-sdk-go/client/rpc"

// Session and connection-maintenance method names.
const (
	methodAuth   = "public/auth"
	methodLogout = "private/logout"

	methodGetTime = "public/get_time"
	methodTest    = "public/test"

	methodSetHeartbeat     = "public/set_heartbeat"
	methodDisableHeartbeat = "public/disable_heartbeat"

	methodEnableCancelOnDisconnect  = "private/enable_cancel_on_disconnect"
	methodDisableCancelOnDisconnect = "private/disable_cancel_on_disconnect"

	methodSubscribe = "public/subscribe"
)

func getTimeRequest() *rpc.Request {
	return rpc.New(methodGetTime)
}

// testRequest pings the API; with expectException the server responds with
// an error envelope on purpose, which is useful for exercising error
// handling end to end.
func testRequest(expectException bool) *rpc.Request {
	req := rpc.New(methodTest)
	if expectException {
		rpc.MergeParams(req, map[string]interface{}{"expected_result": "exception"})
	}
	return req
}

func setHeartbeatRequest(intervalSec int) *rpc.Request {
	return rpc.MergeParams(rpc.New(methodSetHeartbeat), map[string]interface{}{
		"interval": intervalSec,
	})
}

func disableHeartbeatRequest() *rpc.Request {
	return rpc.New(methodDisableHeartbeat)
}

func enableCancelOnDisconnectRequest() *rpc.Request {
	return rpc.New(methodEnableCancelOnDisconnect)
}

func disableCancelOnDisconnectRequest() *rpc.Request {
	return rpc.New(methodDisableCancelOnDisconnect)
}

// subscriptionRequest names the full desired channel set; the exchange
// treats it as the complete subscription list, not a delta.
func subscriptionRequest(channels []string) *rpc.Request {
	return rpc.MergeParams(rpc.New(methodSubscribe), map[string]interface{}{
		"channels": channels,
	})
}
