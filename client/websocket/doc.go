// Package websocket provides a client for the Deribit JSON-RPC
// websocket API.
//
// There are two kinds of client: Client and ChannelClient.
//
// Client is a request/response client: every call builds one or more
// JSON-RPC requests, opens a websocket connection, performs the login
// exchange when the call requires authentication, sends each request in
// turn awaiting its reply, and returns the replies in submission order.
// Completed batches are also fanned out on the client's NotificationBus
// under a topic matching the call (trade placed, order book received, and
// so on), so listeners can observe traffic without threading results
// through call sites.
//
// ChannelClient maintains one long-lived connection for public
// market-data subscriptions. Channels are added and removed from a
// pending set, and Apply sends a single subscription message naming the
// full pending set; only on a successful send does the confirmed set get
// replaced.
//
// Neither client reconnects, retries, or pipelines requests. A connection
// is opened per Client call and every round trip within it is strictly
// sequential; this trades throughput for a client that is trivial to
// reason about.
package websocket
