package websocket

import (
	"context"

	"github.com/juju/errors"

	"deribit-sdk-go/client/rpc"
	"deribit-sdk-go/common"
)

// one sends a single message and returns its reply.
func (c *Client) one(ctx context.Context, msg *rpc.Request, authRequired bool, topic Topic) (*rpc.Response, error) {
	responses, err := c.request(ctx, []*rpc.Request{msg}, authRequired, c.publishTo(topic))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return responses[0], nil
}

// Session

// ServerTime returns the exchange's current time.
func (c *Client) ServerTime(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, getTimeRequest(), false, "")
}

// Test pings the API.
func (c *Client) Test(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, testRequest(false), false, "")
}

// TestException asks the API to respond with an error envelope, which is
// useful for exercising error handling end to end.
func (c *Client) TestException(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, testRequest(true), false, "")
}

// SetHeartbeat asks the server to ping the connection every intervalSec
// seconds.
func (c *Client) SetHeartbeat(ctx context.Context, intervalSec int) (*rpc.Response, error) {
	return c.one(ctx, setHeartbeatRequest(intervalSec), false, "")
}

// DisableHeartbeat cancels server heartbeats.
func (c *Client) DisableHeartbeat(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, disableHeartbeatRequest(), false, "")
}

// EnableCancelOnDisconnect asks the server to cancel all orders when the
// connection drops.
func (c *Client) EnableCancelOnDisconnect(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, enableCancelOnDisconnectRequest(), true, "")
}

// DisableCancelOnDisconnect turns cancel-on-disconnect off again.
func (c *Client) DisableCancelOnDisconnect(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, disableCancelOnDisconnectRequest(), true, "")
}

// Logout invalidates the session server side. The request carries the
// client credentials, like the login it undoes.
func (c *Client) Logout(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, c.session.logoutRequest(), false, "")
}

// Market data

// Instruments lists instruments for a currency and kind; with expired set
// it returns recently delisted instruments instead.
func (c *Client) Instruments(ctx context.Context, currency common.Currency, kind common.InstrumentKind, expired bool) (*rpc.Response, error) {
	msg, warnings, err := instrumentsRequest(currency, kind, expired)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, false, TopicInstruments)
}

// Currencies lists the currencies the exchange supports.
func (c *Client) Currencies(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, currenciesRequest(), false, TopicCurrencies)
}

// Orderbook fetches one order-book snapshot. A zero depth leaves the
// depth choice to the server.
func (c *Client) Orderbook(ctx context.Context, instrument string, depth int) (*rpc.Response, error) {
	return c.one(ctx, orderbookRequest(instrument, depth), false, TopicOrderBook)
}

// Orderbooks fetches order-book snapshots for several instruments over a
// single connection, one round trip each, and returns the snapshots in
// the instruments' order.
func (c *Client) Orderbooks(ctx context.Context, instruments []string, depth int) ([]*rpc.Response, error) {
	msgs := orderbooksRequests(instruments, depth)
	return c.request(ctx, msgs, false, c.publishTo(TopicOrderBook))
}

// IndexPrice returns the current index level for a currency.
func (c *Client) IndexPrice(ctx context.Context, currency common.Currency) (*rpc.Response, error) {
	msg, err := indexRequest(currency)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return c.one(ctx, msg, false, TopicIndexLevel)
}

// Account

// Position returns the account's position in one instrument.
func (c *Client) Position(ctx context.Context, instrument string) (*rpc.Response, error) {
	return c.one(ctx, positionRequest(instrument), true, TopicPosition)
}

// Positions returns every position for a currency and kind.
func (c *Client) Positions(ctx context.Context, currency common.Currency, kind common.InstrumentKind) (*rpc.Response, error) {
	msg, warnings, err := positionsRequest(currency, kind)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicPositions)
}

// AccountSummary returns the account state for a currency.
func (c *Client) AccountSummary(ctx context.Context, currency common.Currency, extended bool) (*rpc.Response, error) {
	msg, err := accountSummaryRequest(currency, extended)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return c.one(ctx, msg, true, TopicAccountSummary)
}

// Announcements returns the exchange's current announcements.
func (c *Client) Announcements(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, announcementsRequest(), false, TopicAnnouncements)
}

// Trading

// Buy places a buy order.
func (c *Client) Buy(ctx context.Context, opt *common.OrderOpt) (*rpc.Response, error) {
	msg, warnings, err := buyRequest(opt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicTradeBuy)
}

// Sell places a sell order.
func (c *Client) Sell(ctx context.Context, opt *common.OrderOpt) (*rpc.Response, error) {
	msg, warnings, err := sellRequest(opt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicTradeSell)
}

// ClosePosition closes the whole position in an instrument. The order
// type may be empty for the server default; a limit close requires a
// limit price.
func (c *Client) ClosePosition(ctx context.Context, instrument string, orderType common.OrderType, limitPrice *float64) (*rpc.Response, error) {
	msg, warnings, err := closePositionRequest(instrument, orderType, limitPrice)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicTradeClose)
}

// CancelAll cancels every open order in every currency.
func (c *Client) CancelAll(ctx context.Context) (*rpc.Response, error) {
	return c.one(ctx, cancelAllRequest(), true, TopicTradeCancelAll)
}

// CancelAllByCurrency cancels open orders for one currency, optionally
// narrowed by kind and order type.
func (c *Client) CancelAllByCurrency(ctx context.Context, opt *common.CancelOpt) (*rpc.Response, error) {
	msg, warnings, err := cancelAllByCurrencyRequest(opt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicTradeCancel)
}

// CancelAllByInstrument cancels open orders in one instrument, optionally
// narrowed by order type.
func (c *Client) CancelAllByInstrument(ctx context.Context, opt *common.CancelOpt) (*rpc.Response, error) {
	msg, warnings, err := cancelAllByInstrumentRequest(opt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicTradeCancel)
}

// EstimateMargins estimates the margins a trade would require.
func (c *Client) EstimateMargins(ctx context.Context, instrument string, amount, price float64) (*rpc.Response, error) {
	msg, warnings, err := marginsRequest(instrument, amount, price)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicMarginEstimate)
}

// OpenOrdersByCurrency lists open orders for a currency.
func (c *Client) OpenOrdersByCurrency(ctx context.Context, opt *common.CancelOpt) (*rpc.Response, error) {
	msg, warnings, err := openOrdersByCurrencyRequest(opt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicOpenOrders)
}

// OpenOrdersByInstrument lists open orders in one instrument.
func (c *Client) OpenOrdersByInstrument(ctx context.Context, opt *common.CancelOpt) (*rpc.Response, error) {
	msg, warnings, err := openOrdersByInstrumentRequest(opt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicOpenOrders)
}

// UserTradesByCurrency lists the account's past trades for a currency.
func (c *Client) UserTradesByCurrency(ctx context.Context, opt *common.TradeHistoryOpt) (*rpc.Response, error) {
	msg, warnings, err := userTradesByCurrencyRequest(opt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicTradeHistory)
}

// UserTradesByInstrument lists the account's past trades in one
// instrument.
func (c *Client) UserTradesByInstrument(ctx context.Context, opt *common.TradeHistoryOpt) (*rpc.Response, error) {
	msg, warnings, err := userTradesByInstrumentRequest(opt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.warn(warnings)
	return c.one(ctx, msg, true, TopicTradeHistory)
}

// OrderStatus returns the current state of one order.
func (c *Client) OrderStatus(ctx context.Context, orderID string) (*rpc.Response, error) {
	return c.one(ctx, orderStatusRequest(orderID), true, TopicOrderStatus)
}
