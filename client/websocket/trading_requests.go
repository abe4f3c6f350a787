package websocket

import (
	"github.com/juju/errors"

	"deribit-sdk-go/client/rpc"
	"deribit-sdk-go/common"
	"deribit-sdk-go/sanitize"
)

// Trading method names.
const (
	methodBuy           = "private/buy"
	methodSell          = "private/sell"
	methodClosePosition = "private/close_position"

	methodCancelAll             = "private/cancel_all"
	methodCancelAllByCurrency   = "private/cancel_all_by_currency"
	methodCancelAllByInstrument = "private/cancel_all_by_instrument"

	methodGetMargins = "private/get_margins"

	methodGetOrderState          = "private/get_order_state"
	methodOpenOrdersByCurrency   = "private/get_open_orders_by_currency"
	methodOpenOrdersByInstrument = "private/get_open_orders_by_instrument"
	methodUserTradesByCurrency   = "private/get_user_trades_by_currency"
	methodUserTradesByInstrument = "private/get_user_trades_by_instrument"
)

func buyRequest(opt *common.OrderOpt) (*rpc.Request, []string, error) {
	return placeOrderRequest(methodBuy, opt, true)
}

func sellRequest(opt *common.OrderOpt) (*rpc.Request, []string, error) {
	return placeOrderRequest(methodSell, opt, false)
}

// placeOrderRequest sanitizes the order parameters, checks limit/stop
// coherence and builds the buy or sell message.
func placeOrderRequest(method string, opt *common.OrderOpt, buy bool) (*rpc.Request, []string, error) {
	orderType := opt.OrderType
	if orderType == "" {
		// Exchange default: an unspecified type places a limit order.
		orderType = common.OrderTypeLimit
	}

	in := map[sanitize.Field]interface{}{
		sanitize.FieldInstrument:  opt.Instrument,
		sanitize.FieldAmount:      opt.Amount,
		sanitize.FieldOrderType:   string(orderType),
		sanitize.FieldTimeInForce: string(opt.TimeInForce),
		sanitize.FieldTrigger:     string(opt.Trigger),
		sanitize.FieldPostOnly:    opt.PostOnly,
		sanitize.FieldReduceOnly:  opt.ReduceOnly,
		sanitize.FieldAdvanced:    opt.VolQuote,
	}
	if opt.Label != "" {
		in[sanitize.FieldLabel] = opt.Label
	}
	if opt.LimitPrice != nil {
		in[sanitize.FieldLimitPrice] = *opt.LimitPrice
	}
	if opt.StopPrice != nil {
		in[sanitize.FieldStopPrice] = *opt.StopPrice
	}
	if opt.MaxShow != nil {
		in[sanitize.FieldMaxShow] = *opt.MaxShow
	}

	res, err := sanitize.Apply(in)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	if err := assertLimitOrderCoherence(res.Values); err != nil {
		return nil, nil, errors.Trace(err)
	}
	if err := assertStopOrderCoherence(res.Values, buy); err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(method), res.Values.ParamsMap())
	return req, res.Warnings, nil
}

func closePositionRequest(instrument string, orderType common.OrderType, limitPrice *float64) (*rpc.Request, []string, error) {
	in := map[sanitize.Field]interface{}{
		sanitize.FieldInstrument: instrument,
		sanitize.FieldOrderType:  string(orderType),
	}
	if limitPrice != nil {
		in[sanitize.FieldLimitPrice] = *limitPrice
	}

	res, err := sanitize.Apply(in)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	if err := assertLimitOrderCoherence(res.Values); err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodClosePosition), res.Values.ParamsMap())
	return req, res.Warnings, nil
}

func cancelAllRequest() *rpc.Request {
	return rpc.New(methodCancelAll)
}

func cancelAllByCurrencyRequest(opt *common.CancelOpt) (*rpc.Request, []string, error) {
	res, err := sanitizeCancelOpt(opt, map[sanitize.Field]interface{}{
		sanitize.FieldCurrency: string(opt.Currency),
		sanitize.FieldKind:     string(opt.Kind),
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodCancelAllByCurrency), res.Values.ParamsMap())
	return req, res.Warnings, nil
}

func cancelAllByInstrumentRequest(opt *common.CancelOpt) (*rpc.Request, []string, error) {
	res, err := sanitizeCancelOpt(opt, map[sanitize.Field]interface{}{
		sanitize.FieldInstrument: opt.Instrument,
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodCancelAllByInstrument), res.Values.ParamsMap())
	return req, res.Warnings, nil
}

// sanitizeCancelOpt applies the cancellation defaults shared by the
// cancel-all variants: the order type defaults to "all" and market orders
// cannot be named as a cancellation target.
func sanitizeCancelOpt(opt *common.CancelOpt, in map[sanitize.Field]interface{}) (*sanitize.Result, error) {
	orderType := opt.OrderType
	if orderType == "" {
		orderType = common.OrderTypeAll
	}
	in[sanitize.FieldOrderType] = string(orderType)

	res, err := sanitize.Apply(in)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if err := assertCancellationOrderType(res.Values); err != nil {
		return nil, errors.Trace(err)
	}
	return res, nil
}

func marginsRequest(instrument string, amount, price float64) (*rpc.Request, []string, error) {
	res, err := sanitize.Apply(map[sanitize.Field]interface{}{
		sanitize.FieldInstrument: instrument,
		sanitize.FieldAmount:     amount,
		sanitize.FieldPrice:      price,
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodGetMargins), res.Values.ParamsMap())
	return req, res.Warnings, nil
}

func openOrdersByCurrencyRequest(opt *common.CancelOpt) (*rpc.Request, []string, error) {
	orderType := opt.OrderType
	if orderType == "" {
		orderType = common.OrderTypeAll
	}

	res, err := sanitize.Apply(map[sanitize.Field]interface{}{
		sanitize.FieldCurrency:  string(opt.Currency),
		sanitize.FieldKind:      string(opt.Kind),
		sanitize.FieldOrderType: string(orderType),
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodOpenOrdersByCurrency), res.Values.ParamsMap())
	return req, res.Warnings, nil
}

func openOrdersByInstrumentRequest(opt *common.CancelOpt) (*rpc.Request, []string, error) {
	orderType := opt.OrderType
	if orderType == "" {
		orderType = common.OrderTypeAll
	}

	res, err := sanitize.Apply(map[sanitize.Field]interface{}{
		sanitize.FieldInstrument: opt.Instrument,
		sanitize.FieldOrderType:  string(orderType),
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodOpenOrdersByInstrument), res.Values.ParamsMap())
	return req, res.Warnings, nil
}

func userTradesByCurrencyRequest(opt *common.TradeHistoryOpt) (*rpc.Request, []string, error) {
	res, err := sanitize.Apply(map[sanitize.Field]interface{}{
		sanitize.FieldCurrency:   string(opt.Currency),
		sanitize.FieldKind:       string(opt.Kind),
		sanitize.FieldCount:      opt.Count,
		sanitize.FieldIncludeOld: opt.IncludeOld,
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodUserTradesByCurrency), res.Values.ParamsMap())
	return req, res.Warnings, nil
}

func userTradesByInstrumentRequest(opt *common.TradeHistoryOpt) (*rpc.Request, []string, error) {
	res, err := sanitize.Apply(map[sanitize.Field]interface{}{
		sanitize.FieldInstrument: opt.Instrument,
		sanitize.FieldCount:      opt.Count,
		sanitize.FieldIncludeOld: opt.IncludeOld,
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodUserTradesByInstrument), res.Values.ParamsMap())
	return req, res.Warnings, nil
}

func orderStatusRequest(orderID string) *rpc.Request {
	return rpc.MergeParams(rpc.New(methodGetOrderState), map[string]interface{}{
		"order_id": orderID,
	})
}

// assertLimitOrderCoherence checks both directions of the limit-price
// rule: limit and stop-limit orders must carry a limit price, and a limit
// price on any other order type is incoherent.
func assertLimitOrderCoherence(values sanitize.Values) error {
	orderType, _ := values.Str(sanitize.FieldOrderType)
	limitPrice, hasLimit := values.Float(sanitize.FieldLimitPrice)

	isLimit := orderType == string(common.OrderTypeLimit) ||
		orderType == string(common.OrderTypeStopLimit)

	if isLimit && !hasLimit {
		return errors.NotValidf("%s order without a limit price", orderType)
	}
	if hasLimit && !isLimit {
		return errors.NotValidf("limit price %v on order type %q", limitPrice, orderType)
	}
	return nil
}

// assertStopOrderCoherence validates the stop-price rules and, for
// non-stop orders, strips the trigger field since no trigger applies.
//
// For stop-limit orders the stop and limit prices must be on the correct
// sides: a buy triggers on the way up (stop above limit), a sell on the
// way down (stop below limit).
func assertStopOrderCoherence(values sanitize.Values, buy bool) error {
	orderType, _ := values.Str(sanitize.FieldOrderType)
	stopPrice, hasStop := values.Float(sanitize.FieldStopPrice)
	limitPrice, hasLimit := values.Float(sanitize.FieldLimitPrice)

	switch orderType {
	case string(common.OrderTypeStopMarket):
		if !hasStop {
			return errors.NotValidf("stop-market order without a stop price")
		}

	case string(common.OrderTypeStopLimit):
		if !hasStop {
			return errors.NotValidf("stop-limit order without a stop price")
		}
		if !hasLimit {
			return errors.NotValidf("stop-limit order without a limit price")
		}
		if buy && stopPrice < limitPrice {
			return errors.NotValidf("buy order with stop price %v below limit price %v", stopPrice, limitPrice)
		}
		if !buy && stopPrice > limitPrice {
			return errors.NotValidf("sell order with stop price %v above limit price %v", stopPrice, limitPrice)
		}

	default:
		delete(values, sanitize.FieldTrigger)
	}

	return nil
}

// assertCancellationOrderType rejects market orders as a cancellation
// target; only limit, stop and "all" make sense there.
func assertCancellationOrderType(values sanitize.Values) error {
	if t, _ := values.Str(sanitize.FieldOrderType); t == string(common.OrderTypeMarket) {
		return errors.NotValidf("cancellation order type %q", t)
	}
	return nil
}
