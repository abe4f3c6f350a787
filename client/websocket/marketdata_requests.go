package websocket

import (
	"github.com/juju/errors"

	"deribit-sdk-go/client/rpc"
	"deribit-sdk-go/common"
	"deribit-sdk-go/sanitize"
)

// Public market-data method names.
const (
	methodGetInstruments = "public/get_instruments"
	methodGetOrderBook   = "public/get_order_book"
	methodGetCurrencies  = "public/get_currencies"
	methodGetIndex       = "public/get_index"
)

func instrumentsRequest(currency common.Currency, kind common.InstrumentKind, expired bool) (*rpc.Request, []string, error) {
	res, err := sanitize.Apply(map[sanitize.Field]interface{}{
		sanitize.FieldCurrency: string(currency),
		sanitize.FieldKind:     string(kind),
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodGetInstruments), map[string]interface{}{
		"currency": res.Values[sanitize.FieldCurrency],
		"kind":     res.Values[sanitize.FieldKind],
		"expired":  expired,
	})
	return req, res.Warnings, nil
}

func orderbookRequest(instrument string, depth int) *rpc.Request {
	params := map[string]interface{}{
		"instrument_name": sanitize.Instrument(instrument),
	}
	if d, ok := sanitize.Depth(depth, false); ok {
		params["depth"] = d
	}
	return rpc.MergeParams(rpc.New(methodGetOrderBook), params)
}

// orderbooksRequests builds one order-book request per instrument; the
// transport sends them back to back on a single connection.
func orderbooksRequests(instruments []string, depth int) []*rpc.Request {
	msgs := make([]*rpc.Request, 0, len(instruments))
	for _, ins := range instruments {
		msgs = append(msgs, orderbookRequest(ins, depth))
	}
	return msgs
}

func currenciesRequest() *rpc.Request {
	return rpc.New(methodGetCurrencies)
}

func indexRequest(currency common.Currency) (*rpc.Request, error) {
	c, err := sanitize.Currency(string(currency))
	if err != nil {
		return nil, errors.Trace(err)
	}

	return rpc.MergeParams(rpc.New(methodGetIndex), map[string]interface{}{
		"currency": c,
	}), nil
}
