package websocket

import (
	"github.com/juju/errors"

	"deribit-sdk-go/client/rpc"
	"deribit-sdk-go/common"
	"deribit-sdk-go/sanitize"
)

// Account method names.
const (
	methodGetPosition       = "private/get_position"
	methodGetPositions      = "private/get_positions"
	methodGetAccountSummary = "private/get_account_summary"

	methodGetAnnouncements = "public/get_announcements"
)

func positionRequest(instrument string) *rpc.Request {
	return rpc.MergeParams(rpc.New(methodGetPosition), map[string]interface{}{
		"instrument_name": sanitize.Instrument(instrument),
	})
}

func positionsRequest(currency common.Currency, kind common.InstrumentKind) (*rpc.Request, []string, error) {
	res, err := sanitize.Apply(map[sanitize.Field]interface{}{
		sanitize.FieldCurrency: string(currency),
		sanitize.FieldKind:     string(kind),
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req := rpc.MergeParams(rpc.New(methodGetPositions), map[string]interface{}{
		"currency": res.Values[sanitize.FieldCurrency],
		"kind":     res.Values[sanitize.FieldKind],
	})
	return req, res.Warnings, nil
}

func accountSummaryRequest(currency common.Currency, extended bool) (*rpc.Request, error) {
	c, err := sanitize.Currency(string(currency))
	if err != nil {
		return nil, errors.Trace(err)
	}

	return rpc.MergeParams(rpc.New(methodGetAccountSummary), map[string]interface{}{
		"currency": c,
		"extended": extended,
	}), nil
}

func announcementsRequest() *rpc.Request {
	return rpc.New(methodGetAnnouncements)
}
