package common

// OrderOpt contains the parameters for placing a new order with the
// client's Buy and Sell methods. Optional numeric fields are pointers so
// that an explicit zero can be told apart from an absent value; use
// Float64 to fill them.
type OrderOpt struct {
	// Instrument is the name of the instrument to trade, e.g.
	// "BTC-PERPETUAL". Required.
	Instrument string

	// Amount is the order size: USD for futures, base currency for
	// options. Required.
	Amount float64

	// OrderType defaults to OrderTypeLimit when empty.
	OrderType OrderType

	// Label is a caller-chosen tag echoed back on fills.
	Label string

	// LimitPrice is required for limit and stop-limit orders, and must be
	// absent for every other type.
	LimitPrice *float64

	// StopPrice is required for stop-limit and stop-market orders.
	StopPrice *float64

	// MaxShow is the maximum amount shown to other participants; zero
	// makes the order invisible.
	MaxShow *float64

	// TimeInForce defaults to GoodTilCancelled when empty.
	TimeInForce TimeInForce

	// Trigger selects the price feed that triggers a stop order; defaults
	// to TriggerIndexPrice. Ignored for non-stop orders.
	Trigger Trigger

	PostOnly   bool
	ReduceOnly bool

	// VolQuote quotes option prices in volatility instead of USD.
	VolQuote bool
}

// CancelOpt contains the parameters for the cancel-all family of calls.
// OrderType defaults to OrderTypeAll; market orders cannot be named as a
// cancellation target.
type CancelOpt struct {
	Currency   Currency
	Instrument string
	Kind       InstrumentKind
	OrderType  OrderType
}

// TradeHistoryOpt contains the parameters for retrieving past user trades.
type TradeHistoryOpt struct {
	Currency   Currency
	Instrument string
	Kind       InstrumentKind

	// Count limits how many trades are returned; zero means no limit.
	Count int

	// IncludeOld also returns trades older than seven days.
	IncludeOld bool
}
