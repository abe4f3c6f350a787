package common

// InstrumentKind represents the class of a tradable Deribit instrument.
// Note that perpetuals are futures as far as the API is concerned; there
// is no separate "perpetual" kind.
type InstrumentKind string

// The following constants define every instrument kind the API accepts.
const (
	KindFuture InstrumentKind = "future"
	KindOption InstrumentKind = "option"
	KindAny    InstrumentKind = "any"
)

// InstrumentKinds contains every valid instrument kind.
var InstrumentKinds = []InstrumentKind{KindFuture, KindOption, KindAny}

// Currency represents a base currency of an instrument.
type Currency string

const (
	CurrencyBTC Currency = "btc"
	CurrencyETH Currency = "eth"
)

// Currencies contains every valid instrument currency.
var Currencies = []Currency{CurrencyBTC, CurrencyETH}

// OrderType represents the type of an order; e.g. "market" or "limit".
// OrderTypeAll is only meaningful in cancellation and open-order queries.
type OrderType string

// The following constants define every possible order type.
const (
	OrderTypeLimit      OrderType = "limit"
	OrderTypeMarket     OrderType = "market"
	OrderTypeStopLimit  OrderType = "stop-limit"
	OrderTypeStopMarket OrderType = "stop-market"
	OrderTypeAll        OrderType = "all"
)

// OrderTypes contains every valid order type.
var OrderTypes = []OrderType{
	OrderTypeLimit,
	OrderTypeMarket,
	OrderTypeStopLimit,
	OrderTypeStopMarket,
	OrderTypeAll,
}

// TimeInForce represents how long an order remains in effect.
type TimeInForce string

const (
	GoodTilCancelled  TimeInForce = "good_til_cancelled"
	FillOrKill        TimeInForce = "fill_or_kill"
	ImmediateOrCancel TimeInForce = "immediate_or_cancel"
)

// TimesInForce contains every valid time-in-force value.
var TimesInForce = []TimeInForce{GoodTilCancelled, FillOrKill, ImmediateOrCancel}

// Trigger represents the price type that triggers a stop order.
type Trigger string

const (
	TriggerIndexPrice Trigger = "index_price"
	TriggerMarkPrice  Trigger = "mark_price"
	TriggerLastPrice  Trigger = "last_price"
)

// Triggers contains every valid stop-order trigger.
var Triggers = []Trigger{TriggerIndexPrice, TriggerMarkPrice, TriggerLastPrice}

// BookGroups is the ascending enumeration of order-book price grouping
// granularities the exchange supports. Requested groupings are snapped to
// a member of this list.
var BookGroups = []int{1, 2, 5, 10, 25, 100, 250}

// Channel categories for public market-data subscriptions.
const (
	ChannelBook   = "book"
	ChannelQuote  = "quote"
	ChannelTrades = "trades"
)

// Defaults applied by the sanitizers when a value is absent or unusable.
const (
	DefaultCurrency   = Currency("btc")
	DefaultKind       = KindFuture
	DefaultDepth      = 10
	DefaultGroup      = 1
	DefaultIntervalMS = 100
)

// Float64 returns a pointer to v. It is a convenience for filling optional
// numeric fields of option structs like OrderOpt.
func Float64(v float64) *float64 {
	return &v
}
