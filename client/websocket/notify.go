package websocket

import "sync"

// Topic names one kind of completed-call notification on the bus.
type Topic string

// The fixed set of notification topics.
const (
	TopicLogin          Topic = "login"
	TopicInstruments    Topic = "instruments-received"
	TopicIndexLevel     Topic = "index-level-received"
	TopicCurrencies     Topic = "currency-received"
	TopicOrderBook      Topic = "orderbook-snapshot-received"
	TopicPosition       Topic = "position-received"
	TopicPositions      Topic = "positions-received"
	TopicAccountSummary Topic = "account-summary-received"
	TopicAnnouncements  Topic = "announcement-received"
	TopicTradeBuy       Topic = "trade-buy-received"
	TopicTradeSell      Topic = "trade-sell-received"
	TopicTradeClose     Topic = "trade-close-received"
	TopicTradeCancel    Topic = "trade-cancel-received"
	TopicTradeCancelAll Topic = "trade-cancel-all-received"
	TopicMarginEstimate Topic = "margin-estimate-received"
	TopicOpenOrders     Topic = "open-orders-received"
	TopicTradeHistory   Topic = "trade-history-received"
	TopicOrderStatus    Topic = "order-status-received"
)

// NotificationCB defines a bus listener. For call topics the payload is
// the ordered []*rpc.Response batch of the call; for TopicLogin it is the
// single raw *rpc.Response of the login exchange.
type NotificationCB func(payload interface{})

// BusSubscription is the handle returned by Subscribe; it is needed to
// unsubscribe, since Go functions cannot be compared for identity.
type BusSubscription struct {
	topic Topic
	id    uint64
}

type busListener struct {
	id uint64
	cb NotificationCB
}

// NotificationBus fans completed responses out to registered listeners,
// keyed by topic. Each Client owns one; nothing is process-global.
//
// Publish invokes listeners synchronously, in registration order, on the
// publisher's goroutine. The bus does not isolate listeners: a panicking
// listener propagates to the publisher.
type NotificationBus struct {
	mtx       sync.Mutex
	nextID    uint64
	listeners map[Topic][]busListener
}

// NewNotificationBus creates an empty bus.
func NewNotificationBus() *NotificationBus {
	return &NotificationBus{
		listeners: make(map[Topic][]busListener),
	}
}

// Subscribe registers a listener for the given topic and returns the
// handle needed to remove it again. Listener lifetime is otherwise
// process-wide; there is no teardown beyond Unsubscribe.
func (b *NotificationBus) Subscribe(topic Topic, cb NotificationCB) *BusSubscription {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.nextID++
	b.listeners[topic] = append(b.listeners[topic], busListener{
		id: b.nextID,
		cb: cb,
	})

	return &BusSubscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes a previously registered listener. Unknown or
// already-removed handles are ignored.
func (b *NotificationBus) Unsubscribe(sub *BusSubscription) {
	if sub == nil {
		return
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	listeners := b.listeners[sub.topic]
	for i, l := range listeners {
		if l.id == sub.id {
			b.listeners[sub.topic] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers the payload to every listener of the topic, in
// registration order.
func (b *NotificationBus) Publish(topic Topic, payload interface{}) {
	b.mtx.Lock()
	listeners := append([]busListener(nil), b.listeners[topic]...)
	b.mtx.Unlock()

	for _, l := range listeners {
		l.cb(payload)
	}
}
