package common

import "strings"

// ChannelName identifies one market-data subscription stream: a channel
// category plus the instrument it covers, with optional grouping, depth and
// interval components. Components are joined by dots in a fixed order, and
// unset components are omitted entirely, never emitted empty; e.g.
// "book.BTC-PERPETUAL.1.10.100ms" or just "quote.BTC-PERPETUAL".
type ChannelName struct {
	Category   string
	Instrument string

	// Optional components; empty means absent.
	Group    string
	Depth    string
	Interval string
}

// String implements the fmt.Stringer interface for ChannelName.
func (cn ChannelName) String() string {
	parts := make([]string, 0, 5)
	parts = append(parts, cn.Category, cn.Instrument)

	for _, p := range []string{cn.Group, cn.Depth, cn.Interval} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, ".")
}
