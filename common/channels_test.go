package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelNameString(t *testing.T) {
	cases := []struct {
		name string
		cn   ChannelName
		want string
	}{
		{
			name: "all components",
			cn: ChannelName{
				Category:   ChannelBook,
				Instrument: "BTC-PERPETUAL",
				Group:      "1",
				Depth:      "10",
				Interval:   "100ms",
			},
			want: "book.BTC-PERPETUAL.1.10.100ms",
		},
		{
			name: "category and instrument only",
			cn: ChannelName{
				Category:   ChannelQuote,
				Instrument: "BTC-PERPETUAL",
			},
			want: "quote.BTC-PERPETUAL",
		},
		{
			name: "interval without group or depth",
			cn: ChannelName{
				Category:   ChannelTrades,
				Instrument: "ETH-PERPETUAL",
				Interval:   "100ms",
			},
			want: "trades.ETH-PERPETUAL.100ms",
		},
		{
			name: "depth without group",
			cn: ChannelName{
				Category:   ChannelBook,
				Instrument: "BTC-PERPETUAL",
				Depth:      "25",
				Interval:   "100ms",
			},
			want: "book.BTC-PERPETUAL.25.100ms",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cn.String())
		})
	}
}
