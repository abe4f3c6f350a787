package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deribit-sdk-go/common"
)

func TestInstrument(t *testing.T) {
	assert.Equal(t, "BTC-PERPETUAL", Instrument("btc-perpetual"))
	assert.Equal(t, "", Instrument(""))
}

func TestKind(t *testing.T) {
	cases := []struct {
		in       string
		want     string
		warns    bool
		rejected bool
	}{
		{in: "future", want: "future"},
		{in: "Option", want: "option"},
		{in: "any", want: "any"},
		{in: "", want: "future"},
		{in: "futures", want: "future", warns: true},
		{in: "options", want: "option", warns: true},
		{in: "perpetual", want: "future", warns: true},
		{in: "swap", rejected: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, warn, err := Kind(tc.in)
			if tc.rejected {
				assert.True(t, IsValidationError(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.warns, warn != "")
		})
	}
}

func TestCurrency(t *testing.T) {
	got, err := Currency("ETH")
	assert.NoError(t, err)
	assert.Equal(t, "eth", got)

	got, err = Currency("")
	assert.NoError(t, err)
	assert.Equal(t, "btc", got)

	_, err = Currency("doge")
	assert.True(t, IsValidationError(err))
}

func TestDepth(t *testing.T) {
	d, ok := Depth(0, false)
	assert.False(t, ok)

	d, ok = Depth(0, true)
	assert.True(t, ok)
	assert.Equal(t, common.DefaultDepth, d)

	d, ok = Depth(-5, true)
	assert.True(t, ok)
	assert.Equal(t, 5, d)

	d, ok = Depth(20, false)
	assert.True(t, ok)
	assert.Equal(t, 20, d)
}

func TestGroup(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{in: 1, want: 1},
		{in: 2, want: 2},
		{in: 5, want: 5},
		{in: 250, want: 250},
		// In-between values snap down to the nearest lower step.
		{in: 3, want: 2},
		{in: 7, want: 5},
		{in: 99, want: 25},
		// Out-of-range values clamp to the ends.
		{in: -4, want: 1},
		{in: 300, want: 250},
	}

	for _, tc := range cases {
		got, ok := Group(tc.in, true)
		assert.True(t, ok)
		assert.Equal(t, tc.want, got, "group %d", tc.in)
	}

	_, ok := Group(0, false)
	assert.False(t, ok)

	got, ok := Group(0, true)
	assert.True(t, ok)
	assert.Equal(t, common.DefaultGroup, got)
}

func TestInterval(t *testing.T) {
	assert.Equal(t, "100ms", Interval(0))
	assert.Equal(t, "100ms", Interval(-10))
	assert.Equal(t, "1ms", Interval(1))
	assert.Equal(t, "500ms", Interval(500))
}

func TestAmount(t *testing.T) {
	got, warn, err := Amount(10)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, got)
	assert.Empty(t, warn)

	_, warn, err = Amount(0)
	assert.NoError(t, err)
	assert.NotEmpty(t, warn)

	_, _, err = Amount(-1)
	assert.True(t, IsValidationError(err))
}

func TestPrices(t *testing.T) {
	_, _, err := LimitPrice(-0.5)
	assert.True(t, IsValidationError(err))

	_, warn, err := LimitPrice(0)
	assert.NoError(t, err)
	assert.NotEmpty(t, warn)

	_, _, err = StopPrice(-0.5)
	assert.True(t, IsValidationError(err))

	// Zero max-show hides the order entirely; it is legitimate and silent.
	got, err := MaxShow(0)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = MaxShow(-1)
	assert.True(t, IsValidationError(err))

	_, err = Price(-100)
	assert.True(t, IsValidationError(err))
}

func TestOrderType(t *testing.T) {
	got, err := OrderType("Stop-Limit")
	assert.NoError(t, err)
	assert.Equal(t, "stop-limit", got)

	got, err = OrderType("")
	assert.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = OrderType("trailing")
	assert.True(t, IsValidationError(err))
}

func TestTimeInForce(t *testing.T) {
	got, err := TimeInForce("")
	assert.NoError(t, err)
	assert.Equal(t, string(common.GoodTilCancelled), got)

	got, err = TimeInForce("FILL_OR_KILL")
	assert.NoError(t, err)
	assert.Equal(t, "fill_or_kill", got)

	_, err = TimeInForce("day")
	assert.True(t, IsValidationError(err))
}

func TestTrigger(t *testing.T) {
	got, err := Trigger("")
	assert.NoError(t, err)
	assert.Equal(t, string(common.TriggerIndexPrice), got)

	_, err = Trigger("bid_price")
	assert.True(t, IsValidationError(err))
}

func TestCount(t *testing.T) {
	got, warn := Count(20)
	assert.Equal(t, 20, got)
	assert.Empty(t, warn)

	got, warn = Count(0)
	assert.Equal(t, 0, got)
	assert.NotEmpty(t, warn)

	got, warn = Count(-20)
	assert.Equal(t, 20, got)
	assert.NotEmpty(t, warn)
}

func TestApply(t *testing.T) {
	res, err := Apply(map[Field]interface{}{
		FieldInstrument: "btc-perpetual",
		FieldKind:       "futures",
		FieldCurrency:   "",
		FieldAmount:     0.0,
		FieldPostOnly:   true,
	})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, Values{
		FieldInstrument: "BTC-PERPETUAL",
		FieldKind:       "future",
		FieldCurrency:   "btc",
		FieldAmount:     0.0,
		FieldPostOnly:   true,
	}, res.Values)

	// Warnings come out in field order: kind first, then amount.
	if assert.Equal(t, 2, len(res.Warnings)) {
		assert.Contains(t, res.Warnings[0], "futures")
		assert.Contains(t, res.Warnings[1], "zero")
	}
}

func TestApplyFirstErrorAborts(t *testing.T) {
	_, err := Apply(map[Field]interface{}{
		FieldInstrument: "BTC-PERPETUAL",
		FieldAmount:     -10.0,
	})
	assert.True(t, IsValidationError(err))
}

func TestApplyTypeMismatch(t *testing.T) {
	_, err := Apply(map[Field]interface{}{
		FieldAmount: "ten",
	})
	assert.True(t, IsValidationError(err))
}

func TestApplyUnknownField(t *testing.T) {
	_, err := Apply(map[Field]interface{}{
		Field("side"): "buy",
	})
	assert.True(t, IsValidationError(err))
}

func TestApplyAbsentFieldsOmitted(t *testing.T) {
	res, err := Apply(map[Field]interface{}{
		FieldOrderType: "",
		FieldDepth:     0,
		FieldCount:     0,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Empty order type and zero depth mean "not requested" and a zero
	// count means "no limit"; none of them belong in the output.
	_, present := res.Values[FieldDepth]
	assert.False(t, present)
	_, present = res.Values[FieldCount]
	assert.False(t, present)
	assert.Equal(t, "", res.Values[FieldOrderType])
}
