// Package sanitize validates and normalizes user-supplied trading
// parameters before they are placed into an outgoing request. Each field
// has its own rules: string enums are lower-cased and checked against the
// fixed sets in the common package, numeric inputs are coerced and
// clamped, and suspicious-but-legal values (a zero amount, a zero count)
// produce warnings instead of errors. Warnings are returned as data, never
// printed.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/juju/errors"

	"deribit-sdk-go/common"
)

// Field identifies one sanitizable request parameter. The constants below
// double as the wire names of the parameters they validate.
type Field string

// The following constants name every field the sanitizer knows about.
const (
	FieldInstrument  Field = "instrument"
	FieldKind        Field = "kind"
	FieldCurrency    Field = "currency"
	FieldDepth       Field = "depth"
	FieldInterval    Field = "interval"
	FieldGroup       Field = "group"
	FieldAmount      Field = "amount"
	FieldMaxShow     Field = "max_show"
	FieldOrderType   Field = "type"
	FieldTimeInForce Field = "time_in_force"
	FieldTrigger     Field = "trigger"
	FieldAdvanced    Field = "advanced"
	FieldLabel       Field = "label"
	FieldLimitPrice  Field = "limit_price"
	FieldStopPrice   Field = "stop_price"
	FieldPrice       Field = "price"
	FieldPostOnly    Field = "post_only"
	FieldReduceOnly  Field = "reduce_only"
	FieldCount       Field = "count"
	FieldIncludeOld  Field = "include_old"
	FieldOrderID     Field = "order_id"
)

// fieldOrder fixes the order in which Apply visits fields, so that
// warnings come out deterministically.
var fieldOrder = []Field{
	FieldInstrument,
	FieldKind,
	FieldCurrency,
	FieldDepth,
	FieldInterval,
	FieldGroup,
	FieldAmount,
	FieldMaxShow,
	FieldOrderType,
	FieldTimeInForce,
	FieldTrigger,
	FieldAdvanced,
	FieldLabel,
	FieldLimitPrice,
	FieldStopPrice,
	FieldPrice,
	FieldPostOnly,
	FieldReduceOnly,
	FieldCount,
	FieldIncludeOld,
	FieldOrderID,
}

// Values holds sanitized parameters keyed by field. Only the fields that
// were actually provided (and survived sanitization) are present.
type Values map[Field]interface{}

// Str returns the string value of f, if present.
func (v Values) Str(f Field) (string, bool) {
	s, ok := v[f].(string)
	return s, ok
}

// Float returns the float64 value of f, if present.
func (v Values) Float(f Field) (float64, bool) {
	n, ok := v[f].(float64)
	return n, ok
}

// ParamsMap converts the values into a params mapping keyed by the wire
// names of the fields.
func (v Values) ParamsMap() map[string]interface{} {
	out := make(map[string]interface{}, len(v))
	for f, val := range v {
		out[string(f)] = val
	}
	return out
}

// Result is the outcome of sanitizing a set of fields.
type Result struct {
	Values   Values
	Warnings []string
}

// validator normalizes one raw value. A nil returned value means the field
// is absent and should be omitted from the output entirely.
type validator func(v interface{}) (interface{}, []string, error)

// validators maps each field to its validator. Built once at init so that
// dispatch is an explicit table lookup rather than anything name-based.
var validators map[Field]validator

func init() {
	validators = map[Field]validator{
		FieldInstrument:  stringField(func(s string) (string, string, error) { return Instrument(s), "", nil }),
		FieldKind:        stringField(Kind),
		FieldCurrency:    stringField(noWarn(Currency)),
		FieldDepth:       intField(func(n int) (interface{}, string) { return presence(Depth(n, false)), "" }),
		FieldGroup:       intField(func(n int) (interface{}, string) { return presence(Group(n, false)), "" }),
		FieldInterval:    intField(func(n int) (interface{}, string) { return Interval(n), "" }),
		FieldAmount:      floatField(Amount),
		FieldMaxShow:     floatField(noWarnF(MaxShow)),
		FieldOrderType:   stringField(noWarn(OrderType)),
		FieldTimeInForce: stringField(noWarn(TimeInForce)),
		FieldTrigger:     stringField(noWarn(Trigger)),
		FieldAdvanced:    boolField(),
		FieldLabel:       stringField(func(s string) (string, string, error) { return Label(s), "", nil }),
		FieldLimitPrice:  floatField(LimitPrice),
		FieldStopPrice:   floatField(StopPrice),
		FieldPrice:       floatField(noWarnF(Price)),
		FieldPostOnly:    boolField(),
		FieldReduceOnly:  boolField(),
		FieldCount: intField(func(n int) (interface{}, string) {
			c, warn := Count(n)
			if c == 0 {
				return nil, warn
			}
			return c, warn
		}),
		FieldIncludeOld: boolField(),
		FieldOrderID:    stringField(func(s string) (string, string, error) { return s, "", nil }),
	}
}

// Apply runs every provided field through its validator and collects the
// normalized values and warnings. Unknown fields are rejected; the first
// validation failure aborts the whole set.
func Apply(in map[Field]interface{}) (*Result, error) {
	res := &Result{Values: make(Values, len(in))}

	for _, f := range fieldOrder {
		raw, ok := in[f]
		if !ok {
			continue
		}

		validate, ok := validators[f]
		if !ok {
			return nil, errors.NotValidf("field %q", f)
		}

		val, warns, err := validate(raw)
		if err != nil {
			return nil, errors.Trace(err)
		}
		res.Warnings = append(res.Warnings, warns...)
		if val == nil {
			continue
		}
		res.Values[f] = val
	}

	for f := range in {
		if _, ok := validators[f]; !ok {
			return nil, errors.NotValidf("field %q", f)
		}
	}

	return res, nil
}

// IsValidationError reports whether err was produced by a sanitizer
// rejecting a field value.
func IsValidationError(err error) bool {
	return errors.IsNotValid(errors.Cause(err))
}

// ---------------------------------------------------------------------
// Per-field rules
// ---------------------------------------------------------------------

// Instrument canonicalizes an instrument name to uppercase. An empty name
// passes through unchanged.
func Instrument(name string) string {
	return strings.ToUpper(name)
}

// Kind normalizes an instrument kind. Legacy plural and "perpetual"
// spellings are remapped to the canonical singular value with a warning;
// an empty kind yields the default; anything else is rejected.
func Kind(kind string) (string, string, error) {
	if kind == "" {
		return string(common.DefaultKind), "", nil
	}

	k := strings.ToLower(kind)
	for _, valid := range common.InstrumentKinds {
		if k == string(valid) {
			return k, "", nil
		}
	}

	switch k {
	case "options":
		return "option", "instrument kinds are singular: remapped options to option", nil
	case "futures":
		return "future", "instrument kinds are singular: remapped futures to future", nil
	case "perpetual":
		return "future", "perpetual is not a kind: remapped perpetual to future", nil
	}

	return "", "", errors.NotValidf("instrument kind %q", kind)
}

// Currency normalizes an instrument currency, defaulting when empty.
func Currency(currency string) (string, error) {
	if currency == "" {
		return string(common.DefaultCurrency), nil
	}

	c := strings.ToLower(currency)
	for _, valid := range common.Currencies {
		if c == string(valid) {
			return c, nil
		}
	}

	return "", errors.NotValidf("instrument currency %q", currency)
}

// Depth coerces an order-book depth to a positive integer. A zero depth is
// replaced by the default when required, and reported absent otherwise;
// negative values are made positive. The second return value reports
// whether the depth is present at all.
func Depth(depth int, required bool) (int, bool) {
	if depth == 0 {
		if required {
			return common.DefaultDepth, true
		}
		return 0, false
	}

	if depth < 0 {
		depth = -depth
	}
	return depth, true
}

// Group snaps an order-book grouping to the nearest allowed granularity:
// exact members pass through, values above the maximum clamp to the
// maximum, values below the minimum clamp to the minimum, and anything in
// between snaps down to the nearest lower step. A zero group is replaced
// by the default when required, and reported absent otherwise.
func Group(group int, required bool) (int, bool) {
	if group == 0 {
		if required {
			return common.DefaultGroup, true
		}
		return 0, false
	}

	steps := common.BookGroups

	if group < steps[0] {
		return steps[0], true
	}
	if group > steps[len(steps)-1] {
		return steps[len(steps)-1], true
	}

	prev := steps[0]
	for _, step := range steps {
		if group == step {
			return group, true
		}
		if group < step {
			return prev, true
		}
		prev = step
	}

	return prev, true
}

// Interval formats a millisecond interval as the API expects ("100ms").
// Non-positive input falls back to the default; anything below one
// millisecond floors to "1ms".
func Interval(ms int) string {
	if ms <= 0 {
		return fmt.Sprintf("%dms", common.DefaultIntervalMS)
	}
	if ms <= 1 {
		return "1ms"
	}
	return fmt.Sprintf("%dms", ms)
}

// Amount validates an order amount: negative amounts are rejected, a zero
// amount is permitted but produces a warning.
func Amount(amount float64) (float64, string, error) {
	if amount < 0 {
		return 0, "", errors.NotValidf("negative order amount %v", amount)
	}
	if amount == 0 {
		return 0, "order amount is zero", nil
	}
	return amount, "", nil
}

// LimitPrice validates a limit price: negative prices are rejected, zero
// is permitted with a warning.
func LimitPrice(price float64) (float64, string, error) {
	if price < 0 {
		return 0, "", errors.NotValidf("negative limit price %v", price)
	}
	if price == 0 {
		return 0, "limit price is zero", nil
	}
	return price, "", nil
}

// StopPrice validates a stop price: negative prices are rejected, zero is
// permitted with a warning.
func StopPrice(price float64) (float64, string, error) {
	if price < 0 {
		return 0, "", errors.NotValidf("negative stop price %v", price)
	}
	if price == 0 {
		return 0, "stop price is zero", nil
	}
	return price, "", nil
}

// MaxShow validates a max-show amount. Zero is a legitimate value (a fully
// hidden order), so unlike prices it produces no warning.
func MaxShow(v float64) (float64, error) {
	if v < 0 {
		return 0, errors.NotValidf("negative max show %v", v)
	}
	return v, nil
}

// Price validates an estimate price for margin calculations.
func Price(v float64) (float64, error) {
	if v < 0 {
		return 0, errors.NotValidf("negative price %v", v)
	}
	return v, nil
}

// OrderType normalizes an order type against the fixed enumeration. An
// empty value is reported as absent.
func OrderType(t string) (string, error) {
	if t == "" {
		return "", nil
	}

	lowered := strings.ToLower(t)
	for _, valid := range common.OrderTypes {
		if lowered == string(valid) {
			return lowered, nil
		}
	}

	return "", errors.NotValidf("order type %q", t)
}

// TimeInForce normalizes a time-in-force value, defaulting to
// good_til_cancelled when empty.
func TimeInForce(tif string) (string, error) {
	if tif == "" {
		return string(common.GoodTilCancelled), nil
	}

	lowered := strings.ToLower(tif)
	for _, valid := range common.TimesInForce {
		if lowered == string(valid) {
			return lowered, nil
		}
	}

	return "", errors.NotValidf("time in force %q", tif)
}

// Trigger normalizes a stop-order trigger, defaulting to index_price when
// empty.
func Trigger(trigger string) (string, error) {
	if trigger == "" {
		return string(common.TriggerIndexPrice), nil
	}

	lowered := strings.ToLower(trigger)
	for _, valid := range common.Triggers {
		if lowered == string(valid) {
			return lowered, nil
		}
	}

	return "", errors.NotValidf("stop order trigger %q", trigger)
}

// Label passes a free-form order label through unchanged.
func Label(label string) string {
	return label
}

// Count coerces a result-count limit. Zero means "no limit" and produces a
// warning; negative counts are made positive with a warning.
func Count(count int) (int, string) {
	if count == 0 {
		return 0, "requested zero results: count reset to no limit"
	}
	if count < 0 {
		return -count, fmt.Sprintf("negative count %d made positive", count)
	}
	return count, ""
}

// ---------------------------------------------------------------------
// Table adapters
// ---------------------------------------------------------------------

func stringField(fn func(string) (string, string, error)) validator {
	return func(v interface{}) (interface{}, []string, error) {
		s, ok := v.(string)
		if !ok {
			return nil, nil, errors.NotValidf("value %v (want string)", v)
		}
		out, warn, err := fn(s)
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		return out, warnList(warn), nil
	}
}

func intField(fn func(int) (interface{}, string)) validator {
	return func(v interface{}) (interface{}, []string, error) {
		n, ok := v.(int)
		if !ok {
			return nil, nil, errors.NotValidf("value %v (want int)", v)
		}
		out, warn := fn(n)
		return out, warnList(warn), nil
	}
}

func floatField(fn func(float64) (float64, string, error)) validator {
	return func(v interface{}) (interface{}, []string, error) {
		n, ok := v.(float64)
		if !ok {
			return nil, nil, errors.NotValidf("value %v (want float64)", v)
		}
		out, warn, err := fn(n)
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		return out, warnList(warn), nil
	}
}

func boolField() validator {
	return func(v interface{}) (interface{}, []string, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, nil, errors.NotValidf("value %v (want bool)", v)
		}
		return b, nil, nil
	}
}

func noWarn(fn func(string) (string, error)) func(string) (string, string, error) {
	return func(s string) (string, string, error) {
		out, err := fn(s)
		return out, "", err
	}
}

func noWarnF(fn func(float64) (float64, error)) func(float64) (float64, string, error) {
	return func(v float64) (float64, string, error) {
		out, err := fn(v)
		return out, "", err
	}
}

func presence(n int, present bool) interface{} {
	if !present {
		return nil
	}
	return n
}

func warnList(warn string) []string {
	if warn == "" {
		return nil
	}
	return []string{warn}
}
