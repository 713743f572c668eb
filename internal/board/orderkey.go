package board

import (
	"math"
	"strconv"
	"strings"
)

// OrderKey is the nullable numeric field establishing an item's position
// within its group. A null key sorts after every non-null key. Keys in (0,1)
// are urgent slots and rank above all regular slots (>= 1). Zero is an
// invalid state and is never produced.
type OrderKey struct {
	Value float64
	Valid bool
}

// NullOrder is the unordered key.
var NullOrder = OrderKey{}

// Order returns a valid OrderKey holding v.
func Order(v float64) OrderKey {
	return OrderKey{Value: v, Valid: true}
}

// OrderClass is the classification of an order key.
type OrderClass int

// Order key classes.
const (
	Unordered OrderClass = iota
	Urgent
	Regular
)

func (c OrderClass) String() string {
	switch c {
	case Urgent:
		return "urgent"
	case Regular:
		return "regular"
	default:
		return "unordered"
	}
}

// orderSentinels are raw values treated as "no order assigned".
func isOrderSentinel(raw string) bool {
	trimmed := strings.TrimSpace(raw)

	return trimmed == "" || trimmed == "-" || trimmed == "--"
}

// ParseOrderKey coerces a raw field value into an OrderKey. Decimal and
// scientific notation both parse; blank, dash-like sentinels and anything
// non-numeric reduce to the null key. This is the lenient read-path parse;
// the write path goes through NormalizeOrderValue instead.
func ParseOrderKey(raw string) OrderKey {
	if isOrderSentinel(raw) {
		return NullOrder
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return NullOrder
	}

	return Order(value)
}

// Classify buckets an order key into unordered, urgent or regular.
// Anything at or below zero that is not null is out of contract; it is
// reported as Unordered so comparison stays total, but the write path
// refuses to produce such values.
func (k OrderKey) Classify() OrderClass {
	switch {
	case !k.Valid:
		return Unordered
	case k.Value >= 1:
		return Regular
	case k.Value > 0:
		return Urgent
	default:
		return Unordered
	}
}

// Compare orders two keys: nulls last, otherwise ascending numeric value.
// Returns -1, 0 or 1.
func (k OrderKey) Compare(other OrderKey) int {
	switch {
	case !k.Valid && !other.Valid:
		return 0
	case !k.Valid:
		return 1
	case !other.Valid:
		return -1
	case k.Value < other.Value:
		return -1
	case k.Value > other.Value:
		return 1
	default:
		return 0
	}
}

// String renders the key the way the dashboard shows it: "-" for null,
// shortest round-trip decimal otherwise.
func (k OrderKey) String() string {
	if !k.Valid {
		return "-"
	}

	return strconv.FormatFloat(k.Value, 'f', -1, 64)
}

// NormalizeOrderValue validates a raw order value on the write path.
// Empty string and dash sentinels normalize to the null key (clear).
// Zero, negative, and non-numeric non-empty input are rejected with
// ValidationError before any store call is issued.
func NormalizeOrderValue(raw string) (OrderKey, error) {
	if isOrderSentinel(raw) {
		return NullOrder, nil
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return NullOrder, &ValidationError{Value: raw, Reason: "not a number"}
	}

	if value <= 0 {
		return NullOrder, &ValidationError{Value: raw, Reason: "order must be positive"}
	}

	return Order(value), nil
}
