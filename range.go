package alu

import "fmt"

// ValueRange is a closed interval of values an expression can take. Ranges
// are never empty; Start is always at most End.
//
// Each operation has a forward function computing the range of possible
// results from its operand ranges, and, where invertible, a backward
// function computing the narrowest range one operand must lie in for the
// result to land in a required range. Backward functions over-approximate:
// every consistent value is inside the returned range, but not every value
// inside it need be consistent.
//
// The multiply and divide backward functions are proven sound only for
// non-negative operand ranges and panic outside that domain; the machine's
// programs never produce negative multiplicand or divisor constraints.
type ValueRange struct {
	Start int64
	End   int64
}

// NewValueRange returns the range [start, end].
func NewValueRange(start, end int64) ValueRange {
	assert(start <= end, "value range not in order: [%d,%d]", start, end)
	return ValueRange{Start: start, End: end}
}

// String returns the range in interval notation.
func (r ValueRange) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// Contains returns true if v lies inside the range.
func (r ValueRange) Contains(v int64) bool {
	return r.Start <= v && v <= r.End
}

// IsSingle returns true if the range holds exactly one value.
func (r ValueRange) IsSingle() bool {
	return r.Start == r.End
}

// Intersect returns the overlap of a and b, or false if they are disjoint.
func Intersect(a, b ValueRange) (ValueRange, bool) {
	lo, hi := max(a.Start, b.Start), min(a.End, b.End)
	if lo > hi {
		return ValueRange{}, false
	}
	return ValueRange{Start: lo, End: hi}, true
}

// AddForward returns the range of a+b.
func AddForward(a, b ValueRange) ValueRange {
	return ValueRange{Start: a.Start + b.Start, End: a.End + b.End}
}

// AddBackward returns the range one addend must lie in, given the other
// addend's range and the required result range. Addition is commutative, so
// the same function serves both operands.
func AddBackward(other, result ValueRange) ValueRange {
	// The smallest addend pairs with other.End to reach result.Start;
	// the largest pairs with other.Start to reach result.End.
	return ValueRange{Start: result.Start - other.End, End: result.End - other.Start}
}

// MulForward returns the range of a*b.
func MulForward(a, b ValueRange) ValueRange {
	corners := [4]int64{
		a.Start * b.Start,
		a.Start * b.End,
		a.End * b.Start,
		a.End * b.End,
	}
	lo, hi := corners[0], corners[0]
	for _, v := range corners[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return ValueRange{Start: lo, End: hi}
}

// MulBackward returns the range one factor must lie in, given the other
// factor's range and the required product range. No information can be
// extracted when the known factor's range includes zero.
func MulBackward(other, result ValueRange) (ValueRange, bool) {
	if other.Contains(0) {
		return ValueRange{}, false
	}
	assert(other.Start > 0, "multiply backward over negative range: %s", other)

	lo := min(ceilDiv(result.Start, other.Start), ceilDiv(result.Start, other.End))
	hi := max(floorDiv(result.End, other.Start), floorDiv(result.End, other.End))
	if lo > hi {
		// No integer multiple lands inside the result range.
		return ValueRange{}, false
	}
	return ValueRange{Start: lo, End: hi}, true
}

// DivForward returns the range of a/b (integer division). Defined only for a
// non-negative dividend and a positive divisor.
func DivForward(a, b ValueRange) ValueRange {
	assert(a.Start >= 0, "divide forward over negative dividend range: %s", a)
	assert(b.Start > 0, "divide forward over non-positive divisor range: %s", b)
	return ValueRange{Start: a.Start / b.End, End: a.End / b.Start}
}

// DivBackward returns the range the dividend must lie in, given the divisor
// range and the required quotient range. The quotient's rounding slack widens
// the top end by up to divisor-1.
func DivBackward(divisor, result ValueRange) ValueRange {
	assert(divisor.Start > 0, "divide backward over non-positive divisor range: %s", divisor)
	assert(result.End >= 0, "divide backward over negative quotient range: %s", result)
	lo := max(result.Start, 0)
	return ValueRange{Start: lo * divisor.Start, End: result.End*divisor.End + divisor.End - 1}
}

// ModForward returns the range of a%b. Defined only for a non-negative
// dividend and a positive divisor. When the dividend already lies entirely
// below the smallest divisor, the modulo is a no-op.
func ModForward(a, b ValueRange) ValueRange {
	assert(a.Start >= 0, "modulo forward over negative dividend range: %s", a)
	assert(b.Start > 0, "modulo forward over non-positive divisor range: %s", b)
	if a.End < b.Start {
		return a
	}
	return ValueRange{Start: 0, End: b.End - 1}
}

// EqlForward returns the range of the comparison a==b: {1} when both ranges
// are the same single value, {0} when they are disjoint, and {0,1} otherwise.
func EqlForward(a, b ValueRange) ValueRange {
	if a.IsSingle() && b.IsSingle() && a.Start == b.Start {
		return ValueRange{Start: 1, End: 1}
	}
	if a.End < b.Start || b.End < a.Start {
		return ValueRange{Start: 0, End: 0}
	}
	return ValueRange{Start: 0, End: 1}
}

// EqlBackward returns the range one comparison operand must lie in, given
// that operand's current range, the other operand's range, and the required
// comparison result. A forced equal pins the operand to the other side's
// range. A forced not-equal can only shave an endpoint: the known side must
// be a single value sitting at one end of a two-valued current range.
func EqlBackward(current, other, result ValueRange) (ValueRange, bool) {
	switch {
	case result.Start == 1 && result.End == 1:
		return other, true
	case result.Start == 0 && result.End == 0:
		if !other.IsSingle() {
			return ValueRange{}, false
		}
		v := other.Start
		if current.Start == v && current.End == v+1 {
			return ValueRange{Start: v + 1, End: v + 1}, true
		}
		if current.Start == v-1 && current.End == v {
			return ValueRange{Start: v - 1, End: v - 1}, true
		}
		return ValueRange{}, false
	default:
		return ValueRange{}, false
	}
}

// forwardRange dispatches to the operation's forward function.
func forwardRange(op Op, a, b ValueRange) ValueRange {
	switch op {
	case ADD:
		return AddForward(a, b)
	case MUL:
		return MulForward(a, b)
	case DIV:
		return DivForward(a, b)
	case MOD:
		return ModForward(a, b)
	case EQL:
		return EqlForward(a, b)
	default:
		panic("unreachable")
	}
}

// floorDiv returns a/b rounded toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ceilDiv returns a/b rounded toward positive infinity.
func ceilDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
