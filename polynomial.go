package alu

import (
	"fmt"
	"strings"
)

// Polynomial is a linear combination of the fourteen inputs plus a constant:
// one coefficient per input and a constant term. It is the compact
// representation an expression keeps until a genuinely nonlinear or
// range-losing operation forces a general operation node.
type Polynomial struct {
	coef [NumInputs + 1]int64 // input coefficients; constant term last
}

// NewConstantPolynomial returns the polynomial holding only a constant term.
func NewConstantPolynomial(c int64) Polynomial {
	var p Polynomial
	p.coef[NumInputs] = c
	return p
}

// NewInputPolynomial returns the polynomial holding a single input with
// coefficient one.
func NewInputPolynomial(in Input) Polynomial {
	assert(in >= 0 && int(in) < NumInputs, "input out of range: %d", in)
	var p Polynomial
	p.coef[in] = 1
	return p
}

// Coefficient returns the coefficient of the given input.
func (p Polynomial) Coefficient(in Input) int64 {
	assert(in >= 0 && int(in) < NumInputs, "input out of range: %d", in)
	return p.coef[in]
}

// ConstantTerm returns the constant term.
func (p Polynomial) ConstantTerm() int64 {
	return p.coef[NumInputs]
}

// Add returns the sum of p and other.
func (p Polynomial) Add(other Polynomial) Polynomial {
	var sum Polynomial
	for i := range p.coef {
		sum.coef[i] = p.coef[i] + other.coef[i]
	}
	return sum
}

// MulScalar returns p with every term multiplied by k.
func (p Polynomial) MulScalar(k int64) Polynomial {
	var product Polynomial
	for i := range p.coef {
		product.coef[i] = p.coef[i] * k
	}
	return product
}

// Constant returns the constant value of p, or false if any input
// coefficient is nonzero.
func (p Polynomial) Constant() (int64, bool) {
	for _, c := range p.coef[:NumInputs] {
		if c != 0 {
			return 0, false
		}
	}
	return p.coef[NumInputs], true
}

// Range returns the exact range of values p can take with every input
// between 1 and 9.
func (p Polynomial) Range() ValueRange {
	lo, hi := p.coef[NumInputs], p.coef[NumInputs]
	for _, c := range p.coef[:NumInputs] {
		if c > 0 {
			lo += c
			hi += c * 9
		} else {
			lo += c * 9
			hi += c
		}
	}
	return ValueRange{Start: lo, End: hi}
}

// ModScalar reduces p modulo m. Defined only when every input coefficient is
// a multiple of m; the linear terms then vanish and only the constant term
// remains. Returns false when some coefficient is not a multiple.
func (p Polynomial) ModScalar(m int64) (Polynomial, bool) {
	assert(m > 0, "modulus must be positive: %d", m)
	for _, c := range p.coef[:NumInputs] {
		if c%m != 0 {
			return Polynomial{}, false
		}
	}
	return NewConstantPolynomial(euclidMod(p.coef[NumInputs], m)), true
}

// DivScalar divides p by d when the division provably distributes over every
// term: the coefficient remainders, each scaled by the input maximum of 9,
// must sum to strictly less than d, so the residue never reaches the next
// multiple. Returns false when that cannot be proven or p can go negative.
func (p Polynomial) DivScalar(d int64) (Polynomial, bool) {
	assert(d > 0, "divisor must be positive: %d", d)
	if p.Range().Start < 0 {
		return Polynomial{}, false
	}

	var q Polynomial
	var residue int64
	for i, c := range p.coef {
		r := euclidMod(c, d)
		q.coef[i] = (c - r) / d
		if i < NumInputs {
			residue += r * 9
		} else {
			residue += r
		}
	}
	if residue >= d {
		return Polynomial{}, false
	}
	return q, true
}

// Evaluate computes p's value for a full assignment of input digits.
func (p Polynomial) Evaluate(digits []int64) int64 {
	assert(len(digits) == NumInputs, "digit count mismatch: %d != %d", len(digits), NumInputs)
	v := p.coef[NumInputs]
	for i, c := range p.coef[:NumInputs] {
		v += c * digits[i]
	}
	return v
}

// String returns the polynomial as a sum of terms, e.g. "5*in2 + in3 + 7".
func (p Polynomial) String() string {
	var terms []string
	for i, c := range p.coef[:NumInputs] {
		switch {
		case c == 0:
			continue
		case c == 1:
			terms = append(terms, Input(i).String())
		default:
			terms = append(terms, fmt.Sprintf("%d*%s", c, Input(i)))
		}
	}
	if c := p.coef[NumInputs]; c != 0 || len(terms) == 0 {
		terms = append(terms, fmt.Sprintf("%d", c))
	}
	return strings.Join(terms, " + ")
}

// euclidMod returns a mod m with a non-negative result for positive m.
func euclidMod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
