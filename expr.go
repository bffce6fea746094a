package alu

import "fmt"

// ExprID addresses an interned expression node within a Builder. Interning
// is content-addressed, so two structurally equal expressions always share
// one ID and equality checks reduce to ID comparison.
type ExprID int32

// exprKey holds a node's full contents. It is comparable and doubles as the
// interning cache key.
type exprKey struct {
	operation bool
	op        Op
	lhs, rhs  ExprID
	poly      Polynomial
}

// maxRewriteDepth bounds the simplification recursion so that an unexpected
// rewrite cycle fails loudly instead of hanging.
const maxRewriteDepth = 1000

// Builder is an arena of expression nodes. Operations simplify as they are
// built: constants fold, identities vanish, and polynomial operands combine
// whenever the interval domain can prove the rewrite sound. Nodes are
// immutable once interned.
type Builder struct {
	keys   []exprKey
	ranges []ValueRange
	cache  map[exprKey]ExprID
	depth  int
}

// NewBuilder returns an empty expression arena.
func NewBuilder() *Builder {
	return &Builder{cache: make(map[exprKey]ExprID)}
}

// Len returns the number of interned nodes.
func (b *Builder) Len() int { return len(b.keys) }

// Polynomial interns a polynomial node.
func (b *Builder) Polynomial(p Polynomial) ExprID {
	return b.intern(exprKey{poly: p})
}

// Constant interns a constant polynomial node.
func (b *Builder) Constant(c int64) ExprID {
	return b.Polynomial(NewConstantPolynomial(c))
}

// Input interns a single-input polynomial node.
func (b *Builder) Input(in Input) ExprID {
	return b.Polynomial(NewInputPolynomial(in))
}

// Range returns the provable range of values the expression can take.
func (b *Builder) Range(id ExprID) ValueRange {
	return b.ranges[id]
}

// AsPolynomial returns the expression's polynomial, or false if the
// expression is an operation node.
func (b *Builder) AsPolynomial(id ExprID) (Polynomial, bool) {
	key := b.keys[id]
	if key.operation {
		return Polynomial{}, false
	}
	return key.poly, true
}

// ConstantValue returns the expression's constant value, or false if the
// expression depends on any input.
func (b *Builder) ConstantValue(id ExprID) (int64, bool) {
	if p, ok := b.AsPolynomial(id); ok {
		return p.Constant()
	}
	return 0, false
}

// Operation builds the expression op(lhs, rhs), rewriting until no
// simplification rule applies.
func (b *Builder) Operation(op Op, lhs, rhs ExprID) ExprID {
	b.depth++
	defer func() { b.depth-- }()
	assert(b.depth <= maxRewriteDepth, "expression rewrite exceeded depth %d; rules are cycling", maxRewriteDepth)

	// Fold when both sides reduce to constants.
	if lc, ok := b.ConstantValue(lhs); ok {
		if rc, ok := b.ConstantValue(rhs); ok {
			return b.Constant(op.Apply(lc, rc))
		}
	}

	switch op {
	case ADD:
		return b.buildAdd(lhs, rhs)
	case MUL:
		return b.buildMul(lhs, rhs)
	case DIV:
		return b.buildDiv(lhs, rhs)
	case MOD:
		return b.buildMod(lhs, rhs)
	case EQL:
		return b.buildEql(lhs, rhs)
	default:
		panic("unreachable")
	}
}

// buildAdd returns the expression representing the sum of lhs & rhs.
func (b *Builder) buildAdd(lhs, rhs ExprID) ExprID {
	// Adding zero is an identity.
	if c, ok := b.ConstantValue(lhs); ok && c == 0 {
		return rhs
	}
	if c, ok := b.ConstantValue(rhs); ok && c == 0 {
		return lhs
	}

	// Two polynomials fold into one.
	if lp, ok := b.AsPolynomial(lhs); ok {
		if rp, ok := b.AsPolynomial(rhs); ok {
			return b.Polynomial(lp.Add(rp))
		}
	}
	return b.intern(exprKey{operation: true, op: ADD, lhs: lhs, rhs: rhs})
}

// buildMul returns the expression representing the product of lhs & rhs.
func (b *Builder) buildMul(lhs, rhs ExprID) ExprID {
	// Multiplying by zero annihilates; by one is an identity. A constant
	// factor folds into a polynomial operand.
	for _, side := range [2][2]ExprID{{lhs, rhs}, {rhs, lhs}} {
		c, ok := b.ConstantValue(side[0])
		if !ok {
			continue
		}
		switch c {
		case 0:
			return b.Constant(0)
		case 1:
			return side[1]
		}
		if p, ok := b.AsPolynomial(side[1]); ok {
			return b.Polynomial(p.MulScalar(c))
		}
	}
	return b.intern(exprKey{operation: true, op: MUL, lhs: lhs, rhs: rhs})
}

// buildDiv returns the expression representing the quotient of lhs & rhs.
func (b *Builder) buildDiv(lhs, rhs ExprID) ExprID {
	if c, ok := b.ConstantValue(rhs); ok {
		// Dividing by one is an identity.
		if c == 1 {
			return lhs
		}
		// A polynomial divides through when every term's remainder is
		// provably absorbed.
		if p, ok := b.AsPolynomial(lhs); ok && c > 0 {
			if q, ok := p.DivScalar(c); ok {
				return b.Polynomial(q)
			}
		}
	}
	return b.intern(exprKey{operation: true, op: DIV, lhs: lhs, rhs: rhs})
}

// buildMod returns the expression representing lhs modulo rhs.
func (b *Builder) buildMod(lhs, rhs ExprID) ExprID {
	if m, ok := b.ConstantValue(rhs); ok && m > 0 {
		// The modulus is a no-op when the operand already lies below it.
		if r := b.Range(lhs); r.Start >= 0 && r.End < m {
			return lhs
		}

		// A polynomial whose input coefficients are all multiples of the
		// modulus reduces to its constant term.
		if p, ok := b.AsPolynomial(lhs); ok {
			if reduced, ok := p.ModScalar(m); ok {
				return b.Polynomial(reduced)
			}
		}

		// Push the modulus through a sum or product whose terms are
		// provably multiples of it.
		if key := b.keys[lhs]; key.operation {
			switch key.op {
			case ADD:
				if b.multipleOf(key.lhs, m) {
					return b.Operation(MOD, key.rhs, rhs)
				}
				if b.multipleOf(key.rhs, m) {
					return b.Operation(MOD, key.lhs, rhs)
				}
			case MUL:
				if b.multipleOf(key.lhs, m) || b.multipleOf(key.rhs, m) {
					return b.Constant(0)
				}
			}
		}
	}
	return b.intern(exprKey{operation: true, op: MOD, lhs: lhs, rhs: rhs})
}

// buildEql returns the expression representing the comparison lhs == rhs.
func (b *Builder) buildEql(lhs, rhs ExprID) ExprID {
	lr, rr := b.Range(lhs), b.Range(rhs)
	if lr.End < rr.Start || rr.End < lr.Start {
		return b.Constant(0)
	}
	if lr.IsSingle() && rr.IsSingle() && lr.Start == rr.Start {
		return b.Constant(1)
	}
	return b.intern(exprKey{operation: true, op: EQL, lhs: lhs, rhs: rhs})
}

// multipleOf returns true if the expression is provably a multiple of m for
// every input assignment.
func (b *Builder) multipleOf(id ExprID, m int64) bool {
	key := b.keys[id]
	if !key.operation {
		for _, c := range key.poly.coef {
			if c%m != 0 {
				return false
			}
		}
		return true
	}
	if key.op == MUL {
		return b.multipleOf(key.lhs, m) || b.multipleOf(key.rhs, m)
	}
	return false
}

// Evaluate computes the expression's value for a full assignment of input
// digits.
func (b *Builder) Evaluate(id ExprID, digits []int64) int64 {
	key := b.keys[id]
	if !key.operation {
		return key.poly.Evaluate(digits)
	}
	return key.op.Apply(b.Evaluate(key.lhs, digits), b.Evaluate(key.rhs, digits))
}

// String returns the expression in s-expression form, with polynomials
// rendered as sums of terms.
func (b *Builder) String(id ExprID) string {
	key := b.keys[id]
	if !key.operation {
		return key.poly.String()
	}
	return fmt.Sprintf("(%s %s %s)", key.op, b.String(key.lhs), b.String(key.rhs))
}

// intern returns the ID for a node with the given contents, adding it to the
// arena on first sight. The node's range is computed once on insertion.
func (b *Builder) intern(key exprKey) ExprID {
	if id, ok := b.cache[key]; ok {
		return id
	}

	var rng ValueRange
	if key.operation {
		rng = forwardRange(key.op, b.ranges[key.lhs], b.ranges[key.rhs])
	} else {
		rng = key.poly.Range()
	}

	id := ExprID(len(b.keys))
	b.keys = append(b.keys, key)
	b.ranges = append(b.ranges, rng)
	b.cache[key] = id
	return id
}
