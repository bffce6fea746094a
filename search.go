package alu

import "github.com/benbjohnson/immutable"

// DigitsDescending tries candidate digits from 9 down to 1, so the first
// solution found is the largest.
var DigitsDescending = []int64{9, 8, 7, 6, 5, 4, 3, 2, 1}

// DigitsAscending tries candidate digits from 1 up to 9, so the first
// solution found is the smallest.
var DigitsAscending = []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}

// Searcher finds the extremal fourteen-digit input sequence that drives
// register z to zero, by depth-first search over the program's instructions.
// A partial assignment is abandoned as soon as any computed register value
// falls outside the limit the analysis proved necessary at that point; that
// pruning is what keeps the search far below 9^14 leaves.
type Searcher struct {
	analysis *Analysis
	order    []int64
}

// NewSearcher returns a searcher trying candidate digits in the given order.
func NewSearcher(analysis *Analysis, order []int64) *Searcher {
	assert(len(order) > 0, "empty digit order")
	return &Searcher{analysis: analysis, order: order}
}

// Search returns the first solution found, as a fourteen-digit decimal
// number, or ErrNoSolution if no digit sequence satisfies the program.
func (s *Searcher) Search() (uint64, error) {
	if !s.analysis.Satisfiable() {
		return 0, ErrNoSolution
	}

	var regs [NumRegisters]int64
	digits, ok := s.search(0, regs, immutable.NewList())
	if !ok {
		return 0, ErrNoSolution
	}

	var n uint64
	itr := digits.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		n = n*10 + uint64(v.(int64))
	}
	return n, nil
}

// search advances the program from instruction i. Each recursive call owns
// its copy of the register file and a persistent digit list, so failed
// branches simply return with nothing to undo.
func (s *Searcher) search(i int, regs [NumRegisters]int64, digits *immutable.List) (*immutable.List, bool) {
	if i == s.analysis.Len() {
		if regs[Z] == 0 {
			return digits, true
		}
		return nil, false
	}

	switch instr := s.analysis.Info(i).Instruction.(type) {
	case *InputInstruction:
		for _, d := range s.order {
			next := regs
			next[instr.Dst] = d
			if result, ok := s.search(i+1, next, digits.Append(d)); ok {
				return result, ok
			}
		}
		return nil, false

	case *OperateInstruction:
		v := instr.Op.Apply(regs[instr.Dst], operandValue(instr.Src, regs))
		if limit, ok := s.analysis.Limit(i, instr.Dst); ok && !limit.Contains(v) {
			return nil, false
		}
		regs[instr.Dst] = v
		return s.search(i+1, regs, digits)

	default:
		panic("unreachable")
	}
}
