package alu_test

import (
	"testing"

	"github.com/benbjohnson/alu"
)

func TestSearcher_Search(t *testing.T) {
	// z ends at zero exactly when the two digits differ.
	program := mustParse(t, "inp w", "inp x", "eql x w", "add z x")
	analysis := alu.Analyze(program)

	t.Run("Largest", func(t *testing.T) {
		n, err := alu.NewSearcher(analysis, alu.DigitsDescending).Search()
		if err != nil {
			t.Fatal(err)
		} else if got, want := n, uint64(98); got != want {
			t.Fatalf("Search()=%d, want %d", got, want)
		}
	})
	t.Run("Smallest", func(t *testing.T) {
		n, err := alu.NewSearcher(analysis, alu.DigitsAscending).Search()
		if err != nil {
			t.Fatal(err)
		} else if got, want := n, uint64(12); got != want {
			t.Fatalf("Search()=%d, want %d", got, want)
		}
	})
}

func TestSearcher_NoSolution(t *testing.T) {
	t.Run("ProvedByAnalysis", func(t *testing.T) {
		analysis := alu.Analyze(mustParse(t, "inp w", "add z w"))
		if _, err := alu.NewSearcher(analysis, alu.DigitsDescending).Search(); err != alu.ErrNoSolution {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	t.Run("FoundByExhaustion", func(t *testing.T) {
		// z ends at (3*w + 1) mod 3 == 1; the interval domain cannot see
		// through the modulo, so every branch is visited and fails.
		program := mustParse(t, "inp w", "add z w", "mul z 3", "add z 1", "mod z 3")
		analysis := alu.Analyze(program)
		if !analysis.Satisfiable() {
			t.Fatal("expected analysis to stay satisfiable")
		}
		if _, err := alu.NewSearcher(analysis, alu.DigitsDescending).Search(); err != alu.ErrNoSolution {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestSearcher_Validator(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}

	program := loadProgram(t, "testdata/validator.txt")
	analysis := alu.Analyze(program)

	t.Run("Largest", func(t *testing.T) {
		n, err := alu.NewSearcher(analysis, alu.DigitsDescending).Search()
		if err != nil {
			t.Fatal(err)
		} else if got, want := n, uint64(91399639499395); got != want {
			t.Fatalf("Search()=%d, want %d", got, want)
		}
		verifyAccepted(t, program, n)
	})
	t.Run("Smallest", func(t *testing.T) {
		n, err := alu.NewSearcher(analysis, alu.DigitsAscending).Search()
		if err != nil {
			t.Fatal(err)
		} else if got, want := n, uint64(51174117169171); got != want {
			t.Fatalf("Search()=%d, want %d", got, want)
		}
		verifyAccepted(t, program, n)
	})

	// The largest answer starts 9,1. Any larger serial would have a second
	// digit of 2 through 9, so none of those prefixes may reach zero.
	t.Run("LeadingDigitsMaximal", func(t *testing.T) {
		for d := int64(2); d <= 9; d++ {
			if prefixReachesZero(analysis, []int64{9, d}) {
				t.Fatalf("prefix 9,%d unexpectedly reaches zero", d)
			}
		}
	})
}

// prefixReachesZero runs the same limit-pruned search as Searcher but with
// the leading digits forced.
func prefixReachesZero(analysis *alu.Analysis, prefix []int64) bool {
	var search func(i, next int, regs [alu.NumRegisters]int64) bool
	search = func(i, next int, regs [alu.NumRegisters]int64) bool {
		if i == analysis.Len() {
			return regs[alu.Z] == 0
		}
		switch instr := analysis.Info(i).Instruction.(type) {
		case *alu.InputInstruction:
			if next < len(prefix) {
				regs[instr.Dst] = prefix[next]
				return search(i+1, next+1, regs)
			}
			for d := int64(9); d >= 1; d-- {
				regs[instr.Dst] = d
				if search(i+1, next+1, regs) {
					return true
				}
			}
			return false
		case *alu.OperateInstruction:
			var src int64
			switch op := instr.Src.(type) {
			case alu.RegisterOperand:
				src = regs[op.Register]
			case alu.ConstOperand:
				src = op.Value
			}
			v := instr.Op.Apply(regs[instr.Dst], src)
			if limit, ok := analysis.Limit(i, instr.Dst); ok && !limit.Contains(v) {
				return false
			}
			regs[instr.Dst] = v
			return search(i+1, next, regs)
		default:
			return false
		}
	}
	var regs [alu.NumRegisters]int64
	return search(0, 0, regs)
}

// verifyAccepted replays a fourteen-digit serial through the program and
// fails unless z ends at zero.
func verifyAccepted(tb testing.TB, program []alu.Instruction, n uint64) {
	tb.Helper()

	digits := make([]int64, alu.NumInputs)
	for i := alu.NumInputs - 1; i >= 0; i-- {
		digits[i] = int64(n % 10)
		n /= 10
	}

	if z, err := alu.Run(program, digits); err != nil {
		tb.Fatal(err)
	} else if z != 0 {
		tb.Fatalf("digits %v: z=%d, want 0", digits, z)
	}
}
