package alu

import (
	"fmt"

	"github.com/benbjohnson/immutable"
)

// SymbolicExecutor executes a program symbolically, carrying one expression
// per register instead of a value. The register file is persistent, so the
// snapshot taken after each instruction shares all unchanged slots with its
// neighbors.
//
// The executor is a pure analysis: it never inspects or rejects digit
// assignments, only produces a closed-form description of each register as
// a function of the fourteen inputs.
type SymbolicExecutor struct {
	builder   *Builder
	regs      *immutable.SortedMap
	snapshots []*immutable.SortedMap
	next      Input
}

// NewSymbolicExecutor returns an executor with all registers holding zero.
func NewSymbolicExecutor() *SymbolicExecutor {
	e := &SymbolicExecutor{
		builder: NewBuilder(),
		regs:    immutable.NewSortedMap(&registerComparer{}),
	}
	zero := e.builder.Constant(0)
	for r := W; r <= Z; r++ {
		e.regs = e.regs.Set(r, zero)
	}
	return e
}

// Builder returns the arena holding the executor's expressions.
func (e *SymbolicExecutor) Builder() *Builder { return e.builder }

// Len returns the number of instructions executed so far.
func (e *SymbolicExecutor) Len() int { return len(e.snapshots) }

// Run symbolically executes every instruction of program in order.
func (e *SymbolicExecutor) Run(program []Instruction) error {
	for _, instr := range program {
		if err := e.Step(instr); err != nil {
			return err
		}
	}
	return nil
}

// Step symbolically executes a single instruction and snapshots the
// resulting register file.
func (e *SymbolicExecutor) Step(instr Instruction) error {
	switch instr := instr.(type) {
	case *InputInstruction:
		if int(e.next) >= NumInputs {
			return fmt.Errorf("program reads more than %d inputs", NumInputs)
		}
		e.regs = e.regs.Set(instr.Dst, e.builder.Input(e.next))
		e.next++

	case *OperateInstruction:
		var rhs ExprID
		switch src := instr.Src.(type) {
		case RegisterOperand:
			rhs = e.Register(src.Register)
		case ConstOperand:
			rhs = e.builder.Constant(src.Value)
		default:
			panic("unreachable")
		}
		e.regs = e.regs.Set(instr.Dst, e.builder.Operation(instr.Op, e.Register(instr.Dst), rhs))

	default:
		panic("unreachable")
	}

	e.snapshots = append(e.snapshots, e.regs)
	return nil
}

// Register returns the expression currently held by register r.
func (e *SymbolicExecutor) Register(r Register) ExprID {
	v, ok := e.regs.Get(r)
	assert(ok, "register not bound: %s", r)
	return v.(ExprID)
}

// RegisterAt returns the expression held by register r immediately after
// the i-th executed instruction.
func (e *SymbolicExecutor) RegisterAt(i int, r Register) ExprID {
	v, ok := e.snapshots[i].Get(r)
	assert(ok, "register not bound: %s", r)
	return v.(ExprID)
}

// registerComparer compares two registers. Implements immutable.Comparer.
type registerComparer struct{}

func (c *registerComparer) Compare(a, b interface{}) int {
	if i, j := a.(Register), b.(Register); i < j {
		return -1
	} else if i > j {
		return 1
	}
	return 0
}
