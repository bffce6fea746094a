package alu

import "fmt"

// Run executes program concretely, consuming one digit per input
// instruction in reading order, and returns the final value of register z.
// Each digit must be 1 through 9 and the digit count must match the
// program's input count exactly. All registers start at zero.
func Run(program []Instruction, digits []int64) (int64, error) {
	var regs [NumRegisters]int64
	next := 0
	for _, instr := range program {
		switch instr := instr.(type) {
		case *InputInstruction:
			if next >= len(digits) {
				return 0, fmt.Errorf("program reads more than %d inputs", len(digits))
			}
			d := digits[next]
			if d < 1 || d > 9 {
				return 0, fmt.Errorf("input %d out of range: %d", next+1, d)
			}
			regs[instr.Dst] = d
			next++

		case *OperateInstruction:
			regs[instr.Dst] = instr.Op.Apply(regs[instr.Dst], operandValue(instr.Src, regs))

		default:
			panic("unreachable")
		}
	}
	if next != len(digits) {
		return 0, fmt.Errorf("program reads %d of %d inputs", next, len(digits))
	}
	return regs[Z], nil
}

// operandValue resolves an operand against a concrete register file.
func operandValue(src Operand, regs [NumRegisters]int64) int64 {
	switch src := src.(type) {
	case RegisterOperand:
		return regs[src.Register]
	case ConstOperand:
		return src.Value
	default:
		panic("unreachable")
	}
}
