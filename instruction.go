package alu

import (
	"fmt"
	"strconv"
	"strings"
)

// Register identifies one of the machine's four registers, 'w' through 'z'.
type Register int

// Registers, in storage order.
const (
	W Register = iota
	X
	Y
	Z
)

var registerNames = [...]string{W: "w", X: "x", Y: "y", Z: "z"}

// String returns the register's single-character name.
func (r Register) String() string {
	if r >= 0 && int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("Register<%d>", r)
}

// ParseRegister parses a single-character register name.
func ParseRegister(s string) (Register, error) {
	for r, name := range registerNames {
		if s == name {
			return Register(r), nil
		}
	}
	return 0, &ParseError{Token: s, Msg: fmt.Sprintf("unknown register: %q", s)}
}

// Input identifies one of the fourteen input digits, in reading order.
type Input int

// String returns the input's name, "in1" through "in14".
func (in Input) String() string {
	return fmt.Sprintf("in%d", int(in)+1)
}

// Next returns the input read immediately after in.
func (in Input) Next() Input {
	assert(int(in)+1 < NumInputs, "no input after %s", in)
	return in + 1
}

// Op identifies an arithmetic operation.
type Op int

// Operations.
const (
	ADD Op = iota
	MUL
	DIV
	MOD
	EQL
)

var opNames = [...]string{
	ADD: "add",
	MUL: "mul",
	DIV: "div",
	MOD: "mod",
	EQL: "eql",
}

// String returns the string representation of the operation.
func (op Op) String() string {
	if op >= 0 && op < Op(len(opNames)) {
		return opNames[op]
	}
	return fmt.Sprintf("Op<%d>", op)
}

// ParseOp parses an operation name.
func ParseOp(s string) (Op, error) {
	for op, name := range opNames {
		if s == name {
			return Op(op), nil
		}
	}
	return 0, &ParseError{Token: s, Msg: fmt.Sprintf("unknown opcode: %q", s)}
}

// Apply computes the operation over two concrete values. Division or modulo
// by zero and modulo of a negative value violate the machine's input
// contract and panic.
func (op Op) Apply(a, b int64) int64 {
	switch op {
	case ADD:
		return a + b
	case MUL:
		return a * b
	case DIV:
		assert(b != 0, "division by zero")
		return a / b
	case MOD:
		assert(b > 0, "modulus must be positive: %d", b)
		assert(a >= 0, "modulo of negative value: %d", a)
		return a % b
	case EQL:
		if a == b {
			return 1
		}
		return 0
	default:
		panic("unreachable")
	}
}

// Operand is the right-hand side of an operate instruction: either a
// register reference or an integer constant.
type Operand interface {
	fmt.Stringer
	operand()
}

func (RegisterOperand) operand() {}
func (ConstOperand) operand()    {}

// RegisterOperand reads its value from a register.
type RegisterOperand struct {
	Register Register
}

// String returns the operand's register name.
func (o RegisterOperand) String() string { return o.Register.String() }

// ConstOperand is an integer constant.
type ConstOperand struct {
	Value int64
}

// String returns the operand's decimal value.
func (o ConstOperand) String() string { return strconv.FormatInt(o.Value, 10) }

// Instruction is a single machine instruction. Instructions are immutable
// once parsed.
type Instruction interface {
	fmt.Stringer
	instruction()
}

func (*InputInstruction) instruction()   {}
func (*OperateInstruction) instruction() {}

// InputInstruction consumes the next input digit into a register.
type InputInstruction struct {
	Dst Register
}

// String returns the instruction in program text form.
func (instr *InputInstruction) String() string {
	return fmt.Sprintf("inp %s", instr.Dst)
}

// OperateInstruction applies an operation to a destination register and a
// second operand, storing the result in the destination.
type OperateInstruction struct {
	Op  Op
	Dst Register
	Src Operand
}

// String returns the instruction in program text form.
func (instr *OperateInstruction) String() string {
	return fmt.Sprintf("%s %s %s", instr.Op, instr.Dst, instr.Src)
}

// ParseError describes an instruction line that could not be parsed.
type ParseError struct {
	Line  int    // 1-based line number; zero if unknown
	Token string // offending token, if any
	Msg   string
}

// Error returns the error message with its line number, when known.
func (e *ParseError) Error() string {
	if e.Line != 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// ParseInstruction parses one instruction from a line of program text.
func ParseInstruction(line string) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, &ParseError{Msg: "empty instruction"}
	}

	if fields[0] == "inp" {
		if len(fields) != 2 {
			return nil, &ParseError{Token: fields[0], Msg: fmt.Sprintf("inp requires 1 operand, have %d", len(fields)-1)}
		}
		dst, err := ParseRegister(fields[1])
		if err != nil {
			return nil, err
		}
		return &InputInstruction{Dst: dst}, nil
	}

	op, err := ParseOp(fields[0])
	if err != nil {
		return nil, err
	}
	if len(fields) != 3 {
		return nil, &ParseError{Token: fields[0], Msg: fmt.Sprintf("%s requires 2 operands, have %d", fields[0], len(fields)-1)}
	}
	dst, err := ParseRegister(fields[1])
	if err != nil {
		return nil, err
	}
	src, err := parseOperand(fields[2])
	if err != nil {
		return nil, err
	}
	return &OperateInstruction{Op: op, Dst: dst, Src: src}, nil
}

// parseOperand parses a register name or integer constant.
func parseOperand(s string) (Operand, error) {
	if r, err := ParseRegister(s); err == nil {
		return RegisterOperand{Register: r}, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &ParseError{Token: s, Msg: fmt.Sprintf("operand is neither a register nor an integer: %q", s)}
	}
	return ConstOperand{Value: v}, nil
}

// ParseProgram parses one instruction per line. Errors identify the failing
// line; no partial program is returned.
func ParseProgram(lines []string) ([]Instruction, error) {
	program := make([]Instruction, 0, len(lines))
	for i, line := range lines {
		instr, err := ParseInstruction(line)
		if err != nil {
			if err, ok := err.(*ParseError); ok {
				err.Line = i + 1
			}
			return nil, err
		}
		program = append(program, instr)
	}
	return program, nil
}
