package alu

// Info records the analysis results for one instruction: the instruction
// itself, the register ranges immediately after executing it, and the
// narrowed limits any correct digit assignment's state must satisfy at that
// point. A nil limit means the register is unconstrained beyond its forward
// range.
type Info struct {
	Instruction Instruction
	Ranges      [NumRegisters]ValueRange
	Limits      [NumRegisters]*ValueRange
}

// Analysis holds one Info per instruction in program order. It is built once
// by Analyze and read many times by the search.
type Analysis struct {
	program []Instruction
	infos   []*Info

	// Set when backward propagation derives an empty limit, proving that no
	// digit assignment can reach the terminal condition.
	unsatisfiable bool
}

// Analyze computes forward ranges and backward limits for program. The
// forward pass replays the program over the interval domain from all-zero
// registers, treating each input as [1,9]. The backward pass then walks the
// program in reverse from the terminal requirement z == 0, narrowing each
// register's permissible values at each point. Limits always combine by
// intersection, never replacement.
func Analyze(program []Instruction) *Analysis {
	a := &Analysis{program: program}
	a.computeRanges()
	a.propagateLimits()
	return a
}

// Program returns the analyzed program.
func (a *Analysis) Program() []Instruction { return a.program }

// Len returns the number of instructions analyzed.
func (a *Analysis) Len() int { return len(a.infos) }

// Info returns the record for the i-th instruction.
func (a *Analysis) Info(i int) *Info { return a.infos[i] }

// Limit returns the limit on register r immediately after the i-th
// instruction, or false if the register is unconstrained there.
func (a *Analysis) Limit(i int, r Register) (ValueRange, bool) {
	if limit := a.infos[i].Limits[r]; limit != nil {
		return *limit, true
	}
	return ValueRange{}, false
}

// Satisfiable reports whether backward propagation left any room for a
// solution. A false result proves no digit assignment drives z to zero.
func (a *Analysis) Satisfiable() bool { return !a.unsatisfiable }

// computeRanges replays the program over the interval domain, storing the
// post-instruction register ranges for every instruction.
func (a *Analysis) computeRanges() {
	regs := initialRanges()
	a.infos = make([]*Info, 0, len(a.program))
	for _, instr := range a.program {
		switch instr := instr.(type) {
		case *InputInstruction:
			regs[instr.Dst] = ValueRange{Start: 1, End: 9}
		case *OperateInstruction:
			regs[instr.Dst] = forwardRange(instr.Op, regs[instr.Dst], operandRange(instr.Src, regs))
		default:
			panic("unreachable")
		}
		a.infos = append(a.infos, &Info{Instruction: instr, Ranges: regs})
	}
}

// propagateLimits walks the program in reverse from the requirement that z
// end at exactly zero, deriving a limit on each operate instruction's
// operands from the limit on its result.
func (a *Analysis) propagateLimits() {
	var limits [NumRegisters]*ValueRange
	terminal := NewValueRange(0, 0)
	limits[Z] = &terminal
	a.unsatisfiable = false

	for i := len(a.infos) - 1; i >= 0; i-- {
		info := a.infos[i]
		info.Limits = limits

		switch instr := info.Instruction.(type) {
		case *InputInstruction:
			// Inputs are fresh and already bounded to [1,9].
			limits[instr.Dst] = nil
		case *OperateInstruction:
			limits = a.stepBackward(limits, a.rangesBefore(i), info, instr)
		default:
			panic("unreachable")
		}
	}
}

// stepBackward derives the limits that hold before an operate instruction
// from those that hold after it.
func (a *Analysis) stepBackward(limits [NumRegisters]*ValueRange, before [NumRegisters]ValueRange, info *Info, instr *OperateInstruction) [NumRegisters]*ValueRange {
	// The constraint on the destination after the instruction: its limit if
	// one is known, otherwise its plain forward range.
	constraint := info.Ranges[instr.Dst]
	if limits[instr.Dst] != nil {
		constraint = *limits[instr.Dst]
	}

	// The other operand's effective range: forward intersected with any
	// known limit. A self-referencing operand yields no information.
	var other ValueRange
	srcReg, isReg := Register(-1), false
	switch src := instr.Src.(type) {
	case ConstOperand:
		other = NewValueRange(src.Value, src.Value)
	case RegisterOperand:
		if src.Register == instr.Dst {
			limits[instr.Dst] = nil
			return limits
		}
		srcReg, isReg = src.Register, true
		other = effectiveRange(before[srcReg], limits[srcReg])
	default:
		panic("unreachable")
	}

	// Narrow the destination's value before the instruction.
	var narrowed ValueRange
	var ok bool
	switch instr.Op {
	case ADD:
		narrowed, ok = AddBackward(other, constraint), true
	case MUL:
		narrowed, ok = MulBackward(other, constraint)
	case DIV:
		narrowed, ok = DivBackward(other, constraint), true
	case MOD:
		ok = false // not invertible
	case EQL:
		narrowed, ok = EqlBackward(before[instr.Dst], other, constraint)
	default:
		panic("unreachable")
	}
	if ok {
		limits[instr.Dst] = a.clip(narrowed, before[instr.Dst])
	} else {
		limits[instr.Dst] = nil
	}

	// Symmetrically narrow a register operand; its value survives the
	// instruction, so any existing limit still applies and intersects.
	if !isReg {
		return limits
	}
	dstEffective := effectiveRange(before[instr.Dst], limits[instr.Dst])
	switch instr.Op {
	case ADD:
		narrowed, ok = AddBackward(dstEffective, constraint), true
	case MUL:
		narrowed, ok = MulBackward(dstEffective, constraint)
	case EQL:
		narrowed, ok = EqlBackward(before[srcReg], dstEffective, constraint)
	default:
		ok = false // divisor and modulus are not invertible
	}
	if ok {
		if existing := limits[srcReg]; existing != nil {
			var valid bool
			if narrowed, valid = Intersect(narrowed, *existing); !valid {
				a.unsatisfiable = true
				return limits
			}
		}
		if clipped := a.clip(narrowed, before[srcReg]); clipped != nil {
			limits[srcReg] = clipped
		}
	}
	return limits
}

// clip intersects a narrowed limit with the register's forward range. An
// empty intersection proves no assignment can satisfy the terminal
// condition; the analysis is marked unsatisfiable and no limit is recorded.
func (a *Analysis) clip(narrowed, forward ValueRange) *ValueRange {
	clipped, ok := Intersect(narrowed, forward)
	if !ok {
		a.unsatisfiable = true
		return nil
	}
	return &clipped
}

// rangesBefore returns the register ranges in effect before the i-th
// instruction executes.
func (a *Analysis) rangesBefore(i int) [NumRegisters]ValueRange {
	if i == 0 {
		return initialRanges()
	}
	return a.infos[i-1].Ranges
}

// effectiveRange narrows a forward range by a limit, when one is known.
func effectiveRange(forward ValueRange, limit *ValueRange) ValueRange {
	if limit == nil {
		return forward
	}
	v, ok := Intersect(forward, *limit)
	assert(ok, "limit %s outside forward range %s", limit, forward)
	return v
}

// operandRange resolves an operand against a register range file.
func operandRange(src Operand, regs [NumRegisters]ValueRange) ValueRange {
	switch src := src.(type) {
	case RegisterOperand:
		return regs[src.Register]
	case ConstOperand:
		return ValueRange{Start: src.Value, End: src.Value}
	default:
		panic("unreachable")
	}
}

// initialRanges returns the all-zero register state.
func initialRanges() [NumRegisters]ValueRange {
	var regs [NumRegisters]ValueRange
	for r := range regs {
		regs[r] = ValueRange{Start: 0, End: 0}
	}
	return regs
}
