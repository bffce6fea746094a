// Package alu analyzes straight-line programs for a four-register arithmetic
// machine whose only unknowns are fourteen input digits, each 1 through 9.
//
// The analysis proceeds in layers: a value-range abstract domain bounds what
// every register can hold at every program point, a backward pass narrows
// those bounds under the requirement that register z finish at zero, and a
// depth-first search uses the narrowed bounds to find the largest or smallest
// digit sequence that satisfies the program without enumerating all 9^14
// candidates. A separate symbolic evaluator reduces each register to a closed
// form over the inputs, used to cross-check the search's target condition.
package alu

import (
	"errors"
	"fmt"
)

// NumRegisters is the number of registers in the machine.
const NumRegisters = 4

// NumInputs is the number of input digits a program consumes.
const NumInputs = 14

// ErrNoSolution is returned when no digit sequence drives z to zero.
var ErrNoSolution = errors.New("no solution")

// assert panics if condition is false.
func assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("assert: "+format, args...))
	}
}
