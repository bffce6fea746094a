package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/benbjohnson/alu"
	"github.com/xyproto/env/v2"
)

// EvalCommand represents a command for replaying a program concretely.
type EvalCommand struct{}

// NewEvalCommand returns a new instance of EvalCommand.
func NewEvalCommand() *EvalCommand {
	return &EvalCommand{}
}

// Run executes the "eval" subcommand.
func (cmd *EvalCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alu-eval", flag.ContinueOnError)
	input := fs.String("input", "", "input digits, e.g. 13579246899999")
	fs.Usage = cmd.usage
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := programPath(fs, env.Str("ALU_PROGRAM"))
	if err != nil {
		return err
	}

	digits, err := parseDigits(*input)
	if err != nil {
		return err
	}

	program, err := readProgram(path)
	if err != nil {
		return err
	}
	z, err := alu.Run(program, digits)
	if err != nil {
		return err
	}
	fmt.Printf("z = %d\n", z)
	return nil
}

func (cmd *EvalCommand) usage() {
	fmt.Fprintln(os.Stderr, `
Replays a program against a full input and prints the final value of z.

Usage:

	alu eval -input DIGITS PATH
`[1:])
}

// parseDigits splits a decimal string into its digits.
func parseDigits(s string) ([]int64, error) {
	if len(s) != alu.NumInputs {
		return nil, fmt.Errorf("input must be %d digits, have %d", alu.NumInputs, len(s))
	}
	digits := make([]int64, len(s))
	for i, c := range s {
		if c < '1' || c > '9' {
			return nil, fmt.Errorf("input digit %d out of range: %c", i+1, c)
		}
		digits[i] = int64(c - '0')
	}
	return digits, nil
}
