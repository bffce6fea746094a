package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/benbjohnson/alu"
	"github.com/xyproto/env/v2"
)

// SolveCommand represents a command for solving a program's input digits.
type SolveCommand struct{}

// NewSolveCommand returns a new instance of SolveCommand.
func NewSolveCommand() *SolveCommand {
	return &SolveCommand{}
}

// Run executes the "solve" subcommand.
func (cmd *SolveCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alu-solve", flag.ContinueOnError)
	verbose := fs.Bool("v", env.Bool("ALU_VERBOSE"), "verbose")
	fs.Usage = cmd.usage
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := programPath(fs, env.Str("ALU_PROGRAM"))
	if err != nil {
		return err
	}

	log.SetFlags(0)
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	program, err := readProgram(path)
	if err != nil {
		return err
	}
	log.Printf("parsed %d instructions", len(program))

	analysis := alu.Analyze(program)

	largest, err := alu.NewSearcher(analysis, alu.DigitsDescending).Search()
	if err != nil {
		return err
	}
	fmt.Printf("largest:  %d\n", largest)

	smallest, err := alu.NewSearcher(analysis, alu.DigitsAscending).Search()
	if err != nil {
		return err
	}
	fmt.Printf("smallest: %d\n", smallest)

	return nil
}

func (cmd *SolveCommand) usage() {
	fmt.Fprintln(os.Stderr, `
Finds the largest and smallest 14-digit inputs that drive register z to zero.

Usage:

	alu solve [-v] PATH

The program file may also be set through the ALU_PROGRAM environment
variable, and -v through ALU_VERBOSE.
`[1:])
}
