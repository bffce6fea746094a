package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/benbjohnson/alu"
	"github.com/davecgh/go-spew/spew"
	"github.com/xyproto/env/v2"
)

// AnalyzeCommand represents a command for dumping a program's analysis.
type AnalyzeCommand struct{}

// NewAnalyzeCommand returns a new instance of AnalyzeCommand.
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{}
}

// Run executes the "analyze" subcommand.
func (cmd *AnalyzeCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alu-analyze", flag.ContinueOnError)
	dump := fs.Bool("dump", false, "spew-dump every instruction record")
	fs.Usage = cmd.usage
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := programPath(fs, env.Str("ALU_PROGRAM"))
	if err != nil {
		return err
	}

	program, err := readProgram(path)
	if err != nil {
		return err
	}

	analysis := alu.Analyze(program)
	for i := 0; i < analysis.Len(); i++ {
		info := analysis.Info(i)
		if *dump {
			spew.Fdump(os.Stdout, info)
			continue
		}

		fmt.Printf("%3d  %-12s", i, info.Instruction)
		for r := alu.W; r <= alu.Z; r++ {
			fmt.Printf("  %s=%s", r, info.Ranges[r])
			if limit, ok := analysis.Limit(i, r); ok {
				fmt.Printf("!%s", limit)
			}
		}
		fmt.Println()
	}

	executor := alu.NewSymbolicExecutor()
	if err := executor.Run(program); err != nil {
		return err
	}
	fmt.Printf("\nz = %s\n", executor.Builder().String(executor.Register(alu.Z)))
	return nil
}

func (cmd *AnalyzeCommand) usage() {
	fmt.Fprintln(os.Stderr, `
Prints every instruction with its register ranges, the limits required to
finish with z at zero, and the simplified symbolic form of z.

Usage:

	alu analyze [-dump] PATH
`[1:])
}
