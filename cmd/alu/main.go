package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/benbjohnson/alu"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err == flag.ErrHelp {
		os.Exit(1)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var cmd string
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "", "-h", "--help", "help":
		usage()
		return flag.ErrHelp
	case "solve":
		return NewSolveCommand().Run(ctx, args)
	case "eval":
		return NewEvalCommand().Run(ctx, args)
	case "analyze":
		return NewAnalyzeCommand().Run(ctx, args)
	default:
		return fmt.Errorf(`alu %s: unknown command`, cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `
Alu analyzes four-register arithmetic machine programs.

Usage:

	alu <command> [arguments]

The commands are:

	solve       find the largest & smallest accepted input digits
	eval        replay a program against a 14-digit input
	analyze     dump per-instruction ranges, limits & expressions
	help        this screen
`[1:])
}

// readProgram loads one instruction per line from the file at path.
func readProgram(path string) ([]alu.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return alu.ParseProgram(lines)
}

// programPath resolves the program file from a positional argument, falling
// back to the ALU_PROGRAM environment variable.
func programPath(fs *flag.FlagSet, fallback string) (string, error) {
	switch fs.NArg() {
	case 0:
		if fallback == "" {
			return "", fmt.Errorf("program file required")
		}
		return fallback, nil
	case 1:
		return fs.Arg(0), nil
	default:
		return "", fmt.Errorf("too many arguments")
	}
}
