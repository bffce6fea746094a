package alu_test

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/benbjohnson/alu"
)

func TestSymbolicExecutor_Input(t *testing.T) {
	e := alu.NewSymbolicExecutor()
	if err := e.Run(mustParse(t, "inp w", "add x 7", "add w x")); err != nil {
		t.Fatal(err)
	}

	b := e.Builder()
	p, ok := b.AsPolynomial(e.Register(alu.W))
	if !ok {
		t.Fatalf("expected polynomial, got %s", b.String(e.Register(alu.W)))
	} else if got, want := p.String(), "in1 + 7"; got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}

	digits := []int64{3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	if got, want := b.Evaluate(e.Register(alu.W), digits), int64(10); got != want {
		t.Fatalf("Evaluate()=%d, want %d", got, want)
	}
}

func TestSymbolicExecutor_ConstantCollapse(t *testing.T) {
	e := alu.NewSymbolicExecutor()
	if err := e.Run(mustParse(t, "inp w", "mul w 5", "add w 8", "mod w 5")); err != nil {
		t.Fatal(err)
	}
	if v, ok := e.Builder().ConstantValue(e.Register(alu.W)); !ok || v != 3 {
		t.Fatalf("expected constant 3, got %s", e.Builder().String(e.Register(alu.W)))
	}
}

func TestSymbolicExecutor_DisjointEql(t *testing.T) {
	e := alu.NewSymbolicExecutor()
	if err := e.Run(mustParse(t, "inp w", "mul w 100", "mod w 20", "add x 25", "eql w x")); err != nil {
		t.Fatal(err)
	}
	if v, ok := e.Builder().ConstantValue(e.Register(alu.W)); !ok || v != 0 {
		t.Fatalf("expected constant 0, got %s", e.Builder().String(e.Register(alu.W)))
	}
}

func TestSymbolicExecutor_RegisterAt(t *testing.T) {
	e := alu.NewSymbolicExecutor()
	if err := e.Run(mustParse(t, "inp w", "add w 1", "mul w 0")); err != nil {
		t.Fatal(err)
	}

	b := e.Builder()
	if p, ok := b.AsPolynomial(e.RegisterAt(1, alu.W)); !ok || p.String() != "in1 + 1" {
		t.Fatalf("unexpected snapshot: %s", b.String(e.RegisterAt(1, alu.W)))
	}
	if v, ok := b.ConstantValue(e.RegisterAt(2, alu.W)); !ok || v != 0 {
		t.Fatalf("unexpected snapshot: %s", b.String(e.RegisterAt(2, alu.W)))
	}
	if got, want := e.Len(), 3; got != want {
		t.Fatalf("Len()=%d, want %d", got, want)
	}
}

func TestSymbolicExecutor_ErrTooManyInputs(t *testing.T) {
	e := alu.NewSymbolicExecutor()
	var program []alu.Instruction
	for i := 0; i < alu.NumInputs+1; i++ {
		program = append(program, mustParse(t, "inp w")...)
	}
	if err := e.Run(program); err == nil || !strings.Contains(err.Error(), "more than 14 inputs") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// The symbolic form of z must agree with concrete execution on every digit
// assignment; spot-check a handful against the serial validator fixture.
func TestSymbolicExecutor_MatchesConcrete(t *testing.T) {
	program := loadProgram(t, "testdata/validator.txt")
	e := alu.NewSymbolicExecutor()
	if err := e.Run(program); err != nil {
		t.Fatal(err)
	}

	b := e.Builder()
	z := e.Register(alu.Z)
	for _, digits := range [][]int64{
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9},
		{9, 1, 3, 9, 9, 6, 3, 9, 4, 9, 9, 3, 9, 5},
		{5, 1, 1, 7, 4, 1, 1, 7, 1, 6, 9, 1, 7, 1},
		{2, 7, 1, 8, 2, 8, 1, 8, 2, 8, 4, 5, 9, 4},
	} {
		want, err := alu.Run(program, digits)
		if err != nil {
			t.Fatal(err)
		}
		if got := b.Evaluate(z, digits); got != want {
			t.Fatalf("digits %v: symbolic z=%d, concrete z=%d", digits, got, want)
		}
	}
}

// mustParse parses a program given one instruction per argument.
func mustParse(tb testing.TB, lines ...string) []alu.Instruction {
	tb.Helper()
	program, err := alu.ParseProgram(lines)
	if err != nil {
		tb.Fatal(err)
	}
	return program
}

// loadProgram parses a program from a file, one instruction per line.
func loadProgram(tb testing.TB, path string) []alu.Instruction {
	tb.Helper()

	f, err := os.Open(path)
	if err != nil {
		tb.Fatal(err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		tb.Fatal(err)
	}

	program, err := alu.ParseProgram(lines)
	if err != nil {
		tb.Fatal(err)
	}
	return program
}
