package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// DefaultSassC is the compiler binary looked up on PATH.
const DefaultSassC = "sassc"

var sasscFlags = []string{"-M", "-t", "expanded"}

// Compiler turns one scss entry point into a css file.
type Compiler interface {
	Compile(ctx context.Context, input, output string) error
}

// SassC shells out to the sassc binary. Output streams default to the
// process's own.
type SassC struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

func (s SassC) binary() string {
	if s.Binary == "" {
		return DefaultSassC
	}
	return s.Binary
}

// Args returns the full argument vector, binary first.
func (s SassC) Args(input, output string) []string {
	args := []string{s.binary()}
	args = append(args, sasscFlags...)
	return append(args, input, output)
}

func (s SassC) Compile(ctx context.Context, input, output string) error {
	argv := s.Args(input, output)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = s.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = s.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", s.binary(), input, err)
	}
	return nil
}

// LookPath resolves the compiler binary on PATH.
func (s SassC) LookPath() (string, error) {
	return exec.LookPath(s.binary())
}
